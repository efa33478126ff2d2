package reminder

// Localizer resolves message templates from the embedded catalog.
type Localizer interface {
	Get(lang, key string, params map[string]interface{}) string
}
