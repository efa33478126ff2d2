package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env              string                  `env:"ENV,default=local"`
	Logger           LoggerConfig            `env:",prefix=LOGGER_"`
	Observability    ObservabilityHTTPConfig `env:",prefix=OBSERVABILITY_"`
	API              APIHTTPConfig           `env:",prefix=API_"`
	ShutdownDuration time.Duration           `env:"SHUTDOWN_DURATION,default=30s"`
	DB               SQLiteConfig            `env:",prefix=DB_"`
	Telegram         TelegramConfig          `env:",prefix=TELEGRAM_"`
	App              AppConfig               `env:",prefix=APP_"`
	Reminder         ReminderConfig          `env:",prefix=REMINDER_"`
	Locale           LocaleConfig            `env:",prefix=LOCALE_"`
}

type TelegramConfig struct {
	BotToken string        `env:"BOT_TOKEN"`
	ChatID   int64         `env:"CHAT_ID"`
	Timeout  time.Duration `env:"TIMEOUT,default=30s"`
}

// Configured reports whether the sink credentials are present. Missing
// credentials are not fatal at startup: the HTTP endpoints answer 500 and
// the reminder job reports a configuration alert instead.
func (c TelegramConfig) Configured() bool {
	return c.BotToken != "" && c.ChatID != 0
}

// AppConfig scopes which subscription records are visible: the logical
// application namespace and the owner (tenant) whose records the reminder
// job reads.
type AppConfig struct {
	ID       string `env:"ID,default=default-app-id"`
	OwnerUID string `env:"OWNER_UID"`
}

type ReminderConfig struct {
	WindowDays int    `env:"WINDOW_DAYS,default=2"`
	Schedule   string `env:"SCHEDULE,default=0 9 * * *"`
}

type LocaleConfig struct {
	Timezone       string `env:"TIMEZONE,default=Asia/Baghdad"`
	DateLanguage   string `env:"DATE_LANGUAGE,default=ar"`
	NumberLanguage string `env:"NUMBER_LANGUAGE,default=en"`
	CurrencySymbol string `env:"CURRENCY_SYMBOL,default=د.ع"`
}

type LoggerConfig struct {
	Level string `env:"LEVEL,default=debug"`
}

type ObservabilityHTTPConfig struct {
	Host         string        `env:"HOST,default=127.0.0.1"`
	Port         uint16        `env:"PORT,default=8383"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (a ObservabilityHTTPConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

type APIHTTPConfig struct {
	Host         string        `env:"HOST,default=0.0.0.0"`
	Port         uint16        `env:"PORT,default=8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (a APIHTTPConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

type SQLiteConfig struct {
	Path         string `env:"PATH,default=./data/tanbih.db"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns int    `env:"MAX_IDLE_CONNS,default=5"`
	MaxLifetime  string `env:"MAX_LIFETIME,default=5m"`
}
