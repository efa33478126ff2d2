package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ConfigurationMissingError means a required secret or identifier was absent
// at invocation time. Fatal for the invocation, no partial retry.
type ConfigurationMissingError struct {
	Key string
}

func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("configuration missing: %s", e.Key)
}

// QueryFailureError wraps a store error together with the collection path
// that was being queried.
type QueryFailureError struct {
	Path string
	Err  error
}

func (e *QueryFailureError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Path, e.Err)
}

func (e *QueryFailureError) Unwrap() error {
	return e.Err
}

// ValidationFailureError reports a bad or missing request field. Surfaced to
// the HTTP caller, never forwarded to the sink.
type ValidationFailureError struct {
	Field  string
	Reason string
}

func (e *ValidationFailureError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DeliveryFailureError carries the diagnostic detail of a failed sink
// delivery: the remote error code and description when the sink answered,
// or the local transport error when it did not.
type DeliveryFailureError struct {
	StatusCode  int
	Description string
	Err         error
}

func (e *DeliveryFailureError) Error() string {
	if e.StatusCode != 0 || e.Description != "" {
		return fmt.Sprintf("delivery failed: status %d, description: %s", e.StatusCode, e.Description)
	}
	if e.Err != nil {
		return fmt.Sprintf("delivery failed: %v", e.Err)
	}
	return "delivery failed: no response"
}

func (e *DeliveryFailureError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error taxonomy to transport-facing status codes.
func HTTPStatus(err error) int {
	var validationErr *ValidationFailureError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var configErr *ConfigurationMissingError
	var queryErr *QueryFailureError
	var deliveryErr *DeliveryFailureError
	if errors.As(err, &configErr) || errors.As(err, &queryErr) || errors.As(err, &deliveryErr) {
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}
