package eia

import "fmt"

// ValidationError reports malformed caller input detected before any
// request is issued.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ApiError reports a non-2xx response, or a 2xx response whose envelope
// carries an explicit error field.
type ApiError struct {
	Status int
	Body   string
}

func (e *ApiError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("eia api error: %s", e.Body)
	}
	return fmt.Sprintf("eia api status %d: %s", e.Status, e.Body)
}

// TransportError reports a network or timeout failure reaching the API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("eia transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }
