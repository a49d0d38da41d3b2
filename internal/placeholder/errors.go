package placeholder

import "fmt"

// TransportError is returned when a request could not be completed, e.g. the
// connection was refused.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is returned when the API responds with a non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d", e.Code)
}

// ParseError is returned when a response body is not well-formed.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing response from %s: %s", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
