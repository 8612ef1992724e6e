package deepseek

import "fmt"

// TransportError wraps a network-level failure reaching the provider.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("deepseek: transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response from the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("deepseek: unexpected status %d: %s", e.StatusCode, e.Body)
}

// MalformedError is a 2xx response whose body does not carry the expected
// choices[0].message.content field.
type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deepseek: malformed response (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("deepseek: malformed response (%s)", e.Reason)
}

func (e *MalformedError) Unwrap() error { return e.Err }
