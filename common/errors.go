package common

import "fmt"

// HTTPError captures a non-2xx response whose body could not be interpreted
// as the usual JSON envelope.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

// DecodeError reports a response body that is not valid JSON. It is distinct
// from a transport failure: the request completed, the payload is just
// unusable.
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
