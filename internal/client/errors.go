package client

import (
	"fmt"
	"net/http"
)

// TransportError means the request never produced an HTTP response
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response. Detail comes from the body's "detail"
// field, or "Failed" when the body carries none.
type APIError struct {
	Op     string
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// NotFound reports whether the backend answered 404
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// DecodeError means a 2xx response body did not have the expected shape
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
