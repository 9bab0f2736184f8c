package provider

import (
	"errors"
	"fmt"
)

// RequestError is an EIP-1193 provider error.
type RequestError struct {
	Code    int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// Is matches any RequestError with the same code, so wrapped copies with a
// more specific message still satisfy errors.Is against the sentinels below.
func (e *RequestError) Is(target error) bool {
	var t *RequestError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// EIP-1193 error codes.
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeUnsupported       = 4200
	CodeDisconnected      = 4900
	CodeChainDisconnected = 4901
)

var (
	ErrUserRejected = &RequestError{Code: CodeUserRejected, Message: "user rejected the request"}
	ErrUnauthorized = &RequestError{Code: CodeUnauthorized, Message: "account not authorized"}
	ErrUnsupported  = &RequestError{Code: CodeUnsupported, Message: "method not supported"}
	ErrDisconnected = &RequestError{Code: CodeDisconnected, Message: "provider is disconnected"}
)

func newRequestError(code int, format string, args ...any) *RequestError {
	return &RequestError{Code: code, Message: fmt.Sprintf(format, args...)}
}
