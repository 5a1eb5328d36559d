package analysis

import (
	"fmt"
	"net/http"
)

// ErrorCode is the stable machine-readable code surfaced to callers
// when the external analysis service cannot produce a result.
type ErrorCode string

const (
	CodeTimeout          ErrorCode = "TIMEOUT"
	CodeNetworkError     ErrorCode = "NETWORK_ERROR"
	CodePropertyNotFound ErrorCode = "PROPERTY_NOT_FOUND"
	CodeInvalidAddress   ErrorCode = "INVALID_ADDRESS"
	CodeRateLimit        ErrorCode = "RATE_LIMIT"
	CodeWebhookError     ErrorCode = "WEBHOOK_ERROR"
)

// Error pairs a code with a human-readable message. Callers get both;
// raw stack traces never reach the response body.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus maps the code onto the response status the API returns.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodePropertyNotFound:
		return http.StatusNotFound
	case CodeInvalidAddress:
		return http.StatusBadRequest
	case CodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
