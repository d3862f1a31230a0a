package errors

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest       = NewError("BAD_REQUEST", "bad request", http.StatusBadRequest)
	ErrSchema           = NewError("SCHEMA_ERROR", "xml is incorrect", http.StatusUnprocessableEntity)
	ErrDuplicate        = NewError("DUPLICATE_MESSAGE", "message already exist", http.StatusBadRequest)
	ErrQueueEmpty       = NewError("QUEUE_EMPTY", "Queue is empty", http.StatusNotFound)
	ErrFilterValidation = NewError("FILTER_VALIDATION_ERROR", "filter is invalid", http.StatusBadRequest)
	ErrNoMatch          = NewError("NO_MATCH", "message not found", http.StatusNotFound)
	ErrNotFound         = NewError("NOT_FOUND", "resource does not exist", http.StatusNotFound)
	ErrMethodNotAllowed = NewError("METHOD_NOT_ALLOWED", "method is not allowed", http.StatusMethodNotAllowed)
	ErrRateLimited      = NewError("RATE_LIMIT_EXCEEDED", "rate limit exceeded", http.StatusTooManyRequests)
	ErrInternal         = NewError("INTERNAL_ERROR", "Internal server error", http.StatusInternalServerError)
)

type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]interface{}
	Cause   error
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	XMLName xml.Name `xml:"Error" json:"-"`
	Message string   `xml:",chardata" json:"error"`
	Code    string   `xml:"-" json:"error_code"`
}

func NewError(code, message string, status int) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  status,
		Details: make(map[string]interface{}),
	}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches coded errors by code, so copies made by the With* helpers
// still satisfy errors.Is against the package sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

func (e *Error) WithCause(cause error) *Error {
	err := *e
	err.Cause = cause
	return &err
}

// WithMessage replaces the client-visible text.
func (e *Error) WithMessage(message string) *Error {
	err := *e
	err.Message = message
	return &err
}

func (e *Error) WithMessagef(format string, args ...interface{}) *Error {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

func (e *Error) WithDetail(key string, value interface{}) *Error {
	err := *e
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	err.Details = details
	return &err
}

// Wrap attaches err as the cause of appErr. A nil err yields nil.
func Wrap(err error, appErr *Error) *Error {
	if err == nil {
		return nil
	}
	return appErr.WithCause(err)
}

func IsCode(err error, appErr *Error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == appErr.Code
	}
	return false
}

func ToHTTPStatus(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

func ToErrorResponse(err error) ErrorResponse {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = ErrInternal.WithCause(err)
	}

	return ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Code,
	}
}
