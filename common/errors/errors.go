package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorCode represents application-specific error codes
type ErrorCode string

const (
	// Validation errors (2xxx)
	ErrCodeValidation       ErrorCode = "E2001"
	ErrCodeMissingField     ErrorCode = "E2003"
	ErrCodeInvalidFormat    ErrorCode = "E2004"
	ErrCodeInvalidJSON      ErrorCode = "E2008"
	ErrCodeMethodNotAllowed ErrorCode = "E2009"

	// External service errors (5xxx)
	ErrCodeNotification ErrorCode = "E5001"

	// Internal errors (9xxx)
	ErrCodeInternal ErrorCode = "E9001"
	ErrCodeDatabase ErrorCode = "E9002"
)

// AppError is an error tagged with a code and the HTTP status it should map to
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
	Stack      string
	Fields     map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithField adds a field to the error
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithStatus overrides the HTTP status derived from the code
func (e *AppError) WithStatus(status int) *AppError {
	e.HTTPStatus = status
	return e
}

// ============================================================
// Error constructors
// ============================================================

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: getHTTPStatus(code),
		Stack:      captureStack(2),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: getHTTPStatus(code),
		Cause:      err,
		Stack:      captureStack(2),
	}
}

// ============================================================
// Predefined error constructors
// ============================================================

func MissingBody() *AppError {
	return New(ErrCodeValidation, "Request body is missing")
}

func InvalidJSON(err error) *AppError {
	return Wrap(err, ErrCodeInvalidJSON, "Invalid JSON format in request body")
}

func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, fmt.Sprintf("Missing or empty required field: %s", field)).WithField("field", field)
}

func InvalidDate() *AppError {
	return New(ErrCodeInvalidFormat, "Invalid date format. Use YYYY-MM-DD").WithField("field", "date")
}

func MissingSubscriptionFields() *AppError {
	return New(ErrCodeMissingField, "Missing required fields: protocol and endpoint")
}

func InvalidProtocol() *AppError {
	return New(ErrCodeInvalidFormat, "Protocol must be 'email' or 'sms'").WithField("field", "protocol")
}

func MissingSubscriptionArn() *AppError {
	return New(ErrCodeMissingField, "Missing required field: subscriptionArn").WithField("field", "subscriptionArn")
}

func MethodNotAllowed(method string) *AppError {
	return New(ErrCodeMethodNotAllowed, fmt.Sprintf("Method %s not allowed", method))
}

// NotificationError wraps a gateway failure. The message is the raw failure
// text because subscribe/unsubscribe surface it to the caller.
func NotificationError(op string, err error) *AppError {
	return Wrap(err, ErrCodeNotification, err.Error()).WithField("operation", op)
}

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

func DatabaseError(err error) *AppError {
	return Wrap(err, ErrCodeDatabase, "Database error")
}

// ============================================================
// Helper functions
// ============================================================

func getHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeMissingField, ErrCodeInvalidFormat, ErrCodeInvalidJSON:
		return http.StatusBadRequest
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeNotification:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func captureStack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip+1, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.File, "runtime/") {
			if !more {
				break
			}
			continue
		}
		sb.WriteString(fmt.Sprintf("%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return sb.String()
}

// ToAppError converts any error to AppError, finding one anywhere in the chain
func ToAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternal, err.Error())
}
