package model

import "fmt"

// ErrorKind classifies a DomainError for transport mapping
type ErrorKind string

const (
	KindNotFound             ErrorKind = "NOT_FOUND"
	KindInvalidComponentRule ErrorKind = "INVALID_COMPONENT_RULE"
	KindStorageFailure       ErrorKind = "STORAGE_FAILURE"
)

// DomainError is returned by the rule engine and the services.
// Code identifies the violated rule, Message is safe to show to callers.
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	cause   error
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches sentinels by kind, and specific errors by kind and code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// Sentinels for errors.Is checks
var (
	ErrNotFound             = &DomainError{Kind: KindNotFound}
	ErrInvalidComponentRule = &DomainError{Kind: KindInvalidComponentRule}
	ErrStorageFailure       = &DomainError{Kind: KindStorageFailure}
)

// NotFound builds a NotFound error for the named resource
func NotFound(resource string) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// InvalidRule builds an InvalidComponentRule error
func InvalidRule(code, format string, args ...any) *DomainError {
	return &DomainError{
		Kind:    KindInvalidComponentRule,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// StorageFailure wraps an unexpected persistence error. The message never carries the cause.
func StorageFailure(cause error) *DomainError {
	return &DomainError{
		Kind:    KindStorageFailure,
		Code:    "STORAGE_FAILURE",
		Message: "an internal storage error occurred",
		cause:   cause,
	}
}
