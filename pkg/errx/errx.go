// Package errx provides registered, typed errors shared by the connector
// packages. Each package owns a Registry with its own code prefix.
package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Code uniquely identifies a registered error.
type Code string

// Type is the broad category of an error.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeBadRequest    Type = "BAD_REQUEST"
	TypeRateLimit     Type = "RATE_LIMIT"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	HTTPStatus int            `json:"-"`
	cause      error
}

// Error returns the human readable message only. Item outputs carry this
// text verbatim, so codes stay out of it.
func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches registered errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// Describe renders code, type and details for logs.
func Describe(err error) string {
	if err == nil {
		return "nil"
	}
	var xerr *Error
	if errors.As(err, &xerr) {
		if len(xerr.Details) > 0 {
			return fmt.Sprintf("[%s] %s: %s %v", xerr.Type, xerr.Code, xerr.Message, xerr.Details)
		}
		return fmt.Sprintf("[%s] %s: %s", xerr.Type, xerr.Code, xerr.Message)
	}
	return err.Error()
}

// IsCode reports whether any registered error in err's chain carries code.
func IsCode(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}

func IsType(err error, errType Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == errType
	}
	return false
}

// HTTPStatus returns the status registered for err, or 500 for foreign errors.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) && e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Registry holds the error definitions of one package.
type Registry struct {
	prefix    string
	errorDefs map[Code]*Error
}

func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix:    prefix,
		errorDefs: make(map[Code]*Error),
	}
}

// Register adds a definition and returns its prefixed code.
func (r *Registry) Register(code Code, errType Type, httpStatus int, message string) Code {
	fullCode := Code(fmt.Sprintf("%s_%s", r.prefix, code))
	r.errorDefs[fullCode] = &Error{
		Code:       fullCode,
		Type:       errType,
		Message:    message,
		HTTPStatus: httpStatus,
	}
	return fullCode
}

// New returns a fresh copy of a registered definition.
func (r *Registry) New(code Code) *Error {
	if def, ok := r.errorDefs[code]; ok {
		return &Error{
			Code:       def.Code,
			Type:       def.Type,
			Message:    def.Message,
			HTTPStatus: def.HTTPStatus,
		}
	}
	return &Error{
		Code:       "UNKNOWN_ERROR",
		Type:       TypeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
	}
}

func (r *Registry) NewWithMessage(code Code, message string) *Error {
	err := r.New(code)
	err.Message = message
	return err
}

func (r *Registry) NewWithCause(code Code, cause error) *Error {
	err := r.New(code)
	err.cause = cause
	return err
}
