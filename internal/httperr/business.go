package httperr

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidInput     = "invalid_input"
	CodeNotFound         = "not_found"
	CodeInvalidReference = "invalid_reference"
	CodeUnauthorized     = "unauthorized"
	CodeUpstreamFailure  = "upstream_failure"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

// Extensions is picked up by the GraphQL executor and rendered under
// errors[].extensions.
func (e BusinessError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrInvalidInput(format string, args ...any) error {
	return BusinessError{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func ErrNotFound(format string, args ...any) error {
	return BusinessError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func ErrInvalidReference(format string, args ...any) error {
	return BusinessError{Code: CodeInvalidReference, Message: fmt.Sprintf(format, args...)}
}

// ErrUnauthorized carries a fixed message so callers cannot tell a forbidden
// field from a missing owner.
func ErrUnauthorized() error {
	return BusinessError{Code: CodeUnauthorized, Message: "Unauthorized"}
}

// ErrUpstream wraps a failure of an external collaborator. The cause stays
// reachable through errors.Unwrap.
func ErrUpstream(service string, cause error) error {
	return &UpstreamError{Service: service, Cause: cause}
}

type UpstreamError struct {
	Service string
	Cause   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

func (e *UpstreamError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": CodeUpstreamFailure}
}

// Redacted is what a client may see of err: upstream failures lose their cause,
// other errors are returned unchanged.
func Redacted(err error) error {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return BusinessError{Code: CodeUpstreamFailure, Message: ue.Service + " request failed"}
	}
	return err
}

func IsBusiness(err error, code string) bool {
	return Code(err) == code
}

// Code reports the taxonomy code of err, or "" for untyped errors.
func Code(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return CodeUpstreamFailure
	}
	return ""
}
