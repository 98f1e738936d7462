package forgeads

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// Each code maps to one category of failure the caller can act on.
// Adapters classify their failures at the boundary so the core never
// inspects transport-specific errors.
const (
	EINVALID      = "invalid"      // malformed or missing caller input
	EUNREACHABLE  = "unreachable"  // source URL could not be fetched
	EINSUFFICIENT = "insufficient" // source yielded too little signal
	EUNANALYZABLE = "unanalyzable" // analysis could not identify the product
	EUPSTREAM     = "upstream"     // external collaborator failed
	ENOTFOUND     = "not_found"
	EINTERNAL     = "internal"
)

// GenericFailureMessage is shown to users for failures whose details are
// not actionable on their side.
const GenericFailureMessage = "Erro ao gerar criativo. Tente novamente."

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message, safe to show to end users.
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("forgeads error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// UserMessage returns the message to display for err.
//
// Validation, source and analysis failures carry source-specific messages
// that tell the user what to fix. Collaborator and internal failures are
// reported with GenericFailureMessage.
func UserMessage(err error) string {
	switch ErrorCode(err) {
	case "":
		return ""
	case EINVALID, EUNREACHABLE, EINSUFFICIENT, EUNANALYZABLE, ENOTFOUND:
		return ErrorMessage(err)
	default:
		return GenericFailureMessage
	}
}
