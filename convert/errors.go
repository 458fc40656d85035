package convert

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/confmorph/confmorph/format"
)

// Stable machine-readable error codes. Parse and stringify codes are
// derived per format: PARSE_<FORMAT>_FAILED / STRINGIFY_<FORMAT>_FAILED.
const (
	CodeInvalidBody        = "INVALID_BODY"
	CodeInvalidFrom        = "INVALID_FROM"
	CodeUnsupportedFrom    = "UNSUPPORTED_FROM"
	CodeInvalidTo          = "INVALID_TO"
	CodeUnsupportedTo      = "UNSUPPORTED_TO"
	CodeInvalidContent     = "INVALID_CONTENT"
	CodeUnsupportedFromLua = "UNSUPPORTED_FROM_LUA"
	CodeContentTooLarge    = "CONTENT_TOO_LARGE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInternal           = "INTERNAL_ERROR"
)

func ParseFailedCode(f format.Format) string {
	return "PARSE_" + strings.ToUpper(f.String()) + "_FAILED"
}

func StringifyFailedCode(f format.Format) string {
	return "STRINGIFY_" + strings.ToUpper(f.String()) + "_FAILED"
}

// Error is the structured form every failure is reduced to before it
// crosses the HTTP boundary.
type Error struct {
	Code    string
	Message string
	Hint    string
	Format  string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

func badRequest(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusBadRequest}
}

// Internal is the generic fault: reported without detail so internals
// never leak to callers.
func Internal() *Error {
	return &Error{
		Code:    CodeInternal,
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
	}
}

// Unauthorized rejects a request failing the caller-identity check.
func Unauthorized() *Error {
	return &Error{
		Code:    CodeUnauthorized,
		Message: "missing or invalid API key",
		Status:  http.StatusUnauthorized,
	}
}

func supportedFormats() string {
	names := make([]string, 0, len(format.AllFormats()))
	for _, f := range format.AllFormats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

func unsupportedFormat(code, field, got string) *Error {
	return badRequest(code, fmt.Sprintf("%q is not a supported %s format; expected one of: %s", got, field, supportedFormats()))
}
