package convert

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/confmorph/confmorph/format"
)

// MaxContentBytes is the content ceiling, measured on the raw text length,
// not the decoded value size.
const MaxContentBytes = 1 << 20

// RawRequest is the loosely typed request body. Fields stay raw JSON so the
// gate can tell a wrong-typed field apart from a malformed body.
type RawRequest struct {
	From    json.RawMessage `json:"from"`
	To      json.RawMessage `json:"to"`
	Content json.RawMessage `json:"content"`
}

// Request is a validated conversion request.
type Request struct {
	From    format.Format
	To      format.Format
	Content string
}

// ValidateRequest runs the gate checks in order, short-circuiting on the
// first failure: from, to, content presence, content size, then the Lua
// source rejection. No parsing of Content happens here.
func ValidateRequest(raw *RawRequest) (*Request, *Error) {
	from, ok := rawString(raw.From)
	if !ok {
		return nil, badRequest(CodeInvalidFrom, "field 'from' is required and must be a string")
	}
	fromFormat, err := format.ParseFormat(from)
	if err != nil {
		return nil, unsupportedFormat(CodeUnsupportedFrom, "source", from)
	}

	to, ok := rawString(raw.To)
	if !ok {
		return nil, badRequest(CodeInvalidTo, "field 'to' is required and must be a string")
	}
	toFormat, err := format.ParseFormat(to)
	if err != nil {
		return nil, unsupportedFormat(CodeUnsupportedTo, "target", to)
	}

	content, ok := rawString(raw.Content)
	if !ok || content == "" {
		return nil, badRequest(CodeInvalidContent, "field 'content' is required and must be a non-empty string")
	}
	if len(content) > MaxContentBytes {
		return nil, &Error{
			Code:    CodeContentTooLarge,
			Message: fmt.Sprintf("content is %d bytes; the limit is %d", len(content), MaxContentBytes),
			Status:  http.StatusRequestEntityTooLarge,
		}
	}

	if fromFormat.IsLua() {
		return nil, badRequest(CodeUnsupportedFromLua, "converting from lua is not yet available")
	}

	return &Request{From: fromFormat, To: toFormat, Content: content}, nil
}

// rawString unwraps a raw JSON field into a string; absent or non-string
// fields report false.
func rawString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
