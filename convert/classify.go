package convert

import (
	"fmt"
	"net/http"

	"github.com/confmorph/confmorph/format"
)

// Stage names the pipeline step a raw failure came from.
type Stage string

const (
	StageDecode Stage = "decode"
	StageEncode Stage = "encode"
)

// Classify reduces a raw decode/encode failure to the stable taxonomy: a
// per-format code, a message carrying the underlying library error text,
// and an optional hint looked up from the per-format hint tables. A failure
// from an unknown stage is treated as an internal fault and reported
// without detail.
func Classify(stage Stage, f format.Format, err error) *Error {
	raw := err.Error()
	switch stage {
	case StageDecode:
		return &Error{
			Code:    ParseFailedCode(f),
			Message: fmt.Sprintf("failed to parse %s content: %s", f, raw),
			Hint:    Hint(f, raw),
			Format:  f.String(),
			Status:  http.StatusUnprocessableEntity,
		}
	case StageEncode:
		return &Error{
			Code:    StringifyFailedCode(f),
			Message: fmt.Sprintf("failed to render %s output: %s", f, raw),
			Hint:    Hint(f, raw),
			Format:  f.String(),
			Status:  http.StatusUnprocessableEntity,
		}
	default:
		return Internal()
	}
}
