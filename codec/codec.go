package codec

import (
	"errors"

	"github.com/confmorph/confmorph/format"
	"github.com/confmorph/confmorph/ir"
)

// ErrEncoding reports a value tree the target format cannot represent.
var ErrEncoding = errors.New("encode error")

// Decoder turns format-specific text into an ir.Node tree.
type Decoder interface {
	Decode(data []byte) (*ir.Node, error)
}

// Encoder renders an ir.Node tree as format-specific text.
type Encoder interface {
	Encode(node *ir.Node) ([]byte, error)
}

var (
	decoders = map[format.Format]Decoder{}
	encoders = map[format.Format]Encoder{}
)

// RegisterDecoder registers the decoder for a format. Called from adapter
// init() functions only; the registry is read-only afterwards.
func RegisterDecoder(f format.Format, d Decoder) {
	decoders[f] = d
}

// RegisterEncoder registers the encoder for a format.
func RegisterEncoder(f format.Format, e Encoder) {
	encoders[f] = e
}

func DecoderFor(f format.Format) (Decoder, bool) {
	d, ok := decoders[f]
	return d, ok
}

func EncoderFor(f format.Format) (Encoder, bool) {
	e, ok := encoders[f]
	return e, ok
}
