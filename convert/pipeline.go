package convert

import (
	"github.com/confmorph/confmorph/codec"
)

// Convert runs the decode -> encode pipeline for a validated request. The
// result is either the complete target-format text or a classified error;
// never both, never partial output.
func Convert(req *Request) (string, *Error) {
	dec, ok := codec.DecoderFor(req.From)
	if !ok {
		// the gate admits only decodable sources; reaching here is a bug
		return "", Internal()
	}
	node, err := dec.Decode([]byte(req.Content))
	if err != nil {
		return "", Classify(StageDecode, req.From, err)
	}

	enc, ok := codec.EncoderFor(req.To)
	if !ok {
		return "", Internal()
	}
	out, err := enc.Encode(node)
	if err != nil {
		return "", Classify(StageEncode, req.To, err)
	}
	return string(out), nil
}
