package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/confmorph/confmorph/format"
	"github.com/confmorph/confmorph/ir"
)

func init() {
	RegisterDecoder(format.JSONFormat, JSONCodec{})
	RegisterEncoder(format.JSONFormat, JSONCodec{})
}

// JSONCodec decodes strict JSON with a token walker so object key order
// survives, and encodes with a deterministic two-space pretty printer.
type JSONCodec struct{}

func (JSONCodec) Decode(data []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	node, err := decodeJSONValue(dec)
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of JSON input")
		}
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data after top-level JSON value")
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonTokenValue(dec, tok)
}

func jsonTokenValue(dec *json.Decoder, tok json.Token) (*ir.Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		// ']' and '}' are consumed by the container loops; the stdlib
		// decoder rejects them as a value before we see them.
		return nil, fmt.Errorf("unexpected delimiter %q", v.String())
	case string:
		return ir.FromString(v), nil
	case bool:
		return ir.FromBool(v), nil
	case json.Number:
		return ir.FromNumber(v.String())
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

func decodeJSONObject(dec *json.Decoder) (*ir.Node, error) {
	obj := &ir.Node{Type: ir.ObjectType}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return obj, nil
}

func decodeJSONArray(dec *json.Decoder) (*ir.Node, error) {
	arr := &ir.Node{Type: ir.ArrayType}
	for dec.More() {
		elem, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Values = append(arr.Values, elem)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return arr, nil
}

func (JSONCodec) Encode(node *ir.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, node, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const jsonIndent = "  "

func encodeJSON(buf *bytes.Buffer, n *ir.Node, depth int) error {
	switch n.Type {
	case ir.NullType:
		buf.WriteString("null")
	case ir.BoolType:
		if n.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case ir.NumberType:
		if !n.IsFinite() {
			return fmt.Errorf("%w: JSON cannot represent %s", ErrEncoding, n.NumberLit())
		}
		buf.WriteString(n.NumberLit())
	case ir.StringType:
		writeJSONString(buf, n.String)
	case ir.ArrayType:
		if len(n.Values) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, v := range n.Values {
			buf.WriteString(strings.Repeat(jsonIndent, depth+1))
			if err := encodeJSON(buf, v, depth+1); err != nil {
				return err
			}
			if i < len(n.Values)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(jsonIndent, depth))
		buf.WriteByte(']')
	case ir.ObjectType:
		if len(n.Fields) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, f := range n.Fields {
			buf.WriteString(strings.Repeat(jsonIndent, depth+1))
			writeJSONString(buf, f)
			buf.WriteString(": ")
			if err := encodeJSON(buf, n.Values[i], depth+1); err != nil {
				return err
			}
			if i < len(n.Fields)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(jsonIndent, depth))
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: unknown node type %s", ErrEncoding, n.Type)
	}
	return nil
}

// writeJSONString escapes per RFC 8259 without the HTML escaping
// encoding/json applies by default, keeping output diff-friendly.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
