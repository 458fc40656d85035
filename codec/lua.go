package codec

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/confmorph/confmorph/format"
	"github.com/confmorph/confmorph/ir"
)

func init() {
	// encode only: Lua sources are rejected before any decoder lookup
	RegisterEncoder(format.LuaFormat, LuaCodec{})
}

// LuaCodec renders a value tree as a loadable Lua chunk: `return <literal>`.
//
// Rendering rules:
//   - strings are double-quoted; only embedded double quotes are escaped,
//     backslashes and control characters pass through verbatim
//   - mapping keys always use the bracketed form ["key"] = value, whether
//     or not the key is a valid Lua identifier
//   - empty sequences and empty mappings both render as `{  }`
//
// The same tree always renders to the same bytes.
type LuaCodec struct{}

func (LuaCodec) Encode(node *ir.Node) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("return ")
	if err := encodeLua(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeLua(buf *bytes.Buffer, n *ir.Node) error {
	switch n.Type {
	case ir.NullType:
		buf.WriteString("nil")
	case ir.BoolType:
		buf.WriteString(strconv.FormatBool(n.Bool))
	case ir.NumberType:
		buf.WriteString(n.NumberLit())
	case ir.StringType:
		writeLuaString(buf, n.String)
	case ir.ArrayType:
		buf.WriteString("{ ")
		for i, v := range n.Values {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := encodeLua(buf, v); err != nil {
				return err
			}
		}
		buf.WriteString(" }")
	case ir.ObjectType:
		buf.WriteString("{ ")
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteByte('[')
			writeLuaString(buf, f)
			buf.WriteString("] = ")
			if err := encodeLua(buf, n.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteString(" }")
	default:
		return fmt.Errorf("%w: unknown node type %s", ErrEncoding, n.Type)
	}
	return nil
}

func writeLuaString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(s, `"`, `\"`))
	buf.WriteByte('"')
}
