package codec

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/confmorph/confmorph/format"
	"github.com/confmorph/confmorph/ir"
)

func init() {
	RegisterDecoder(format.TOMLFormat, TOMLCodec{})
	RegisterEncoder(format.TOMLFormat, TOMLCodec{})
}

// TOMLCodec decodes with BurntSushi/toml, recovering key declaration order
// from MetaData.Keys, and encodes with an order-preserving renderer. The
// renderer refuses trees TOML cannot express: null values, a non-table
// root, and arrays mixing element kinds.
type TOMLCodec struct{}

func (TOMLCodec) Decode(data []byte) (*ir.Node, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	return newTOMLOrder(md.Keys()).object(raw, nil)
}

// tomlOrder maps dotted key paths to their first position in the document.
// BurntSushi decodes tables into unordered Go maps; MetaData.Keys is the
// only record of declaration order.
type tomlOrder struct {
	idx map[string]int
}

func newTOMLOrder(keys []toml.Key) *tomlOrder {
	idx := make(map[string]int, len(keys))
	for i, k := range keys {
		p := tomlPathKey(k)
		if _, ok := idx[p]; !ok {
			idx[p] = i
		}
	}
	return &tomlOrder{idx: idx}
}

// \x1f separates path segments; keys may themselves contain dots.
func tomlPathKey(path []string) string {
	return strings.Join(path, "\x1f")
}

func (o *tomlOrder) indexOf(path []string) int {
	if i, ok := o.idx[tomlPathKey(path)]; ok {
		return i
	}
	return math.MaxInt
}

func (o *tomlOrder) object(m map[string]any, path []string) (*ir.Node, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Alphabetical first so untracked keys still order deterministically,
	// then stable by document position.
	sort.Strings(keys)
	sort.SliceStable(keys, func(i, j int) bool {
		return o.indexOf(append(path, keys[i])) < o.indexOf(append(path, keys[j]))
	})

	obj := &ir.Node{Type: ir.ObjectType}
	for _, k := range keys {
		val, err := o.value(m[k], append(path, k))
		if err != nil {
			return nil, err
		}
		obj.Set(k, val)
	}
	return obj, nil
}

func (o *tomlOrder) value(v any, path []string) (*ir.Node, error) {
	switch t := v.(type) {
	case map[string]any:
		return o.object(t, path)
	case []map[string]any:
		arr := &ir.Node{Type: ir.ArrayType}
		for _, elem := range t {
			// array-of-tables elements share the declaration path
			node, err := o.object(elem, path)
			if err != nil {
				return nil, err
			}
			arr.Values = append(arr.Values, node)
		}
		return arr, nil
	case []any:
		arr := &ir.Node{Type: ir.ArrayType}
		for _, elem := range t {
			node, err := o.value(elem, path)
			if err != nil {
				return nil, err
			}
			arr.Values = append(arr.Values, node)
		}
		return arr, nil
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case int64:
		return ir.FromInt(t), nil
	case float64:
		return ir.FromFloat(t), nil
	case time.Time:
		return ir.FromString(t.Format(time.RFC3339)), nil
	default:
		// BurntSushi can hand back typed slices for homogeneous arrays.
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice {
			arr := &ir.Node{Type: ir.ArrayType}
			for i := 0; i < rv.Len(); i++ {
				node, err := o.value(rv.Index(i).Interface(), path)
				if err != nil {
					return nil, err
				}
				arr.Values = append(arr.Values, node)
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unsupported TOML value of type %T", v)
	}
}

func (TOMLCodec) Encode(node *ir.Node) ([]byte, error) {
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: top-level TOML value must be a table, got %s", ErrEncoding, node.Type)
	}
	var buf bytes.Buffer
	if err := encodeTOMLTable(&buf, node, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeTOMLTable writes a table body: inline key/values first (TOML
// requires they precede any sub-table header), then [table] and [[array]]
// sections, each group keeping the tree's field order.
func encodeTOMLTable(buf *bytes.Buffer, n *ir.Node, path []string) error {
	var tables, arrayTables []int

	for i, key := range n.Fields {
		val := n.Values[i]
		switch {
		case val.Type == ir.ObjectType:
			tables = append(tables, i)
		case isTOMLArrayOfTables(val):
			arrayTables = append(arrayTables, i)
		default:
			writeTOMLKey(buf, key)
			buf.WriteString(" = ")
			if err := writeTOMLValue(buf, val, tomlKeyPath(path, key)); err != nil {
				return err
			}
			buf.WriteByte('\n')
		}
	}

	for _, i := range tables {
		sub := append(path, n.Fields[i])
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteByte('[')
		writeTOMLHeaderPath(buf, sub)
		buf.WriteString("]\n")
		if err := encodeTOMLTable(buf, n.Values[i], sub); err != nil {
			return err
		}
	}
	for _, i := range arrayTables {
		sub := append(path, n.Fields[i])
		for _, elem := range n.Values[i].Values {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString("[[")
			writeTOMLHeaderPath(buf, sub)
			buf.WriteString("]]\n")
			if err := encodeTOMLTable(buf, elem, sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// isTOMLArrayOfTables reports whether an array renders as [[header]]
// sections: non-empty with every element a table.
func isTOMLArrayOfTables(n *ir.Node) bool {
	if n.Type != ir.ArrayType || len(n.Values) == 0 {
		return false
	}
	for _, v := range n.Values {
		if v.Type != ir.ObjectType {
			return false
		}
	}
	return true
}

func writeTOMLValue(buf *bytes.Buffer, n *ir.Node, path string) error {
	switch n.Type {
	case ir.NullType:
		return fmt.Errorf("%w: TOML cannot represent null (at %s)", ErrEncoding, path)
	case ir.BoolType:
		buf.WriteString(strconv.FormatBool(n.Bool))
	case ir.NumberType:
		return writeTOMLNumber(buf, n, path)
	case ir.StringType:
		writeTOMLString(buf, n.String)
	case ir.ArrayType:
		if err := checkTOMLArrayKinds(n, path); err != nil {
			return err
		}
		buf.WriteString("[")
		for i, v := range n.Values {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := writeTOMLValue(buf, v, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		buf.WriteString("]")
	case ir.ObjectType:
		// inline table; reached only inside arrays
		if len(n.Fields) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{ ")
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteString(", ")
			}
			writeTOMLKey(buf, f)
			buf.WriteString(" = ")
			if err := writeTOMLValue(buf, n.Values[i], tomlKeyPath([]string{path}, f)); err != nil {
				return err
			}
		}
		buf.WriteString(" }")
	default:
		return fmt.Errorf("%w: unknown node type %s", ErrEncoding, n.Type)
	}
	return nil
}

func writeTOMLNumber(buf *bytes.Buffer, n *ir.Node, path string) error {
	if n.Int64 != nil {
		buf.WriteString(strconv.FormatInt(*n.Int64, 10))
		return nil
	}
	if n.Float64 == nil {
		return fmt.Errorf("%w: number node carries no value (at %s)", ErrEncoding, path)
	}
	f := *n.Float64
	switch {
	case math.IsNaN(f):
		buf.WriteString("nan")
	case math.IsInf(f, 1):
		buf.WriteString("inf")
	case math.IsInf(f, -1):
		buf.WriteString("-inf")
	default:
		s := ir.FormatJSONFloat(f)
		// TOML floats must look like floats
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
	}
	return nil
}

// checkTOMLArrayKinds rejects arrays whose elements disagree on kind, the
// shape classic TOML encoders refuse.
func checkTOMLArrayKinds(n *ir.Node, path string) error {
	var kind ir.Type
	for i, v := range n.Values {
		if v.Type == ir.NullType {
			return fmt.Errorf("%w: TOML cannot represent null (at %s[%d])", ErrEncoding, path, i)
		}
		if i == 0 {
			kind = v.Type
			continue
		}
		if v.Type != kind {
			return fmt.Errorf("%w: TOML array mixes %s and %s elements (at %s)", ErrEncoding, kind, v.Type, path)
		}
	}
	return nil
}

func tomlBareKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

func writeTOMLKey(buf *bytes.Buffer, key string) {
	if tomlBareKey(key) {
		buf.WriteString(key)
		return
	}
	writeTOMLString(buf, key)
}

func writeTOMLHeaderPath(buf *bytes.Buffer, path []string) {
	for i, seg := range path {
		if i > 0 {
			buf.WriteByte('.')
		}
		writeTOMLKey(buf, seg)
	}
}

func tomlKeyPath(path []string, key string) string {
	return strings.Join(append(append([]string(nil), path...), key), ".")
}

// writeTOMLString renders a basic (double-quoted) string.
func writeTOMLString(buf *bytes.Buffer, s string) {
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
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(buf, `\u%04X`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
