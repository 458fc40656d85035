package codec

import (
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/confmorph/confmorph/format"
	"github.com/confmorph/confmorph/ir"
)

func init() {
	RegisterDecoder(format.YAMLFormat, YAMLCodec{})
	RegisterEncoder(format.YAMLFormat, YAMLCodec{})
}

// YAMLCodec decodes with ordered mappings (yaml.MapSlice) so key order
// survives conversion, and encodes block style. Anchors and aliases are
// resolved by the library before values reach the tree.
type YAMLCodec struct{}

func (YAMLCodec) Decode(data []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return fromYAMLValue(v)
}

func fromYAMLValue(v any) (*ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case int64:
		return ir.FromInt(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return ir.FromFloat(float64(t)), nil
		}
		return ir.FromInt(int64(t)), nil
	case float32:
		return ir.FromFloat(float64(t)), nil
	case float64:
		return ir.FromFloat(t), nil
	case time.Time:
		return ir.FromString(t.Format(time.RFC3339)), nil
	case yaml.MapSlice:
		obj := &ir.Node{Type: ir.ObjectType}
		for _, item := range t {
			val, err := fromYAMLValue(item.Value)
			if err != nil {
				return nil, err
			}
			obj.Set(yamlKeyString(item.Key), val)
		}
		return obj, nil
	case []any:
		arr := &ir.Node{Type: ir.ArrayType}
		for _, elem := range t {
			val, err := fromYAMLValue(elem)
			if err != nil {
				return nil, err
			}
			arr.Values = append(arr.Values, val)
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unsupported YAML value of type %T", v)
	}
}

// yamlKeyString stringifies mapping keys; YAML permits non-string keys but
// the value tree does not.
func yamlKeyString(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case float64:
		return ir.FormatJSONFloat(t)
	case float32:
		return ir.FormatJSONFloat(float64(t))
	default:
		return fmt.Sprint(t)
	}
}

func (YAMLCodec) Encode(node *ir.Node) ([]byte, error) {
	v, err := toYAMLValue(node)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toYAMLValue(n *ir.Node) (any, error) {
	switch n.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return n.Bool, nil
	case ir.NumberType:
		if n.Int64 != nil {
			return *n.Int64, nil
		}
		if n.Float64 != nil {
			return *n.Float64, nil
		}
		return nil, fmt.Errorf("%w: number node carries no value", ErrEncoding)
	case ir.StringType:
		return n.String, nil
	case ir.ArrayType:
		vs := make([]any, len(n.Values))
		for i, v := range n.Values {
			var err error
			if vs[i], err = toYAMLValue(v); err != nil {
				return nil, err
			}
		}
		return vs, nil
	case ir.ObjectType:
		ms := make(yaml.MapSlice, len(n.Fields))
		for i, f := range n.Fields {
			val, err := toYAMLValue(n.Values[i])
			if err != nil {
				return nil, err
			}
			ms[i] = yaml.MapItem{Key: f, Value: val}
		}
		return ms, nil
	default:
		return nil, fmt.Errorf("%w: unknown node type %s", ErrEncoding, n.Type)
	}
}
