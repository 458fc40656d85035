package ir

import (
	"fmt"
	"strconv"
)

type Node struct {
	Type Type

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64

	Fields []string
	Values []*Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// FromNumber builds a NumberType node from a numeric lexeme, preferring the
// integer interpretation when the lexeme parses as one.
func FromNumber(lexeme string) (*Node, error) {
	if i, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
		return &Node{Type: NumberType, Int64: &i, Number: lexeme}, nil
	}
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", lexeme, err)
	}
	return &Node{Type: NumberType, Float64: &f, Number: lexeme}, nil
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	for i := range kvs {
		res.Set(kvs[i].Key, kvs[i].Val)
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	return &Node{
		Type:   ArrayType,
		Values: vs,
	}
}

func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i] == field {
			return y.Values[i]
		}
	}
	return nil
}

// Set sets field to val on an object node. A repeated key replaces the
// earlier value in place (last-write-wins), keeping the key's original
// position.
func (y *Node) Set(field string, val *Node) {
	for i := range y.Fields {
		if y.Fields[i] == field {
			y.Values[i] = val
			return
		}
	}
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, val)
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{
		Type:   y.Type,
		String: y.String,
		Bool:   y.Bool,
		Number: y.Number,
	}
	if y.Int64 != nil {
		i := *y.Int64
		res.Int64 = &i
	}
	if y.Float64 != nil {
		f := *y.Float64
		res.Float64 = &f
	}
	if y.Fields != nil {
		res.Fields = append([]string(nil), y.Fields...)
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
