// Package ir provides the intermediate representation (IR) for confmorph
// conversions.
//
// # Overview
//
// Every supported configuration format decodes into an ir.Node tree and
// encodes from one. The IR works as a recursive tagged union structure,
// where values are placed in fields depending on the node type. It carries
// no position information from input documents, making it purely semantic.
//
// # Node Types
//
// The Type field indicates the node's type:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64 or float64)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (fields and values)
//
// # IR Structure Constraints
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there will always be the same number of fields as values. Keys are always
// strings; a format with non-string keys must stringify them before
// constructing the node. Key order is insertion order and is significant:
// order-sensitive encoders (YAML, TOML, Lua) render fields in this order.
// Keys are unique within one object; Set applies last-write-wins.
//
// Number values are placed under:
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//
// Exactly one of the two is set on a NumberType node. Number holds the
// source lexeme when the node was decoded from text; encoders use the
// canonical Int64/Float64 rendering, never the lexeme.
//
// Trees are finite and acyclic. One tree is built per conversion and
// discarded when the conversion completes; nothing in this package holds
// shared state.
package ir
