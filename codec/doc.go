// Package codec provides the per-format adapters between configuration text
// and the ir.Node value tree.
//
// Each adapter registers itself with the package-level registry in init(),
// keyed by format.Format. Lookups go through DecoderFor / EncoderFor; the
// conversion pipeline never touches a format-specific type directly.
//
// Lua registers an encoder only; the validation gate rejects from=lua
// before any decoder lookup happens.
package codec
