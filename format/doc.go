// Package format identifies the textual configuration formats confmorph
// converts between.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//
// A Format names a wire encoding only; the per-format decode/encode
// behavior lives in the codec package.
//
// # Related Packages
//
//   - github.com/confmorph/confmorph/ir - the generic value tree
//   - github.com/confmorph/confmorph/codec - per-format adapters
package format
