package ir

import (
	"math"
	"strconv"
	"strings"
)

// NumberLit renders a NumberType node the way encoding/json renders numbers:
// base-10 integers, shortest-form floats with 'e' notation outside
// [1e-6, 1e21), and a trimmed single-digit negative exponent (1e-7, not
// 1e-07). All encoders share this rendering so a value converts identically
// regardless of target format.
func (y *Node) NumberLit() string {
	switch {
	case y.Int64 != nil:
		return strconv.FormatInt(*y.Int64, 10)
	case y.Float64 != nil:
		return FormatJSONFloat(*y.Float64)
	default:
		return y.Number
	}
}

// IsFinite reports whether a NumberType node holds a value JSON can render.
// Integer nodes are always finite.
func (y *Node) IsFinite() bool {
	if y.Float64 == nil {
		return true
	}
	f := *y.Float64
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func FormatJSONFloat(f float64) string {
	abs := math.Abs(f)
	fmtByte := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmtByte = 'e'
	}
	s := strconv.FormatFloat(f, fmtByte, -1, 64)
	if fmtByte == 'e' {
		// e-09 -> e-9, matching encoding/json
		if i := strings.LastIndexByte(s, 'e'); i >= 0 && i+3 < len(s) {
			if s[i+1] == '-' && s[i+2] == '0' {
				s = s[:i+2] + s[i+3:]
			}
		}
	}
	return s
}
