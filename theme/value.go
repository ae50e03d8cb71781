package theme

import (
	"math"
	"strconv"
	"strings"
)

// Value is a coerced attribute value: either a number or a string.
type Value struct {
	num   float64
	str   string
	isNum bool
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{num: f, isNum: true} }

// Text returns a string Value.
func Text(s string) Value { return Value{str: s} }

// ParseValue coerces raw attribute text. Text starting with "0x" is read as a
// base-16 integer; anything else as the longest decimal float prefix. Text
// with no numeric reading stays a string.
func ParseValue(raw string) Value {
	if strings.HasPrefix(raw, "0x") {
		if n, ok := parseHexPrefix(raw[2:]); ok {
			return Number(n)
		}
		return Text(raw)
	}
	if f, ok := parseFloatPrefix(raw); ok {
		return Number(f)
	}
	return Text(raw)
}

// IsNumber reports whether the value was coerced to a number.
func (v Value) IsNumber() bool { return v.isNum }

// Float returns the numeric value.
func (v Value) Float() (float64, bool) { return v.num, v.isNum }

// String returns the text of the value, formatting numbers without exponent
// where possible.
func (v Value) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

func parseHexPrefix(s string) (float64, bool) {
	end := 0
	for end < len(s) && isHexDigit(s[end]) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(s[:end], 16, 64)
	if err != nil {
		// Overflow still has a numeric reading.
		f := 0.0
		for i := 0; i < end; i++ {
			f = f*16 + float64(hexVal(s[i]))
		}
		return f, true
	}
	return float64(n), true
}

// parseFloatPrefix reads the longest prefix of s (after leading whitespace)
// that forms a decimal float: sign, digits, fraction, exponent, or Infinity.
func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		// Out of range values saturate the way a float parse would.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) int {
	switch {
	case isDigit(c):
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
