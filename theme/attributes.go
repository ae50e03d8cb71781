package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Attributes holds one component's coerced attributes. Renderers write the
// natural w and h back into it after layout.
type Attributes map[string]Value

// Has reports whether name is present.
func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Float returns the numeric attribute name. Missing or textual attributes
// report false.
func (a Attributes) Float(name string) (float64, bool) {
	v, ok := a[name]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// FloatOr returns the numeric attribute name or def.
func (a Attributes) FloatOr(name string, def float64) float64 {
	if f, ok := a.Float(name); ok {
		return f
	}
	return def
}

// String returns the attribute text, or "" when missing.
func (a Attributes) String(name string) string {
	v, ok := a[name]
	if !ok {
		return ""
	}
	return v.String()
}

// Set stores a numeric attribute.
func (a Attributes) Set(name string, f float64) {
	a[name] = Number(f)
}

// ParseColor renders a color attribute as six lowercase hex digits, zero
// padded. Numbers are formatted in base 16; text is padded as is.
func ParseColor(v Value) string {
	s := v.str
	if f, ok := v.Float(); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			s = fmt.Sprint(f)
		} else {
			s = strconv.FormatInt(int64(f), 16)
		}
	}
	if n := 6 - len(s); n > 0 {
		s = strings.Repeat("0", n) + s
	}
	return s
}
