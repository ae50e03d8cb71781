package theme

import (
	"math"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw   string
		num   bool
		float float64
		text  string
	}{
		{raw: "512", num: true, float: 512},
		{raw: "-12.5", num: true, float: -12.5},
		{raw: ".5", num: true, float: 0.5},
		{raw: "  7", num: true, float: 7},
		{raw: "10px", num: true, float: 10},
		{raw: "1e3", num: true, float: 1000},
		{raw: "2e", num: true, float: 2},
		{raw: "0xFF0000", num: true, float: 0xFF0000},
		{raw: "0x1g", num: true, float: 1},
		{raw: "0x", text: "0x"},
		{raw: "0X10", num: true, float: 0},
		{raw: "Infinity", num: true, float: math.Inf(1)},
		{raw: "none", text: "none"},
		{raw: "grow bounce", text: "grow bounce"},
		{raw: "", text: ""},
		{raw: "-", text: "-"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v := ParseValue(tt.raw)
			if v.IsNumber() != tt.num {
				t.Fatalf("IsNumber = %v, want %v", v.IsNumber(), tt.num)
			}
			if tt.num {
				got, _ := v.Float()
				if got != tt.float {
					t.Errorf("Float = %v, want %v", got, tt.float)
				}
				return
			}
			if v.String() != tt.text {
				t.Errorf("String = %q, want %q", v.String(), tt.text)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	if got := Number(1.5).String(); got != "1.5" {
		t.Errorf("Number(1.5) = %q", got)
	}
	if got := Number(512).String(); got != "512" {
		t.Errorf("Number(512) = %q", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(0xff), "0000ff"},
		{Number(0xFF0000), "ff0000"},
		{Number(0), "000000"},
		{ParseValue("0x00ff00"), "00ff00"},
		{Text("abc"), "000abc"},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.v); got != tt.want {
			t.Errorf("ParseColor(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestAttributes(t *testing.T) {
	a := Attributes{"x": Number(400), "type": Text("fade")}
	if !a.Has("x") || a.Has("y") {
		t.Error("Has mismatch")
	}
	if f, ok := a.Float("x"); !ok || f != 400 {
		t.Errorf("Float(x) = %v, %v", f, ok)
	}
	if _, ok := a.Float("type"); ok {
		t.Error("Float on text should report false")
	}
	if got := a.FloatOr("y", 384); got != 384 {
		t.Errorf("FloatOr = %v", got)
	}
	a.Set("w", 120)
	if a.String("w") != "120" {
		t.Errorf("String(w) = %q", a.String("w"))
	}
	if a.String("missing") != "" {
		t.Error("missing attribute should be empty")
	}
}
