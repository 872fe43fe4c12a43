package evaluator

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{7, "7"},
		{-3, "-3"},
		{0.25, "0.25"},
		{1.5e10, "15000000000"},
		{123456789, "123456789"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e-10, "1.5e-10"},
		{1e21, "1e+21"},
		{1.25e22, "1.25e+22"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatNumber(tt.input); got != tt.expected {
				t.Errorf("FormatNumber(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{`a"b`, `'a"b'`},
		{`a"b'c`, `'a"b\'c'`},
		{"it's", `"it's"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := quote(tt.input); got != tt.expected {
				t.Errorf("quote(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	native := NewBuiltin("f", func(e *Evaluator, args ...Object) Object { return UNSET })
	point := &Class{Name: "Bod"}
	filled := NewInstance(point)
	filled.SetString("x", &Number{Value: 1})
	filled.SetString("meno", &String{Value: "a"})
	k, _ := keyOf(&Number{Value: 0})
	filled.Properties.Set(k, NewInstance(point))

	tests := []struct {
		name     string
		input    Object
		expected string
	}{
		{"string is raw", &String{Value: "ahoj"}, "ahoj"},
		{"number", &Number{Value: 2.5}, "2.5"},
		{"true", TRUE, "pravda"},
		{"false", FALSE, "nepravda"},
		{"unset", UNSET, "nedefinovaná hodnota"},
		{"native", native,"<natívna funkcia>"},
		{"anonymous empty instance", NewInstance(nil), "{}"},
		{"named empty instance", NewInstance(point), "Bod {}"},
		{"instance", filled, "Bod {\n  x: 1,\n  meno: \"a\",\n  0: <objekt Bod>\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.input); got != tt.expected {
				t.Errorf("Stringify() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPropertyKeys(t *testing.T) {
	instance := NewInstance(nil)
	zero, _ := keyOf(&Number{Value: 0})
	negZero, _ := keyOf(&Number{Value: math.Copysign(0, -1)})
	str, _ := keyOf(&String{Value: "0"})

	instance.Properties.Set(zero, &String{Value: "number"})
	instance.Properties.Set(str, &String{Value: "string"})
	instance.Properties.Set(negZero, &String{Value: "negative zero"})

	if instance.Properties.Len() != 2 {
		t.Fatalf("expected 2 properties, got %d", instance.Properties.Len())
	}
	if got := Stringify(instance.Get(&Number{Value: 0})); got != "negative zero" {
		t.Errorf("number key 0 = %q, want %q", got, "negative zero")
	}
	if got := Stringify(instance.Get(&String{Value: "0"})); got != "string" {
		t.Errorf("string key \"0\" = %q, want %q", got, "string")
	}
	if _, ok := instance.Get(&String{Value: "missing"}).(*Unset); !ok {
		t.Errorf("missing property should be unset")
	}
	if _, ok := keyOf(NewInstance(nil)); ok {
		t.Errorf("an instance must not be usable as a key")
	}
}
