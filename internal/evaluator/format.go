package evaluator

import (
	"math"
	"strconv"
	"strings"
)

const indent = "  "

// FormatNumber renders a number the way JavaScript does: integral values
// without a fraction, exponent notation outside [1e-6, 1e21).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go pads the exponent to two digits: 1e-07 becomes 1e-7.
		mantissa, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// quote renders a string literal, switching to single quotes when the
// text contains a double quote.
func quote(s string) string {
	if strings.Contains(s, `"`) {
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	}
	return `"` + s + `"`
}

// Stringify returns the print form of a value: strings are written raw
// and instances list their properties.
func Stringify(obj Object) string {
	switch v := obj.(type) {
	case *String:
		return v.Value
	case *Instance:
		return stringifyInstance(v)
	}
	return obj.Inspect()
}

func stringifyInstance(i *Instance) string {
	var b strings.Builder
	if i.Class != nil && i.Class.Name != "" {
		b.WriteString(i.Class.Name + " ")
	}
	if i.Properties.Len() == 0 {
		b.WriteString("{}")
		return b.String()
	}
	b.WriteString("{\n")
	first := true
	i.Properties.Each(func(key, value Object) {
		if !first {
			b.WriteString(",\n")
		}
		first = false
		b.WriteString(indent + Stringify(key) + ": " + strings.ReplaceAll(value.Inspect(), "\n", "\n"+indent))
	})
	b.WriteString("\n}")
	return b.String()
}
