package evaluator

import (
	"fmt"
	"strings"

	"github.com/funvibe/spj/internal/config"
)

// RegisterBuiltins installs the global constants and native functions.
func RegisterBuiltins(env *Environment) {
	env.Set(config.TrueName, TRUE)
	env.Set(config.FalseName, FALSE)
	env.Set(config.ThisBinding, UNSET)
	env.Set(config.PrintFuncName, &Function{Name: "Vypíš", Native: builtinPrint})
	env.Set(config.ConcatFuncName, &Function{Name: "spoj", Native: builtinConcat})
}

// builtinPrint writes the print form of its argument on its own line and
// returns the argument.
func builtinPrint(e *Evaluator, args ...Object) Object {
	var val Object = UNSET
	if len(args) > 0 {
		val = args[0]
	}
	fmt.Fprintln(e.Out, Stringify(val))
	return val
}

func builtinConcat(e *Evaluator, args ...Object) Object {
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(Stringify(arg))
	}
	return &String{Value: b.String()}
}

// NewBuiltin wraps a Go function as a runtime function value.
func NewBuiltin(name string, fn NativeFunction) *Function {
	return &Function{Name: name, Native: fn}
}
