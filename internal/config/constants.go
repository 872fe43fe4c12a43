package config

import (
	"path/filepath"
	"strings"
)

const SourceFileExt = ".spj"

// ProjectFileNames are the names searched for a project configuration.
var ProjectFileNames = []string{"spj.yaml", "spj.yml"}

// DefaultMaxDepth bounds evaluator recursion.
const DefaultMaxDepth = 10000

// Reserved scope entries threaded by the call and construction machinery.
// The colon keeps them out of reach of user identifiers.
const (
	ThisBinding      = "internals:this"
	ArgumentsBinding = "internals:arguments"
	PrintFuncName    = "internals:print_stdout"
	ConcatFuncName   = "internals:string_concat"
)

// Property and class names the runtime itself relies on.
const (
	ConstructorName    = "konštruktor"
	SuperName          = "nadtrieda"
	IteratorMethodName = "iterátor"
	NextMethodName     = "ďalší"
	LengthName         = "dĺžka"
	ArgumentsClassName = "Argumenty"
)

// Global constants.
const (
	TrueName  = "pravda"
	FalseName = "nepravda"
)

// Display names of runtime types, as returned by `typ`.
const (
	FunctionTypeName = "funkcia"
	ClassTypeName    = "trieda"
	InstanceTypeName = "inštancia"
	NumberTypeName   = "číslo"
	StringTypeName   = "reťazec"
	BooleanTypeName  = "tvrdenie"
	UnsetTypeName    = "nedefinovaná hodnota"
)

// HasSourceExt reports whether path ends in the source extension.
func HasSourceExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SourceFileExt)
}

// TrimSourceExt removes the source extension if present.
func TrimSourceExt(path string) string {
	if HasSourceExt(path) {
		return path[:len(path)-len(SourceFileExt)]
	}
	return path
}
