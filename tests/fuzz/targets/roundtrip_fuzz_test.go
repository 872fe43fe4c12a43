package targets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/prettyprinter"
	"github.com/funvibe/spj/tests/fuzz/generators"
)

var ignoreSpans = cmpopts.IgnoreTypes(ast.Span(nil))

// FuzzRoundTrip checks that printing a parsed program gives code that
// parses back to the same tree, prints identically again and runs with
// the same output.
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("seed"))
	f.Add([]byte{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5})
	LoadCorpus(f, corpusDirs...)

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1000 {
			return
		}
		input := generators.NewFromData(data).GenerateProgram()

		first, fail := parseSource(input)
		if fail != nil {
			return
		}
		printed := prettyprinter.Code(first)

		second, fail := parseSource(printed)
		if fail != nil {
			t.Fatalf("printed code does not parse.\nOriginal:\n%s\nPrinted:\n%s\n%s", input, printed, fail.Render(false))
		}
		if diff := cmp.Diff(first, second, ignoreSpans); diff != "" {
			t.Fatalf("tree changed after printing (-original +reparsed):\n%s\nOriginal:\n%s\nPrinted:\n%s", diff, input, printed)
		}
		if again := prettyprinter.Code(second); again != printed {
			t.Fatalf("printing is not stable.\nFirst:\n%s\nSecond:\n%s", printed, again)
		}

		want := runProgram(t, input, "")
		got := runProgram(t, printed, "")
		if !want.finished || !got.finished {
			return
		}
		if want.output != got.output {
			t.Fatalf("output changed after printing.\nOriginal output:\n%s\nPrinted output:\n%s\nPrinted:\n%s", want.output, got.output, printed)
		}
		if (want.failure == nil) != (got.failure == nil) {
			t.Fatalf("failure changed after printing: %v vs %v", want.failure, got.failure)
		}
		if want.failure != nil && want.failure.Code != got.failure.Code {
			t.Fatalf("failure code changed after printing: %s vs %s", want.failure.Code, got.failure.Code)
		}
	})
}
