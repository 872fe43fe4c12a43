package targets

import (
	"testing"

	"github.com/funvibe/spj/internal/prettyprinter"
	"github.com/funvibe/spj/tests/fuzz/mutator"
)

// FuzzMutation mutates parsed corpus programs and checks that the
// mutated tree still prints to code that parses and runs without a
// panic.
func FuzzMutation(f *testing.F) {
	f.Add([]byte("Vypíš ku 1 pripočítaj 2."))
	f.Add([]byte("Nech x je 3-tia odmocnina z 27.\nAk x sa rovná 3, tak (\n    Vypíš \"áno\".\n), inak Vypíš \"nie\"."))
	LoadCorpus(f, corpusDirs...)

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 4096 {
			return
		}
		program, fail := parseSource(string(data))
		if fail != nil {
			return
		}

		// Seed from the input so failures reproduce.
		seed := int64(len(data))
		for _, b := range data {
			seed = seed*31 + int64(b)
		}
		m := mutator.NewASTMutator(seed)
		for i := 0; i < 3; i++ {
			m.Mutate(program)
		}

		mutated := prettyprinter.Code(program)
		if _, fail := parseSource(mutated); fail != nil {
			t.Fatalf("mutated tree printed unparsable code:\n%s\n%s", mutated, fail.Render(false))
		}
		res := runProgram(t, mutated, "")
		checkRender(t, res.failure, mutated)
	})
}
