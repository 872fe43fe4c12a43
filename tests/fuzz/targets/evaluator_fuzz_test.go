package targets

import (
	"testing"

	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/tests/fuzz/generators"
)

// FuzzEvaluator runs generated programs. They may fail at runtime but
// must not panic, must finish, and must behave the same on every run.
func FuzzEvaluator(f *testing.F) {
	f.Add([]byte("seed"))
	f.Add([]byte{0, 7, 7, 7, 9, 9, 9, 1, 1})
	f.Add([]byte{8, 8, 8, 8, 8, 8, 8, 8})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1000 {
			return
		}
		input := generators.NewFromData(data).GenerateProgram()

		first := runProgram(t, input, "")
		if !first.finished {
			t.Fatalf("generated program did not finish:\n%s", input)
		}
		if first.failure != nil {
			if first.failure.Kind() != "RuntimeError" {
				t.Fatalf("generated program failed before running:\n%s\n%s", input, first.failure.Render(false))
			}
			checkRender(t, first.failure, input)
		}

		second := runProgram(t, input, "")
		if first.output != second.output {
			t.Fatalf("output differs between runs:\n%s\nvs\n%s\ninput:\n%s", first.output, second.output, input)
		}
	})
}

// FuzzRecursion checks that unbounded recursion ends in the depth error
// instead of exhausting the stack, whatever the shape of the recursion.
func FuzzRecursion(f *testing.F) {
	f.Add(uint8(0), uint8(1))
	f.Add(uint8(1), uint8(3))
	f.Add(uint8(2), uint8(0))

	bodies := []string{
		"Vráť funkčná hodnota funkcie f, pre n.",
		"Vráť ku 1 pripočítaj funkčná hodnota funkcie f, pre n.",
		"Nech o je nová inštancia triedy T.\nVráť funkčná hodnota funkcie f.",
	}

	f.Fuzz(func(t *testing.T, shape, extra uint8) {
		body := bodies[int(shape)%len(bodies)]
		input := "Nech T je trieda T obsahujúca x.\nNech f je funkcia (\n"
		for i := 0; i < int(extra)%4; i++ {
			input += "Nech pomocná je ku n pripočítaj 1.\n"
		}
		input += body + "\n), definovaná pre n, predvolene 0.\nfunkčná hodnota funkcie f.\n"

		res := runProgram(t, input, "")
		if !res.finished {
			t.Fatalf("recursion did not stop:\n%s", input)
		}
		if res.failure == nil || res.failure.Code != diagnostics.ErrR020 {
			t.Fatalf("expected the recursion limit, got %v\ninput:\n%s", res.failure, input)
		}
		checkRender(t, res.failure, input)
	})
}
