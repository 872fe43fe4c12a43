package targets

import (
	"testing"

	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/tests/fuzz/generators"
)

// FuzzModules runs a main program over a generated tree of modules. Every
// import names an existing module, so loading must never fail even when
// a module's own code does.
func FuzzModules(f *testing.F) {
	f.Add(int64(12345))
	f.Add(int64(67890))

	f.Fuzz(func(t *testing.T, seed int64) {
		dir := t.TempDir()
		mainPath, err := generators.NewModuleGenerator(seed, dir).GenerateModules(5)
		if err != nil {
			t.Fatalf("failed to generate modules: %v", err)
		}

		res := runProgram(t, readFile(t, mainPath), mainPath)
		if !res.finished || res.failure == nil {
			return
		}
		switch {
		case res.failure.Code == diagnostics.ErrR017:
			t.Fatalf("generated import could not be loaded:\n%s", res.failure.Render(false))
		case res.failure.Kind() != "RuntimeError":
			t.Fatalf("generated module failed before running:\n%s", res.failure.Render(false))
		}
		checkRender(t, res.failure, mainPath)
	})
}
