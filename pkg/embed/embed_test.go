package spj_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/spj/internal/diagnostics"
	spj "github.com/funvibe/spj/pkg/embed"
)

// User is a Go struct passed into programs as an instance.
type User struct {
	Name  string
	Score int
	tags  []string
}

func newInterpreter(t *testing.T, out *bytes.Buffer, opts ...spj.Option) *spj.Interpreter {
	t.Helper()
	in, err := spj.New(append([]spj.Option{spj.WithOutput(out)}, opts...)...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return in
}

func TestEmbedAPI(t *testing.T) {
	var out bytes.Buffer
	in := newInterpreter(t, &out)

	if err := in.Bind("zdvojnásob", func(x int) int { return x * 2 }); err != nil {
		t.Fatal(err)
	}
	if err := in.Set("hráč", User{Name: "Alica", Score: 10, tags: []string{"x"}}); err != nil {
		t.Fatal(err)
	}

	code := `
Nech výsledok je funkčná hodnota funkcie zdvojnásob, pre 21.
Vypíš hodnota vlastnosti "Name" objektu hráč.
Vypíš hráč.
výsledok.`

	res, err := in.Eval(code)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if res != 42.0 {
		t.Errorf("expected 42, got %v (%T)", res, res)
	}

	want := "Alica\nUser {\n  Name: \"Alica\",\n  Score: 10\n}\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestPersistentScope(t *testing.T) {
	var out bytes.Buffer
	in := newInterpreter(t, &out)

	if _, err := in.Eval(`Nech počet je 1.`); err != nil {
		t.Fatal(err)
	}
	if _, err := in.Eval(`nastav počet na ku počet pripočítaj 1.`); err != nil {
		t.Fatal(err)
	}
	got, err := in.Get("počet")
	if err != nil {
		t.Fatal(err)
	}
	if got != 2.0 {
		t.Errorf("expected 2, got %v", got)
	}
	if _, err := in.Get("nič"); err == nil {
		t.Error("expected an error for an unknown variable")
	}
}

func TestCall(t *testing.T) {
	var out bytes.Buffer
	in := newInterpreter(t, &out)

	_, err := in.Eval(`Nech pozdrav je funkcia spoj "Ahoj, ", meno a "!", definovaná pre meno.`)
	if err != nil {
		t.Fatal(err)
	}
	got, err := in.Call("pozdrav", "svet")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Ahoj, svet!" {
		t.Errorf("unexpected result %q", got)
	}

	if _, err := in.Call("chýba"); err == nil {
		t.Error("expected an error for an unknown function")
	}
	if err := in.Set("číslo", 5); err != nil {
		t.Fatal(err)
	}
	if _, err := in.Call("číslo"); err == nil {
		t.Error("expected an error when calling a number")
	}
}

func TestSlicesAndMaps(t *testing.T) {
	var out bytes.Buffer
	in := newInterpreter(t, &out)

	if err := in.Set("čísla", []int{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := in.Set("mapa", map[string]bool{"b": false, "a": true}); err != nil {
		t.Fatal(err)
	}

	res, err := in.Eval(`
Nech súčet je 0.
Pre každé i a n v objekte čísla (
    nastav súčet na ku súčet pripočítaj n.
).
funkčná hodnota funkcie hodnota vlastnosti "pridaj" objektu čísla, pre súčet.
Vypíš mapa.
čísla.`)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]interface{}{1.0, 2.0, 3.0, 6.0}, res); diff != "" {
		t.Errorf("slice mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("{\n  a: pravda,\n  b: nepravda\n}\n", out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	m, err := in.Get("mapa")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]interface{}{"a": true, "b": false}, m); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundFunctionConversions(t *testing.T) {
	var out bytes.Buffer
	in := newInterpreter(t, &out)

	var seen User
	if err := in.Bind("ulož", func(u User) { seen = u }); err != nil {
		t.Fatal(err)
	}
	if err := in.Bind("súčet", func(xs ...float64) float64 {
		total := 0.0
		for _, x := range xs {
			total += x
		}
		return total
	}); err != nil {
		t.Fatal(err)
	}
	if err := in.Bind("deľ", func(a, b int) (int, error) {
		if b == 0 {
			return 0, errors.New("delenie nulou")
		}
		return a / b, nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := in.Bind("dvojica", func() (string, int) { return "a", 1 }); err != nil {
		t.Fatal(err)
	}

	_, err := in.Eval(`
Nech U je trieda User obsahujúca Name, predvolene "Bob" a Score, predvolene 7.
funkčná hodnota funkcie ulož, pre nová inštancia triedy U.
Vypíš funkčná hodnota funkcie súčet, pre 1, 2 a 3.5.
Vypíš funkčná hodnota funkcie deľ, pre 7 a 2.
Vypíš hodnota vlastnosti 0 objektu funkčná hodnota funkcie dvojica.`)
	if err != nil {
		t.Fatal(err)
	}
	if seen.Name != "Bob" || seen.Score != 7 {
		t.Errorf("struct argument not converted: %+v", seen)
	}
	if diff := cmp.Diff("6.5\n3\na\n", out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestNativeFailures(t *testing.T) {
	testCases := []struct {
		name    string
		source  string
		message string
	}{
		{"error result", `funkčná hodnota funkcie deľ, pre 1 a 0.`, "delenie nulou"},
		{"fractional int", `funkčná hodnota funkcie deľ, pre 1.5 a 1.`, "not a whole number"},
		{"too many arguments", `funkčná hodnota funkcie deľ, pre 1, 2 a 3.`, "expects 2 arguments"},
		{"wrong kind", `funkčná hodnota funkcie deľ, pre "a" a 1.`, "cannot convert"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			in := newInterpreter(t, &out)
			if err := in.Bind("deľ", func(a, b int) (int, error) {
				if b == 0 {
					return 0, errors.New("delenie nulou")
				}
				return a / b, nil
			}); err != nil {
				t.Fatal(err)
			}

			_, err := in.Eval(tc.source)
			var fail *diagnostics.Failure
			if !errors.As(err, &fail) {
				t.Fatalf("expected a failure, got %v", err)
			}
			if fail.Code != diagnostics.ErrR021 {
				t.Errorf("expected R021, got %s", fail.Code)
			}
			if !strings.Contains(fail.Message, tc.message) {
				t.Errorf("message %q should contain %q", fail.Message, tc.message)
			}
			if fail.First().Line != 0 || fail.First().Column != 0 {
				t.Errorf("failure should point at the call, got %d:%d", fail.First().Line, fail.First().Column)
			}
		})
	}
}

func TestEvalFailure(t *testing.T) {
	var out bytes.Buffer
	in := newInterpreter(t, &out)

	_, err := in.Eval(`Vypíš nedeklarovaná.`)
	var fail *diagnostics.Failure
	if !errors.As(err, &fail) || fail.Code != diagnostics.ErrR001 {
		t.Fatalf("expected R001, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "moduly")
	if err := os.Mkdir(libDir, 0o755); err != nil {
		t.Fatal(err)
	}
	libCode := `Nech pozdrav je funkcia (Vráť "Ahoj z modulu".).
exportuj pozdrav ako "pozdrav".`
	if err := os.WriteFile(filepath.Join(libDir, "kniznica.spj"), []byte(libCode), 0o644); err != nil {
		t.Fatal(err)
	}

	mainCode := fmt.Sprintf(`Nech k je importuj modul %q.
Nech pozdrav je funkčná hodnota funkcie hodnota vlastnosti "pozdrav" objektu k.`, "kniznica")
	mainPath := filepath.Join(dir, "main.spj")
	if err := os.WriteFile(mainPath, []byte(mainCode), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	in := newInterpreter(t, &out, spj.WithModulePaths(libDir))
	if err := in.LoadFile(mainPath); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	res, err := in.Get("pozdrav")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if res != "Ahoj z modulu" {
		t.Errorf("expected 'Ahoj z modulu', got %v", res)
	}

	if err := in.LoadFile(filepath.Join(dir, "chýba.spj")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestMaxDepthOption(t *testing.T) {
	var out bytes.Buffer
	in := newInterpreter(t, &out, spj.WithMaxDepth(60))
	_, err := in.Eval(`Nech f je funkcia (Vráť funkčná hodnota funkcie f.).
funkčná hodnota funkcie f.`)
	var fail *diagnostics.Failure
	if !errors.As(err, &fail) || fail.Code != diagnostics.ErrR020 {
		t.Fatalf("expected R020, got %v", err)
	}
}
