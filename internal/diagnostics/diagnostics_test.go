package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/token"
	"github.com/google/go-cmp/cmp"
)

func ident(name string, index, line, column int) token.Token {
	return token.Token{Type: token.IDENT, Lexeme: name, Literal: name, Index: index, Line: line, Column: column}
}

func TestFormat(t *testing.T) {
	testCases := []struct {
		input string
		color bool
		want  string
	}{
		{"§cred§r", true, "\x1b[91mred\x1b[0m"},
		{"§cred§r", false, "red"},
		{"§3a§fb", true, "\x1b[36ma\x1b[97mb"},
		{"100§§", true, "100§"},
		{"100§§", false, "100§"},
		{"§x stays", false, "§x stays"},
		{"trailing §", false, "trailing §"},
		{"plain", true, "plain"},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := diagnostics.Format(tc.input, tc.color); got != tc.want {
				t.Errorf("Format(%q, %v) = %q, want %q", tc.input, tc.color, got, tc.want)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	raw := "§c not a color"
	if got := diagnostics.Format(diagnostics.Escape(raw), true); got != raw {
		t.Errorf("escaped text changed: %q", got)
	}
}

func TestNewErrorSortsTokens(t *testing.T) {
	f := diagnostics.NewError(diagnostics.ErrP001, []token.Token{ident("b", 4, 0, 4), ident("a", 0, 0, 0)}, "msg")
	if f.First().Literal != "a" || f.Last().Literal != "b" {
		t.Errorf("tokens not sorted: %v", f.Tokens)
	}
	empty := diagnostics.NewError(diagnostics.ErrR011, nil, "msg")
	if len(empty.Tokens) != 1 {
		t.Errorf("empty token list should get a placeholder")
	}
}

func TestFurthest(t *testing.T) {
	near := diagnostics.NewError(diagnostics.ErrP002, []token.Token{ident("x", 2, 0, 2)}, "near")
	far := diagnostics.NewError(diagnostics.ErrP006, []token.Token{ident("y", 10, 0, 10)}, "far")
	tie := diagnostics.NewError(diagnostics.ErrP003, []token.Token{ident("x", 2, 0, 2)}, "tie")

	if got := near.Furthest(far); got != far {
		t.Errorf("expected the further failure")
	}
	if got := far.Furthest(near); got != far {
		t.Errorf("expected the further failure")
	}
	if got := near.Furthest(tie); got != near {
		t.Errorf("ties should keep the receiver")
	}
	if got := near.Furthest(nil); got != near {
		t.Errorf("nil other should keep the receiver")
	}
}

func TestErrorString(t *testing.T) {
	f := diagnostics.NewError(diagnostics.ErrR001, []token.Token{ident("abc", 0, 1, 3)}, "Variable %q is not defined", "abc")
	if got, want := f.Error(), `2:4: RuntimeError: Variable "abc" is not defined`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	f.WithSource("main.spj", "x")
	if !strings.HasPrefix(f.Error(), "main.spj:2:4:") {
		t.Errorf("file missing: %q", f.Error())
	}
	f.WithSource("other.spj", "y")
	if f.File != "main.spj" {
		t.Errorf("source should not be replaced once set")
	}
}

func TestRender(t *testing.T) {
	f := diagnostics.NewError(diagnostics.ErrR001, []token.Token{ident("abc", 8, 0, 6)}, "Variable %q is not defined", "abc").
		WithSource("t.spj", "Vypíš abc.")

	want := strings.Join([]string{
		`RuntimeError: Variable "abc" is not defined`,
		"  --> t.spj",
		" 1 | Vypíš abc.",
		"   |       ~~~",
		"",
	}, "\n")
	if diff := cmp.Diff(want, f.Render(false)); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderMarkers(t *testing.T) {
	caret := token.Token{Type: token.ERROR_MARKER, Lexeme: "^", Literal: "^", Line: 0, Column: 11}
	eof := token.Token{Type: token.EOF, Literal: "EOF", Index: 11, Line: 1, Column: 0}
	f := diagnostics.NewError(diagnostics.ErrP006, []token.Token{eof}, "missing period").
		WithMarkers(caret).
		WithSource("", "Nech x je 5\n")

	want := strings.Join([]string{
		"ParseError: missing period",
		" 1 | Nech x je 5",
		"   |            ^",
		" 2 | ",
		"   | ~",
		"",
	}, "\n")
	if diff := cmp.Diff(want, f.Render(false)); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderStack(t *testing.T) {
	f := diagnostics.NewError(diagnostics.ErrR006, []token.Token{ident("g", 20, 0, 4)}, "not a function").
		WithStack([]diagnostics.Frame{{Function: "f", Site: ident("funkčná", 40, 2, 0)}})

	got := f.Render(false)
	want := "RuntimeError: not a function\n    at f:1:4\n    at <main>:3:0"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	anonymous := diagnostics.NewError(diagnostics.ErrR006, []token.Token{ident("g", 0, 0, 0)}, "x").
		WithStack([]diagnostics.Frame{{Site: ident("h", 0, 0, 0)}})
	if !strings.Contains(anonymous.Render(false), "<anonymous>") {
		t.Errorf("unnamed frames should render as <anonymous>")
	}
}

func TestKind(t *testing.T) {
	testCases := []struct {
		code diagnostics.ErrorCode
		want string
	}{
		{diagnostics.ErrL001, "LexError"},
		{diagnostics.ErrP006, "ParseError"},
		{diagnostics.ErrR020, "RuntimeError"},
	}
	for _, tc := range testCases {
		if got := tc.code.Kind(); got != tc.want {
			t.Errorf("%s.Kind() = %s, want %s", tc.code, got, tc.want)
		}
	}
}
