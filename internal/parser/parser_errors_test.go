package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/lexer"
	"github.com/funvibe/spj/internal/parser"
	"github.com/funvibe/spj/internal/pipeline"
	"github.com/funvibe/spj/internal/token"
)

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

func expectError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.Failure {
	t.Helper()
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(pipeline.NewPipelineContext(input))
	if ctx.Failure == nil {
		t.Fatalf("expected %s, parsed without errors\ninput: %s", code, input)
	}
	if ctx.Failure.Code != code {
		t.Fatalf("expected %s, got %s: %s\ninput: %s", code, ctx.Failure.Code, ctx.Failure.Message, input)
	}
	return ctx.Failure
}

func expectNoErrors(t *testing.T, input string) {
	t.Helper()
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(pipeline.NewPipelineContext(input))
	if ctx.Failure != nil {
		t.Fatalf("unexpected failure: %s\ninput: %s", ctx.Failure.Error(), input)
	}
}

// ----------------------------------------------------------------------------
// Error codes
// ----------------------------------------------------------------------------

func TestParserErrorCodes(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
	}{
		{"missing period", "Nech x je 5", diagnostics.ErrP006},
		{"missing connective", "ku 1 s 2.", diagnostics.ErrP001},
		{"missing je in declaration", "Nech x 5.", diagnostics.ErrP001},
		{"missing tak", "Ak x (Vypíš 1.)", diagnostics.ErrP001},
		{"unclosed group", "Vypíš (1.", diagnostics.ErrP002},
		{"class clause without comma", "trieda B rozširujúca triedu A obsahujúca x.", diagnostics.ErrP002},
		{"stray closing paren", ").", diagnostics.ErrP003},
		{"declaration of a number", "Nech 5 je 1.", diagnostics.ErrP004},
		{"missing list separator", "Vypíš 1, 2 3.", diagnostics.ErrP005},
		{"two member list without a", "x, y.", diagnostics.ErrP005},
		{"wrong ordinal for two", "2-tia odmocnina z 9.", diagnostics.ErrP007},
		{"wrong ordinal for large degree", "7-há odmocnina z 9.", diagnostics.ErrP007},
		{"wrong ordinal under sign", "-3-tá odmocnina z 9.", diagnostics.ErrP007},
		{"unterminated string", "Vypíš \"abc", diagnostics.ErrL001},
		{"unexpected character", "Vypíš 1 * 2.", diagnostics.ErrL002},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fail := expectError(t, tc.input, tc.code)
			if len(fail.Tokens) == 0 {
				t.Errorf("failure carries no tokens")
			}
		})
	}
}

func TestValidPrograms(t *testing.T) {
	testCases := []string{
		"",
		"Vypíš 1.",
		"Nech f je funkcia (Vráť 1.). Vypíš funkčná hodnota funkcie f.",
		"Ak pravda, tak (Vypíš 1.)",
		"Ak pravda, tak Vypíš 1.",
		"Pokiaľ nepravda, tak (Vypíš 1.).",
		"Nech Bod je trieda obsahujúca x, predvolene 0 a y, predvolene 0.",
		"Nech p je nová inštancia triedy Bod. Vypíš hodnota vlastnosti \"x\" objektu p.",
	}
	for _, input := range testCases {
		t.Run(input, func(t *testing.T) {
			expectNoErrors(t, input)
		})
	}
}

// ----------------------------------------------------------------------------
// Positions and markers
// ----------------------------------------------------------------------------

func TestMissingPeriodCaret(t *testing.T) {
	fail := expectError(t, "Nech x je 5", diagnostics.ErrP006)
	if fail.First().Type != token.EOF {
		t.Errorf("failure should point at EOF, got %s", fail.First().Type)
	}
	if len(fail.Markers) != 1 {
		t.Fatalf("expected one caret marker, got %d", len(fail.Markers))
	}
	caret := fail.Markers[0]
	if caret.Type != token.ERROR_MARKER || caret.Lexeme != "^" {
		t.Errorf("unexpected marker %+v", caret)
	}
	if caret.Line != 0 || caret.Column != 11 {
		t.Errorf("caret at %d:%d, want 0:11", caret.Line, caret.Column)
	}
}

func TestFurthestFailureWins(t *testing.T) {
	// The bare expression attempt stops at "y" with a missing ")"; the block
	// attempt reaches the end of input and reports the missing period.
	fail := expectError(t, "Ak x, tak (Nech y je 1", diagnostics.ErrP006)
	if fail.Last().Type != token.EOF {
		t.Errorf("expected the failure at EOF, got %q", fail.Last().Literal)
	}
}

func TestUnclosedBlock(t *testing.T) {
	fail := expectError(t, "(Vypíš 1. Vypíš 2.", diagnostics.ErrP002)
	if len(fail.Markers) == 0 {
		t.Errorf("expected caret marker")
	}
}

func TestOrdinalMessage(t *testing.T) {
	fail := expectError(t, "2-tia odmocnina z 9.", diagnostics.ErrP007)
	if !strings.Contains(fail.Message, `"há"`) {
		t.Errorf("message should name the expected suffix: %s", fail.Message)
	}
	if fail.First().Literal != "tia" {
		t.Errorf("failure should point at the suffix, got %q", fail.First().Literal)
	}
}

func TestFailureCarriesSource(t *testing.T) {
	input := "Nech x je"
	fail := expectError(t, input, diagnostics.ErrP003)
	if fail.Source != input {
		t.Errorf("source not attached: %q", fail.Source)
	}
	if fail.Kind() != "ParseError" {
		t.Errorf("kind = %s", fail.Kind())
	}
}
