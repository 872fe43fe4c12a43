package diagnostics

import (
	"fmt"
	"sort"

	"github.com/funvibe/spj/internal/token"
)

// Frame is one entry of the call stack captured when a Failure is built.
// Function is the display name of the called function ("" when anonymous),
// Site is the first token of the call expression.
type Frame struct {
	Function string
	Site     token.Token
}

// Failure is the single error value passed between the lexer, the parser
// and the evaluator. Tokens is never empty and is kept sorted by position.
type Failure struct {
	Code    ErrorCode
	Message string
	Tokens  []token.Token
	Markers []token.Token
	Stack   []Frame
	File    string
	Source  string
}

// NewError builds a Failure pointing at tokens.
func NewError(code ErrorCode, tokens []token.Token, format string, args ...interface{}) *Failure {
	toks := append([]token.Token(nil), tokens...)
	if len(toks) == 0 {
		toks = append(toks, token.Token{})
	}
	sort.SliceStable(toks, func(i, j int) bool { return toks[i].Index < toks[j].Index })
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Failure{Code: code, Message: msg, Tokens: toks}
}

// WithMarkers attaches extra rendering markers.
func (f *Failure) WithMarkers(markers ...token.Token) *Failure {
	f.Markers = append(f.Markers, markers...)
	return f
}

// WithStack attaches a call stack snapshot. The slice is copied.
func (f *Failure) WithStack(stack []Frame) *Failure {
	f.Stack = append([]Frame(nil), stack...)
	return f
}

// WithSource attaches the source text used for rendering unless one is
// already present. Failures bubbling out of imported modules keep the
// module's source.
func (f *Failure) WithSource(file, source string) *Failure {
	if f.Source == "" {
		f.Source = source
		f.File = file
	}
	return f
}

func (f *Failure) Kind() string { return f.Code.Kind() }

func (f *Failure) First() token.Token { return f.Tokens[0] }

func (f *Failure) Last() token.Token { return f.Tokens[len(f.Tokens)-1] }

func (f *Failure) Error() string {
	t := f.First()
	if f.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", f.File, t.Line+1, t.Column+1, f.Kind(), f.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", t.Line+1, t.Column+1, f.Kind(), f.Message)
}

// Furthest returns whichever of f and other got further into the token
// stream, judged by the end offset of its last token. Ties keep f.
func (f *Failure) Furthest(other *Failure) *Failure {
	if other == nil {
		return f
	}
	if f == nil {
		return other
	}
	if other.Last().End() > f.Last().End() {
		return other
	}
	return f
}
