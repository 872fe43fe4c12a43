package targets

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/evaluator"
	"github.com/funvibe/spj/internal/lexer"
	"github.com/funvibe/spj/internal/modules"
	"github.com/funvibe/spj/internal/parser"
	"github.com/funvibe/spj/internal/pipeline"
)

// corpusDirs holds the programs used to seed the fuzzers.
var corpusDirs = []string{"../../../cmd/spj/testdata", "../../../internal/modules/lib"}

const (
	// fuzzMaxDepth keeps runaway recursion well below the goroutine
	// stack limit.
	fuzzMaxDepth = 200
	runTimeout   = 2 * time.Second
)

// LoadCorpus adds every .spj file found under dirs to the fuzz corpus.
func LoadCorpus(f *testing.F, dirs ...string) {
	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && strings.HasSuffix(path, ".spj") {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				f.Add(data)
			}
			return nil
		})
		if err != nil {
			// It's okay if we can't load examples, just log it
			f.Logf("Failed to load corpus from %s: %v", dir, err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// parseSource lexes and parses input.
func parseSource(input string) (*ast.Program, *diagnostics.Failure) {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(pipeline.NewPipelineContext(input))
	return ctx.AstRoot, ctx.Failure
}

// runResult is what one evaluation produced.
type runResult struct {
	output   string
	failure  *diagnostics.Failure
	finished bool
}

// runProgram evaluates input with the builtin library and a low
// recursion limit. A panic inside the evaluator fails t; a run that
// exceeds runTimeout is reported as unfinished.
func runProgram(t *testing.T, input, path string) runResult {
	t.Helper()

	var out bytes.Buffer
	e := evaluator.New()
	e.Out = &out
	e.MaxDepth = fuzzMaxDepth
	loader := modules.NewLoader()
	e.Loader = loader
	mods, err := loader.Builtins()
	if err != nil {
		t.Fatalf("loading builtins: %v", err)
	}
	if fail := e.LoadBuiltins(mods); fail != nil {
		t.Fatalf("evaluating builtins: %s", fail.Error())
	}

	done := make(chan runResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("evaluator panic: %v\n%s\ninput:\n%s", r, debug.Stack(), input)
				done <- runResult{}
			}
		}()
		ctx := pipeline.NewPipelineContext(input)
		ctx.FilePath = path
		ctx = pipeline.New(
			&lexer.LexerProcessor{},
			&parser.ParserProcessor{},
			&evaluator.EvaluatorProcessor{Evaluator: e},
		).Run(ctx)
		done <- runResult{output: out.String(), failure: ctx.Failure, finished: true}
	}()

	select {
	case res := <-done:
		return res
	case <-time.After(runTimeout):
		return runResult{}
	}
}

// checkRender fails t when rendering a failure panics or loses its
// header.
func checkRender(t *testing.T, fail *diagnostics.Failure, input string) {
	t.Helper()
	if fail == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Render panic: %v\nfailure: %s\ninput:\n%s", r, fail.Error(), input)
		}
	}()
	text := fail.Render(false)
	if !strings.HasPrefix(text, fail.Kind()+": ") {
		t.Fatalf("rendered failure should start with %q, got:\n%s", fail.Kind()+": ", text)
	}
}
