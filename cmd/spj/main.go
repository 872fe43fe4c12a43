package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/evaluator"
	"github.com/funvibe/spj/internal/lexer"
	"github.com/funvibe/spj/internal/modules"
	"github.com/funvibe/spj/internal/parser"
	"github.com/funvibe/spj/internal/pipeline"
	"github.com/funvibe/spj/internal/prettyprinter"
)

const usage = `Usage: spj [flags] <file.spj>

Flags:
`

// options are the command line settings after flag parsing.
type options struct {
	configPath string
	color      string
	trace      bool
	repl       bool
	ast        bool
	path       string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("spj", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "path to spj.yaml (default: nearest one above the program)")
	fs.StringVar(&opts.color, "color", "", "color diagnostics: auto, always or never")
	fs.BoolVar(&opts.trace, "trace", false, "log pipeline stages to stderr")
	fs.BoolVar(&opts.repl, "repl", false, "start an interactive session")
	fs.BoolVar(&opts.ast, "ast", false, "print the syntax tree instead of running")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		opts.path = fs.Arg(0)
	}
	return opts, nil
}

// loadProject reads the explicit config file, or the nearest spj.yaml
// above dir, and applies flag overrides.
func loadProject(opts *options, dir string) (*config.Project, error) {
	path := opts.configPath
	if path == "" {
		found, err := config.Find(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}

	project := config.Default()
	if path != "" {
		p, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		project = p
	}
	if opts.color != "" {
		project.Color = opts.color
		if err := project.Validate(); err != nil {
			return nil, err
		}
	}
	return project, nil
}

func colorFor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && diagnostics.ColorEnabled(f)
}

// newEvaluator builds an evaluator with the project's loader and runs
// the builtin library.
func newEvaluator(project *config.Project, stdout io.Writer, tracer *log.Logger) (*evaluator.Evaluator, *diagnostics.Failure, error) {
	loader := modules.NewLoaderFromProject(project)
	loader.Tracer = tracer

	e := evaluator.New()
	e.Out = stdout
	e.MaxDepth = project.MaxDepth
	e.Loader = loader
	e.Tracer = tracer

	mods, err := loader.Builtins()
	if err != nil {
		return nil, nil, fmt.Errorf("loading builtins: %w", err)
	}
	if fail := e.LoadBuiltins(mods); fail != nil {
		return nil, fail, nil
	}
	return e, nil, nil
}

// run executes the command line and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	var tracer *log.Logger
	if opts.trace {
		tracer = log.New(stderr, "spj: ", 0)
	}

	dir := "."
	if opts.path != "" {
		dir = filepath.Dir(opts.path)
	}
	project, err := loadProject(opts, dir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	color := colorFor(project.Color, stderr)

	if opts.repl {
		return runREPL(project, stdin, stdout, stderr, color, tracer)
	}

	if opts.path == "" {
		fmt.Fprintln(stderr, "Error: missing program file")
		fmt.Fprint(stderr, usage)
		return 1
	}

	start := time.Now()
	source, err := os.ReadFile(opts.path)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading input: %s\n", err)
		return 1
	}
	if tracer != nil {
		tracer.Printf("read %s (%d bytes) in %s", opts.path, len(source), time.Since(start))
	}

	ctx := pipeline.NewPipelineContext(string(source))
	ctx.FilePath = opts.path

	if opts.ast {
		ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
		if ctx.Failure != nil {
			fmt.Fprint(stderr, ctx.Failure.Render(color))
			return 1
		}
		fmt.Fprint(stdout, prettyprinter.Tree(ctx.AstRoot))
		return 0
	}

	e, fail, err := newEvaluator(project, stdout, tracer)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	if fail != nil {
		fmt.Fprint(stderr, fail.Render(color))
		return 1
	}

	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&traceStage{tracer: tracer},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{Evaluator: e},
	).Run(ctx)
	if ctx.Failure != nil {
		fmt.Fprint(stderr, ctx.Failure.Render(color))
		return 1
	}
	return 0
}

// traceStage logs the token count between lexing and parsing.
type traceStage struct {
	tracer *log.Logger
}

func (s *traceStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if s.tracer != nil {
		s.tracer.Printf("lexed %d tokens", len(ctx.Tokens))
	}
	return ctx
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
