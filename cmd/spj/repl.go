package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/evaluator"
	"github.com/funvibe/spj/internal/lexer"
	"github.com/funvibe/spj/internal/parser"
	"github.com/funvibe/spj/internal/pipeline"
	"github.com/funvibe/spj/internal/token"
)

const (
	historyFile = ".spj_history"
	promptMain  = "spj> "
	promptCont  = "...> "
)

// lineReader is the part of liner.State the session needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// plainReader reads lines without editing when input is not a terminal.
type plainReader struct {
	scanner *bufio.Scanner
}

func (r *plainReader) Prompt(string) (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *plainReader) Close() error { return nil }

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// runREPL evaluates entries against one persistent scope until EOF or
// :quit. A failing entry is reported and the session continues.
func runREPL(project *config.Project, stdin io.Reader, stdout, stderr io.Writer, color bool, tracer *log.Logger) int {
	e, fail, err := newEvaluator(project, stdout, tracer)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	if fail != nil {
		fmt.Fprint(stderr, fail.Render(color))
		return 1
	}
	env := evaluator.NewEnclosedEnvironment(e.GlobalEnv)

	var in lineReader
	if isTerminal(stdin) {
		ln := liner.NewLiner()
		ln.SetCtrlCAborts(true)
		home, _ := os.UserHomeDir()
		histPath := filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
		in = ln
		fmt.Fprintln(stdout, "spj: Ctrl+D alebo :quit ukončí reláciu.")
	} else {
		in = &plainReader{scanner: bufio.NewScanner(stdin)}
	}
	defer in.Close()

	for {
		entry, ok := readEntry(in)
		if !ok {
			return 0
		}
		switch strings.TrimSpace(entry) {
		case "":
			continue
		case ":quit", ":q":
			return 0
		}
		if ln, ok := in.(*liner.State); ok {
			ln.AppendHistory(entry)
		}

		ctx := pipeline.New(
			&lexer.LexerProcessor{},
			&parser.ParserProcessor{},
			&evaluator.EvaluatorProcessor{Evaluator: e, Env: env},
		).Run(pipeline.NewPipelineContext(entry))
		if ctx.Failure != nil {
			fmt.Fprint(stderr, ctx.Failure.Render(color))
		}
	}
}

// readEntry collects lines until they parse or fail somewhere other
// than the end of input. ok is false at EOF.
func readEntry(in lineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := in.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if strings.HasPrefix(strings.TrimSpace(b.String()), ":") || !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether source fails only because it ends too
// early, as an open string or a missing closing parenthesis does.
func incomplete(source string) bool {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(pipeline.NewPipelineContext(source))
	if ctx.Failure == nil {
		return false
	}
	if ctx.Failure.Code == diagnostics.ErrL001 {
		return true
	}
	return ctx.Failure.Last().Type == token.EOF && strings.TrimSpace(source) != ""
}
