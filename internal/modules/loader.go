package modules

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/diagnostics"
	"github.com/funvibe/spj/internal/lexer"
	"github.com/funvibe/spj/internal/parser"
	"github.com/funvibe/spj/internal/pipeline"
	"github.com/funvibe/spj/internal/utils"
)

//go:embed lib/*.spj
var libFS embed.FS

const builtinPrefix = "builtin:"

// Loader reads and parses modules. Parsed modules are cached by path;
// evaluating them is left to the caller.
type Loader struct {
	// ModulePaths are searched after the importing file's directory.
	ModulePaths []string
	// BuiltinDir replaces the embedded library when set.
	BuiltinDir string
	// Tracer receives loading events. Nil discards them.
	Tracer *log.Logger

	LoadedModules map[string]*Module
}

func NewLoader() *Loader {
	return &Loader{LoadedModules: make(map[string]*Module)}
}

// NewLoaderFromProject configures a loader from project settings.
func NewLoaderFromProject(p *config.Project) *Loader {
	l := NewLoader()
	l.ModulePaths = append(l.ModulePaths, p.ModulePaths...)
	l.BuiltinDir = p.Builtins
	return l
}

func (l *Loader) tracef(format string, args ...interface{}) {
	if l.Tracer != nil {
		l.Tracer.Printf(format, args...)
	}
}

// Resolve finds the file an import refers to. Relative names are tried
// against fromDir, then each module path, then the working directory.
// The source extension is appended when the name has none.
func (l *Loader) Resolve(name, fromDir string) (string, error) {
	file := name
	if filepath.Ext(file) == "" {
		file += config.SourceFileExt
	}

	var candidates []string
	if filepath.IsAbs(file) {
		candidates = []string{file}
	} else {
		if fromDir != "" {
			candidates = append(candidates, utils.ResolveImportPath(fromDir, file))
		}
		for _, dir := range l.ModulePaths {
			candidates = append(candidates, filepath.Join(dir, file))
		}
		candidates = append(candidates, file)
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	return "", fmt.Errorf("module %q not found", name)
}

// Load reads and parses the module at an already resolved path. A lexer
// or parser failure is returned as a *diagnostics.Failure.
func (l *Loader) Load(path string) (*Module, error) {
	if mod, ok := l.LoadedModules[path]; ok {
		return mod, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l.tracef("loading module %s", path)
	mod, fail := Parse(path, filepath.Dir(path), string(data))
	if fail != nil {
		return nil, fail
	}
	l.LoadedModules[path] = mod
	return mod, nil
}

// Parse runs the lexer and parser over source.
func Parse(path, dir, source string) (*Module, *diagnostics.Failure) {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = path
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if ctx.Failure != nil {
		return nil, ctx.Failure
	}
	return newModule(path, dir, source, ctx.AstRoot), nil
}

// Builtins loads every library module in file name order, from
// BuiltinDir when set and from the embedded library otherwise.
func (l *Loader) Builtins() ([]*Module, error) {
	if l.BuiltinDir != "" {
		return l.builtinsFromDir(l.BuiltinDir)
	}
	return builtinsFromFS(libFS, "lib")
}

func (l *Loader) builtinsFromDir(dir string) ([]*Module, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading builtin directory: %w", err)
	}
	var mods []*Module
	for _, e := range entries {
		if e.IsDir() || !config.HasSourceExt(e.Name()) {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		mod, err := l.Load(abs)
		if err != nil {
			return nil, err
		}
		mods = append(mods, mod)
	}
	return mods, nil
}

func builtinsFromFS(fsys fs.FS, dir string) ([]*Module, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var mods []*Module
	for _, e := range entries {
		if e.IsDir() || !config.HasSourceExt(e.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		mod, fail := Parse(builtinPrefix+e.Name(), "", string(data))
		if fail != nil {
			return nil, fail
		}
		mods = append(mods, mod)
	}
	return mods, nil
}
