package modules

import (
	"strings"

	"github.com/funvibe/spj/internal/ast"
	"github.com/funvibe/spj/internal/utils"
)

// Module is one parsed source file ready for evaluation.
type Module struct {
	Name    string // file name without the source extension
	Path    string // absolute path, or "builtin:<file>" for the embedded library
	Dir     string // directory relative imports are resolved against
	Source  string
	Program *ast.Program
}

func newModule(path, dir, source string, program *ast.Program) *Module {
	return &Module{
		Name:    utils.ExtractModuleName(strings.TrimPrefix(path, builtinPrefix)),
		Path:    path,
		Dir:     dir,
		Source:  source,
		Program: program,
	}
}
