package utils

import (
	"path/filepath"

	"github.com/funvibe/spj/internal/config"
)

// ResolveImportPath joins a relative import path onto the importing
// file's directory. Absolute paths are returned unchanged.
func ResolveImportPath(baseDir, importPath string) string {
	if filepath.IsAbs(importPath) || baseDir == "" || baseDir == "." {
		return importPath
	}
	return filepath.Join(baseDir, importPath)
}

// ExtractModuleName derives a module name from a file path.
// It takes the base filename and removes the source extension.
func ExtractModuleName(path string) string {
	return config.TrimSourceExt(filepath.Base(path))
}
