package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color modes accepted by Project.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Project represents an spj.yaml file.
type Project struct {
	// Builtins is a directory scanned for *.spj builtin modules.
	// Empty means the library embedded in the binary. Relative paths are
	// resolved against the directory of the config file.
	Builtins string `yaml:"builtins,omitempty"`

	// Color selects ANSI colors for diagnostics: auto, always or never.
	Color string `yaml:"color,omitempty"`

	// MaxDepth bounds evaluator recursion.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// ModulePaths are extra directories searched by `importuj modul`.
	ModulePaths []string `yaml:"module_paths,omitempty"`

	// Dir is the directory the file was loaded from.
	Dir string `yaml:"-"`
}

// Default returns the configuration used when no spj.yaml exists.
func Default() *Project {
	p := &Project{Dir: "."}
	p.setDefaults()
	return p
}

// Load reads and validates the project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses spj.yaml content. The path is used for messages and to
// resolve relative directories.
func Parse(data []byte, path string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	p.Dir = filepath.Dir(path)
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.setDefaults()
	p.resolvePaths()
	return &p, nil
}

// Find searches for spj.yaml starting from dir and walking up to parent
// directories. It returns "" and a nil error when nothing is found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range ProjectFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate checks field values.
func (p *Project) Validate() error {
	switch p.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of %q, %q, %q, got %q", ColorAuto, ColorAlways, ColorNever, p.Color)
	}
	if p.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", p.MaxDepth)
	}
	for i, dir := range p.ModulePaths {
		if dir == "" {
			return fmt.Errorf("module_paths[%d] is empty", i)
		}
	}
	return nil
}

func (p *Project) setDefaults() {
	if p.Color == "" {
		p.Color = ColorAuto
	}
	if p.MaxDepth == 0 {
		p.MaxDepth = DefaultMaxDepth
	}
}

func (p *Project) resolvePaths() {
	if p.Builtins != "" && !filepath.IsAbs(p.Builtins) {
		p.Builtins = filepath.Join(p.Dir, p.Builtins)
	}
	for i, dir := range p.ModulePaths {
		if !filepath.IsAbs(dir) {
			p.ModulePaths[i] = filepath.Join(p.Dir, dir)
		}
	}
}
