package generators

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// ModuleGenerator writes a random set of modules to disk. Modules only
// import modules written before them, so the import graph has no cycles.
type ModuleGenerator struct {
	src     RandomSource
	rootDir string
	modules []string // paths relative to rootDir, without extension
}

func NewModuleGenerator(seed int64, rootDir string) *ModuleGenerator {
	return &ModuleGenerator{
		src:     &RandSource{rand.New(rand.NewSource(seed))},
		rootDir: rootDir,
	}
}

// GenerateModules writes count library modules and a main program that
// imports some of them. It returns the path of the main program.
func (g *ModuleGenerator) GenerateModules(count int) (string, error) {
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("modul_%d", i)
		// 20% chance to live in a subdirectory
		if g.src.Intn(5) == 0 {
			name = filepath.Join("balík", name)
		}
		if err := g.write(name, g.moduleContent(name, i)); err != nil {
			return "", err
		}
		g.modules = append(g.modules, name)
	}

	var sb strings.Builder
	for i, dep := range g.pickDependencies("hlavný") {
		fmt.Fprintf(&sb, "Nech m%d je importuj modul %q.\n", i, dep)
		fmt.Fprintf(&sb, "Vypíš hodnota vlastnosti \"výsledok\" objektu m%d.\n", i)
	}
	if err := g.write("hlavný", sb.String()); err != nil {
		return "", err
	}
	return filepath.Join(g.rootDir, "hlavný.spj"), nil
}

func (g *ModuleGenerator) write(name, content string) error {
	path := filepath.Join(g.rootDir, name+".spj")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func (g *ModuleGenerator) moduleContent(name string, index int) string {
	var sb strings.Builder
	for i, dep := range g.pickDependencies(name) {
		fmt.Fprintf(&sb, "Nech závislosť%d je importuj modul %q.\n", i, dep)
	}

	gen := New(int64(g.src.Intn(1000)))
	sb.WriteString(gen.GenerateProgram())

	fmt.Fprintf(&sb, "Nech výsledok je %d.\n", index)
	sb.WriteString("exportuj výsledok ako \"výsledok\".\n")
	return sb.String()
}

// pickDependencies chooses up to two existing modules and returns their
// import paths relative to the importing module's directory.
func (g *ModuleGenerator) pickDependencies(from string) []string {
	if len(g.modules) == 0 {
		return nil
	}
	var deps []string
	count := g.src.Intn(3)
	for i := 0; i < count; i++ {
		target := g.modules[g.src.Intn(len(g.modules))]
		rel, err := filepath.Rel(filepath.Dir(from), target)
		if err != nil {
			continue
		}
		deps = append(deps, filepath.ToSlash(rel))
	}
	return deps
}
