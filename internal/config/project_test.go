package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/spj/internal/config"
	"github.com/google/go-cmp/cmp"
)

func TestParseProject(t *testing.T) {
	data := []byte(`
builtins: ./lib
color: never
max_depth: 500
module_paths:
  - vendor
  - /opt/spj
`)
	got, err := config.Parse(data, "/work/spj.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &config.Project{
		Builtins:    "/work/lib",
		Color:       config.ColorNever,
		MaxDepth:    500,
		ModulePaths: []string{"/work/vendor", "/opt/spj"},
		Dir:         "/work",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseProjectDefaults(t *testing.T) {
	got, err := config.Parse([]byte("{}"), "spj.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Color != config.ColorAuto {
		t.Errorf("Color = %q, want %q", got.Color, config.ColorAuto)
	}
	if got.MaxDepth != config.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", got.MaxDepth, config.DefaultMaxDepth)
	}
}

func TestParseProjectInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"bad color", "color: sometimes", "color must be one of"},
		{"negative depth", "max_depth: -1", "max_depth must not be negative"},
		{"empty module path", "module_paths: ['']", "module_paths[0] is empty"},
		{"not yaml", "color: [", "parsing"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.input), "spj.yaml")
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not contain %q", err, tc.want)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, "spj.yaml")
	if err := os.WriteFile(cfgPath, []byte("color: always\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := config.Find(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != cfgPath {
		t.Errorf("Find = %q, want %q", got, cfgPath)
	}
}

func TestSourceExt(t *testing.T) {
	if !config.HasSourceExt("lib/zaklad.spj") {
		t.Error("expected .spj to be recognized")
	}
	if got := config.TrimSourceExt("modul.spj"); got != "modul" {
		t.Errorf("TrimSourceExt = %q", got)
	}
	if got := config.TrimSourceExt("modul.txt"); got != "modul.txt" {
		t.Errorf("TrimSourceExt = %q", got)
	}
}
