package tests

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/spj/internal/config"
)

// TestFunctional runs the golden programs through the compiled binary
// and compares output with .want files. The .want format is the one
// cmd/spj's golden test writes: stdout, then for a failing run an exit
// marker followed by stderr.
// This tests the actual binary - what users see.
func TestFunctional(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	binaryPath := filepath.Join(t.TempDir(), "spj-test-binary")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/spj")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, output)
	}

	// Programs are run from cmd/spj so the paths in rendered failures
	// match the .want files.
	workDir := filepath.Join(projectRoot, "cmd", "spj")
	files, err := filepath.Glob(filepath.Join(workDir, "testdata", "*"+config.SourceFileExt))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("No test files with .want found")
	}

	for _, file := range files {
		name := config.TrimSourceExt(filepath.Base(file))
		t.Run(name, func(t *testing.T) {
			want, err := os.ReadFile(config.TrimSourceExt(file) + ".want")
			if err != nil {
				t.Skipf("no .want file: %v", err)
			}

			rel, err := filepath.Rel(workDir, file)
			if err != nil {
				t.Fatal(err)
			}
			cmd := exec.Command(binaryPath, "-color", "never", filepath.ToSlash(rel))
			cmd.Dir = workDir
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			got := ""
			var exitErr *exec.ExitError
			switch err := cmd.Run(); {
			case err == nil:
				got = stdout.String()
			case errors.As(err, &exitErr):
				got = stdout.String() + fmt.Sprintf("--- exit %d ---\n", exitErr.ExitCode()) + stderr.String()
			default:
				t.Fatalf("running %s: %v", rel, err)
			}

			got = strings.ReplaceAll(got, "\r\n", "\n")
			if diff := cmp.Diff(string(want), got); diff != "" {
				t.Errorf("Output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestStdinIsNotAProgram checks that running without a file fails with
// the usage error rather than reading stdin.
func TestStdinIsNotAProgram(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatal(err)
	}
	cmd := exec.Command("go", "run", "./cmd/spj")
	cmd.Dir = projectRoot
	cmd.Stdin = strings.NewReader("Vypíš 1.\n")
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected a failing exit status, got output:\n%s", output)
	}
	if !strings.Contains(string(output), "missing program file") {
		t.Errorf("expected the usage error, got:\n%s", output)
	}
}
