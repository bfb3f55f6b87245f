// Package testutil provides test helpers for license page tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/frakbot/licensegen/internal/config"
)

// Project is a temporary license source tree: a manifest, a files/ text
// directory and an output path inside a www/ directory that does not exist yet.
type Project struct {
	Dir          string
	ManifestPath string
	TextDir      string
	OutputPath   string
}

// NewProject writes manifestJSON and one <short>.txt per texts entry into a
// fresh temporary directory.
func NewProject(t *testing.T, manifestJSON string, texts map[string]string) *Project {
	t.Helper()
	dir := t.TempDir()

	p := projectAt(dir)
	if err := os.MkdirAll(p.TextDir, 0o755); err != nil {
		t.Fatalf("failed to create text dir: %v", err)
	}
	for short, content := range texts {
		WriteFile(t, p.TextDir, short+".txt", content)
	}
	WriteFile(t, dir, "licenses.json", manifestJSON)
	return p
}

// CopyFixture copies a fixture directory from testdata to a temporary
// location and returns it as a Project.
func CopyFixture(t *testing.T, fixtureName string) *Project {
	t.Helper()
	src := FixturePath(t, fixtureName)
	dst := t.TempDir()

	if err := copyDir(src, dst); err != nil {
		t.Fatalf("failed to copy fixture %s: %v", fixtureName, err)
	}
	return projectAt(dst)
}

func projectAt(dir string) *Project {
	return &Project{
		Dir:          dir,
		ManifestPath: filepath.Join(dir, "licenses.json"),
		TextDir:      filepath.Join(dir, "files"),
		OutputPath:   filepath.Join(dir, "www", "license.html"),
	}
}

// Config returns the generator configuration for the project, using the
// built-in template.
func (p *Project) Config() config.Generator {
	return config.Generator{
		ManifestPath: p.ManifestPath,
		TextDir:      p.TextDir,
		OutputPath:   p.OutputPath,
	}
}

// Flags returns the command-line flags pointing at the project.
func (p *Project) Flags() []string {
	return []string{
		"--manifest", p.ManifestPath,
		"--text-dir", p.TextDir,
		"--output", p.OutputPath,
		"--timestamps=false",
	}
}

// WriteOutput creates a previous output file holding content.
func (p *Project) WriteOutput(t *testing.T, content string) {
	t.Helper()
	WriteFile(t, filepath.Dir(p.OutputPath), filepath.Base(p.OutputPath), content)
}

// ReadOutput returns the generated page.
func (p *Project) ReadOutput(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(p.OutputPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return string(data)
}

// FixturePath returns the absolute path to a fixture under this package's testdata.
func FixturePath(t *testing.T, parts ...string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("could not locate testutil source")
	}
	base := filepath.Join(filepath.Dir(file), "testdata")
	return filepath.Join(append([]string{base}, parts...)...)
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(dstPath, 0o755)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(dstPath, data, 0o644)
	})
}
