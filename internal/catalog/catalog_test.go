package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"main.py", "python"},
		{"src/app.TSX", "typescript"},
		{"cmd/main.go", "go"},
		{"requirements.txt", "manifest"},
		{"Package.JSON", "manifest"},
		{"README.md", ""},
		{"photo.jpg", ""},
	}

	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.expected {
			t.Errorf("DetectLanguage(%s) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestBuildFromDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.py", "print('hi')\n")
	writeFile(t, dir, "lib/util.js", "const x = 1;\n")
	writeFile(t, dir, "requirements.txt", "flask==2.0\n")
	writeFile(t, dir, "notes.md", "not code\n")

	builder := NewBuilder(nil)
	entries, err := builder.BuildFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	byPath := map[string]string{}
	for _, e := range entries {
		byPath[e.Path] = e.Language
	}
	if byPath["main.py"] != "python" {
		t.Errorf("main.py language = %q", byPath["main.py"])
	}
	if byPath["lib/util.js"] != "javascript" {
		t.Errorf("lib/util.js language = %q", byPath["lib/util.js"])
	}
	if byPath["requirements.txt"] != LanguageManifest {
		t.Errorf("requirements.txt language = %q", byPath["requirements.txt"])
	}
}

func TestBuildFromDir_SkipPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.js", "const a = 1;\n")
	writeFile(t, dir, "app.min.js", "const a=1;\n")
	writeFile(t, dir, "node_modules/pkg/index.js", "module.exports = {};\n")

	builder := NewBuilder([]string{"*.min.js", "node_modules/*"})
	entries, err := builder.BuildFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 1 || entries[0].Path != "app.js" {
		t.Fatalf("expected only app.js, got %v", entries)
	}
}

func TestBuildFromDir_SkipsBinaryContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.py", "x = 1\x00\x01\x02")
	writeFile(t, dir, "ok.py", "x = 1\n")

	builder := NewBuilder(nil)
	entries, err := builder.BuildFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 1 || entries[0].Path != "ok.py" {
		t.Fatalf("expected only ok.py, got %v", entries)
	}
}

func TestBuildFromDir_SingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "only.py", "x = 1\n")

	builder := NewBuilder(nil)
	entries, err := builder.BuildFromDir(filepath.Join(dir, "only.py"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestBuildFromFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1\n")
	writeFile(t, dir, "b.min.js", "x\n")

	builder := NewBuilder([]string{"*.min.js"})
	entries, err := builder.BuildFromFiles([]string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.min.js"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}
