// Package catalog materializes the file catalog an analysis run works
// on: directory walking, language detection, and skip-pattern
// exclusion all happen here, so the analysis core never touches the
// filesystem.
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/manu042k/CodeGaurd/domain"
)

// MaxFileSize is the largest file the catalog will load
const MaxFileSize = 10 * 1024 * 1024

// LanguageManifest marks dependency manifests, which are analyzed
// only by analyzers with a wildcard capability set
const LanguageManifest = "manifest"

var extensionLanguages = map[string]string{
	".py":    "python",
	".pyw":   "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".java":  "java",
	".kt":    "kotlin",
	".go":    "go",
	".rs":    "rust",
	".rb":    "ruby",
	".php":   "php",
	".swift": "swift",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".scala": "scala",
	".sh":    "shell",
	".bash":  "shell",
	".sql":   "sql",
	".lua":   "lua",
	".pl":    "perl",
	".ex":    "elixir",
	".exs":   "elixir",
	".dart":  "dart",
	".vue":   "vue",
	".r":     "r",
}

var manifestFileNames = map[string]bool{
	"requirements.txt": true,
	"pyproject.toml":   true,
	"pipfile":          true,
	"package.json":     true,
	"go.mod":           true,
	"cargo.toml":       true,
	"pom.xml":          true,
	"gemfile":          true,
	"composer.json":    true,
}

var binaryExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".ico": true,
	".mp3": true, ".mp4": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true, ".rar": true,
	".pdf": true, ".doc": true, ".docx": true,
	".db": true, ".sqlite": true, ".sqlite3": true,
	".pyc": true, ".class": true, ".o": true,
}

// DetectLanguage maps a file path to its language identifier. Files
// the catalog does not recognize as code or manifests return "".
func DetectLanguage(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if manifestFileNames[base] {
		return LanguageManifest
	}
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return ""
}

// Builder walks directories and builds domain.FileEntry catalogs
type Builder struct {
	matcher *ignore.GitIgnore
}

// NewBuilder creates a catalog builder with gitignore-style skip
// patterns applied to paths relative to the analysis root.
func NewBuilder(skipPatterns []string) *Builder {
	return &Builder{matcher: ignore.CompileIgnoreLines(skipPatterns...)}
}

// BuildFromDir walks root recursively and loads every recognized,
// non-excluded, non-binary file.
func (b *Builder) BuildFromDir(root string) ([]domain.FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		entry, err := b.loadFile(root, filepath.Base(root))
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, nil
		}
		return []domain.FileEntry{*entry}, nil
	}

	var entries []domain.FileEntry
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && b.matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if b.matcher.MatchesPath(rel) {
			return nil
		}

		entry, loadErr := b.loadFile(path, rel)
		if loadErr != nil {
			return loadErr
		}
		if entry != nil {
			entries = append(entries, *entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return entries, nil
}

// BuildFromFiles loads an explicit list of files, still honoring skip
// patterns and language recognition.
func (b *Builder) BuildFromFiles(paths []string) ([]domain.FileEntry, error) {
	var entries []domain.FileEntry
	for _, path := range paths {
		rel := filepath.ToSlash(path)
		if b.matcher.MatchesPath(rel) {
			continue
		}
		entry, err := b.loadFile(path, rel)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func (b *Builder) loadFile(path, rel string) (*domain.FileEntry, error) {
	language := DetectLanguage(path)
	if language == "" {
		return nil, nil
	}
	if binaryExtensions[strings.ToLower(filepath.Ext(path))] {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if bytes.IndexByte(content, 0) >= 0 {
		// Null byte means binary content regardless of extension
		return nil, nil
	}

	return &domain.FileEntry{
		Path:     rel,
		Content:  string(content),
		Language: language,
	}, nil
}
