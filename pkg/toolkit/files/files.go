// Package files provides the FileWriter and FileReader tools. All paths are
// resolved inside a working directory; inputs that escape it are rejected.
package files

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reagent/pkg/tools/toolbox"
)

// ErrPathEscape is returned when a path resolves outside the working dir.
var ErrPathEscape = errors.New("files: path escapes working directory")

// Files exposes file tools confined to Dir.
type Files struct {
	Dir string
}

// New creates a Files rooted at dir. An empty dir means the process working
// directory.
func New(dir string) *Files {
	if dir == "" {
		dir = "."
	}

	return &Files{Dir: dir}
}

// WriterTool returns the FileWriter tool.
func (f *Files) WriterTool() toolbox.Tool {
	return toolbox.Tool{
		Name: "FileWriter",
		Description: "Writes content to a file. Input should be the file path and the " +
			"content separated by a pipe, e.g. \"notes.txt|Hello world\".",
		Handler: f.write,
	}
}

// ReaderTool returns the FileReader tool.
func (f *Files) ReaderTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "FileReader",
		Description: "Reads the content of a file. Input should be a file path.",
		Handler:     f.read,
	}
}

func (f *Files) write(_ context.Context, input string) (string, error) {
	path, content, ok := strings.Cut(input, "|")
	if !ok {
		return "", fmt.Errorf("files: input must be \"path|content\"")
	}

	abs, err := f.resolve(strings.TrimSpace(path))
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("files: write %s: %w", path, err)
	}

	return fmt.Sprintf("Successfully wrote to %s", strings.TrimSpace(path)), nil
}

func (f *Files) read(_ context.Context, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("files: path is required")
	}

	abs, err := f.resolve(input)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("files: read %s: %w", input, err)
	}

	if len(data) == 0 {
		return "File is empty", nil
	}

	return string(data), nil
}

// resolve joins path onto Dir and verifies the result stays inside it.
func (f *Files) resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("files: path is required")
	}

	if filepath.IsAbs(path) {
		return "", ErrPathEscape
	}

	base, err := filepath.Abs(f.Dir)
	if err != nil {
		return "", fmt.Errorf("files: resolve working directory: %w", err)
	}

	abs := filepath.Clean(filepath.Join(base, path))
	if abs != base && !strings.HasPrefix(abs, base+string(filepath.Separator)) {
		return "", ErrPathEscape
	}

	return abs, nil
}
