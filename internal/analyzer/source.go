package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/rules"
)

// FileSource is an event source backed by a manifest file on disk. Its
// identity is the absolute file path, so repeated inspections of the same
// file share one cache entry.
type FileSource struct {
	path string
	name string
}

// NewFileSource creates a file-backed event source for the given manifest
// path.
func NewFileSource(path string) (*FileSource, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest path %s: %w", path, err)
	}

	base := filepath.Base(absPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return &FileSource{
		path: absPath,
		name: name,
	}, nil
}

// ID returns the absolute manifest path.
func (s *FileSource) ID() string {
	return s.path
}

// Name returns the file stem.
func (s *FileSource) Name() string {
	return s.name
}

// Manifest reads the manifest file.
func (s *FileSource) Manifest() (string, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read manifest file: %w", err)
	}

	return string(content), nil
}

var _ rules.EventSource = (*FileSource)(nil)
