package vocab

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source loads marker definitions from wherever the curated table lives.
type Source interface {
	LoadMarkers(ctx context.Context) (MarkerSet, error)
}

// BuiltinSource serves the compiled-in table.
type BuiltinSource struct{}

func (BuiltinSource) LoadMarkers(_ context.Context) (MarkerSet, error) {
	return Builtin(), nil
}

// FileSource reads a YAML marker file, re-read on every load so curators can
// edit it without a restart.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) LoadMarkers(ctx context.Context) (MarkerSet, error) {
	if err := ctx.Err(); err != nil {
		return MarkerSet{}, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return MarkerSet{}, fmt.Errorf("read vocabulary: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a marker file. A missing version defaults to "file".
func ParseYAML(data []byte) (MarkerSet, error) {
	var set MarkerSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return MarkerSet{}, fmt.Errorf("parse vocabulary: %w", err)
	}
	if set.Version == "" {
		set.Version = "file"
	}
	return set, nil
}

// MarshalYAML encodes a marker set in the layout ParseYAML accepts.
func MarshalYAML(set MarkerSet) ([]byte, error) {
	return yaml.Marshal(set)
}
