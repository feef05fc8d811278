package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mind-engage/mindengage-bac/internal/exam"
)

// Format of a bundle file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format by file extension; unknown extensions
// are read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode reads a bundle in the given format.
func Decode(r io.Reader, f Format) (Bundle, error) {
	var b Bundle
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&b); err != nil && !errors.Is(err, io.EOF) {
			return Bundle{}, fmt.Errorf("decode yaml bundle: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&b); err != nil {
			return Bundle{}, fmt.Errorf("decode json bundle: %w", err)
		}
	default:
		return Bundle{}, fmt.Errorf("unsupported bundle format %q", f)
	}
	return b, nil
}

// LoadBundle reads and decodes a bundle file.
func LoadBundle(path string) (Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f, FormatFromPath(path))
}

// Load reads one or more bundle files and merges them into a Catalog.
// The version of the last file wins.
func Load(paths ...string) (*Catalog, error) {
	var merged Bundle
	for _, p := range paths {
		b, err := LoadBundle(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		merged = Merge(merged, b)
	}
	return New(merged), nil
}

// Merge concatenates b onto a.
func Merge(a, b Bundle) Bundle {
	out := Bundle{
		Version:     a.Version,
		Topics:      append(append([]exam.Topic(nil), a.Topics...), b.Topics...),
		Questions:   append(append([]exam.Question(nil), a.Questions...), b.Questions...),
		ExamPresets: append(append([]exam.Preset(nil), a.ExamPresets...), b.ExamPresets...),
	}
	if b.Version != "" {
		out.Version = b.Version
	}
	return out
}
