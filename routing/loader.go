package routing

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is an on-disk encoding of a Table.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the table format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported graph file extension %q", filepath.Ext(path))
	}
}

// LoadTable reads a table definition from a JSON or YAML file.
func LoadTable(path string) (Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Table{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("could not open graph file: %w", err)
	}
	defer file.Close()

	t, err := DecodeTable(file, format)
	if err != nil {
		return Table{}, fmt.Errorf("could not parse graph file %s: %w", path, err)
	}
	return t, nil
}

// LoadGraph reads a table file and builds a validated Graph from it.
func LoadGraph(path string) (*Graph, error) {
	t, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	g, err := NewGraph(t)
	if err != nil {
		return nil, fmt.Errorf("graph file %s: %w", path, err)
	}
	return g, nil
}

// DecodeTable decodes one table. Unknown fields are rejected.
func DecodeTable(r io.Reader, format Format) (Table, error) {
	var t Table
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&t); err != nil {
			return Table{}, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil {
			return Table{}, err
		}
	default:
		return Table{}, fmt.Errorf("unsupported graph format %q", format)
	}
	return t, nil
}

// EncodeTable writes t in the given format.
func EncodeTable(w io.Writer, t Table, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported graph format %q", format)
	}
}
