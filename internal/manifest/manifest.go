// Package manifest parses pipeline target manifests.
//
// A manifest lists the protein targets a pipeline run should process, each
// with a query PDB structure and a binding-site definition. Manifests can be
// written in YAML or Markdown; the format is detected from the file
// extension.
package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents the format of a manifest file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatMarkdown represents a Markdown (.md, .markdown) manifest
	FormatMarkdown
	// FormatYAML represents a YAML (.yaml, .yml) manifest
	FormatYAML
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Target is one protein target to run the pipeline for.
type Target struct {
	// Name identifies the target (typically a UniProt accession)
	Name string `yaml:"name"`

	// QueryPDB is the path to the query structure
	QueryPDB string `yaml:"query_pdb"`

	// BindingSite is the path to the binding-site definition
	BindingSite string `yaml:"binding_site"`

	// Ligand optionally names the reference ligand
	Ligand string `yaml:"ligand"`
}

// Manifest is an ordered list of pipeline targets.
type Manifest struct {
	Targets []Target `yaml:"targets"`

	// FilePath is the path the manifest was loaded from (set by ParseFile)
	FilePath string `yaml:"-"`
}

// Parser is the interface that all manifest parsers must implement
type Parser interface {
	// Parse reads from an io.Reader and returns a parsed Manifest
	Parse(r io.Reader) (*Manifest, error)
}

// DetectFormat automatically detects the manifest format based on file extension
// Supported extensions:
//   - .md, .markdown -> FormatMarkdown
//   - .yaml, .yml -> FormatYAML
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// NewParser creates a new parser instance for the specified format
// Returns an error if the format is unknown or unsupported
func NewParser(format Format) (Parser, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownParser(), nil
	case FormatYAML:
		return NewYAMLParser(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// ParseFile detects the format of the given manifest file, parses it, and
// validates the result. The original path is stored in Manifest.FilePath.
func ParseFile(path string) (*Manifest, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unsupported manifest format: %s", path)
	}

	p, err := NewParser(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	m, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if err := Validate(m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	m.FilePath = path
	return m, nil
}

// Validate checks that the manifest names at least one target and that each
// target carries the required fields.
func Validate(m *Manifest) error {
	if len(m.Targets) == 0 {
		return fmt.Errorf("manifest defines no targets")
	}

	seen := make(map[string]bool)
	for i, t := range m.Targets {
		if t.Name == "" {
			return fmt.Errorf("target %d has no name", i+1)
		}
		if t.QueryPDB == "" {
			return fmt.Errorf("target %s has no query PDB", t.Name)
		}
		if t.BindingSite == "" {
			return fmt.Errorf("target %s has no binding site", t.Name)
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate target name %s", t.Name)
		}
		seen[t.Name] = true
	}

	return nil
}
