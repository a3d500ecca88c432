package manifest

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses manifests of the form:
//
//	targets:
//	  - name: Q9Y233
//	    query_pdb: structures/3qpn.pdb
//	    binding_site: sites/3qpn_site.txt
//	    ligand: NAG
type YAMLParser struct{}

// NewYAMLParser creates a YAML manifest parser.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// Parse reads YAML content and returns the parsed Manifest.
func (p *YAMLParser) Parse(r io.Reader) (*Manifest, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &m, nil
}
