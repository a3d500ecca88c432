package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownParserBasic(t *testing.T) {
	content := `# Binding-site ensemble targets

## Target Q9Y233

- query: structures/3qpn.pdb
- binding site: sites/3qpn_site.txt
- ligand: NAG

## Target P00533

- query: structures/1m17.pdb
- binding site: sites/1m17_site.txt
`
	p := NewMarkdownParser()
	m, err := p.Parse(strings.NewReader(content))
	require.NoError(t, err)

	require.Len(t, m.Targets, 2)
	assert.Equal(t, Target{
		Name:        "Q9Y233",
		QueryPDB:    "structures/3qpn.pdb",
		BindingSite: "sites/3qpn_site.txt",
		Ligand:      "NAG",
	}, m.Targets[0])
	assert.Equal(t, Target{
		Name:        "P00533",
		QueryPDB:    "structures/1m17.pdb",
		BindingSite: "sites/1m17_site.txt",
	}, m.Targets[1])
}

func TestMarkdownParserAlternateKeys(t *testing.T) {
	content := `## Target T1

- Query PDB: a.pdb
- Binding-Site: s.txt
`
	p := NewMarkdownParser()
	m, err := p.Parse(strings.NewReader(content))
	require.NoError(t, err)

	require.Len(t, m.Targets, 1)
	assert.Equal(t, "a.pdb", m.Targets[0].QueryPDB)
	assert.Equal(t, "s.txt", m.Targets[0].BindingSite)
}

func TestMarkdownParserIgnoresNonTargetSections(t *testing.T) {
	content := `## Notes

- query: should-not-apply.pdb

## Target T1

- query: a.pdb
- binding site: s.txt

## Appendix

- ligand: XYZ
`
	p := NewMarkdownParser()
	m, err := p.Parse(strings.NewReader(content))
	require.NoError(t, err)

	require.Len(t, m.Targets, 1)
	assert.Equal(t, "a.pdb", m.Targets[0].QueryPDB)
	assert.Empty(t, m.Targets[0].Ligand)
}

func TestMarkdownParserUnknownFieldsIgnored(t *testing.T) {
	content := `## Target T1

- query: a.pdb
- binding site: s.txt
- resolution: 2.1
- plain item without colon
`
	p := NewMarkdownParser()
	m, err := p.Parse(strings.NewReader(content))
	require.NoError(t, err)

	require.Len(t, m.Targets, 1)
	assert.Equal(t, Target{Name: "T1", QueryPDB: "a.pdb", BindingSite: "s.txt"}, m.Targets[0])
}

func TestMarkdownParserEmptyDocument(t *testing.T) {
	p := NewMarkdownParser()
	m, err := p.Parse(strings.NewReader("# Nothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, m.Targets)
}
