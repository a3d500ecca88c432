package manifest

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser parses manifests of the form:
//
//	## Target Q9Y233
//
//	- query: structures/3qpn.pdb
//	- binding site: sites/3qpn_site.txt
//	- ligand: NAG
//
// One level-2 "Target <NAME>" heading per target; fields are given as list
// items under the heading. Unknown fields are ignored.
type MarkdownParser struct {
	markdown goldmark.Markdown
}

// NewMarkdownParser creates a Markdown manifest parser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		markdown: goldmark.New(),
	}
}

var targetHeadingRegex = regexp.MustCompile(`^Target\s+(\S+)$`)

// Parse reads Markdown content and returns the parsed Manifest.
func (p *MarkdownParser) Parse(r io.Reader) (*Manifest, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	doc := p.markdown.Parser().Parse(text.NewReader(content))

	m := &Manifest{}
	var current *Target

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if heading, ok := n.(*ast.Heading); ok {
			if heading.Level != 2 {
				return ast.WalkSkipChildren, nil
			}

			headingText := extractText(heading, content)
			matches := targetHeadingRegex.FindStringSubmatch(headingText)
			if len(matches) == 2 {
				m.Targets = append(m.Targets, Target{Name: matches[1]})
				current = &m.Targets[len(m.Targets)-1]
			} else {
				// Not a target heading, stop attributing fields
				current = nil
			}
			return ast.WalkSkipChildren, nil
		}

		if item, ok := n.(*ast.ListItem); ok {
			if current != nil {
				applyField(current, extractText(item, content))
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown: %w", err)
	}

	return m, nil
}

// applyField parses a "key: value" list item into the target.
func applyField(t *Target, line string) {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return
	}
	value = strings.TrimSpace(value)

	switch strings.ToLower(strings.TrimSpace(key)) {
	case "query", "query pdb":
		t.QueryPDB = value
	case "binding site", "binding-site":
		t.BindingSite = value
	case "ligand":
		t.Ligand = value
	}
}

// extractText collects the plain text of a node and its descendants.
func extractText(n ast.Node, source []byte) string {
	var sb strings.Builder

	ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}
