package preview

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one heading of a Markdown document.
type Heading struct {
	Level int
	Text  string
}

// Outline returns the headings of a Markdown body in document order.
func Outline(body string) []Heading {
	src := []byte(body)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		out = append(out, Heading{Level: h.Level, Text: headingText(h, src)})
		return ast.WalkSkipChildren, nil
	})
	return out
}

func headingText(h *ast.Heading, src []byte) string {
	var b strings.Builder
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimSpace(b.String())
}

// AuditOutline reports headings that break the expected structure: level 1
// is reserved for the document title, and each heading may go at most one
// level deeper than the one before it.
func AuditOutline(body string) []string {
	var issues []string
	prev := 1
	for _, h := range Outline(body) {
		switch {
		case h.Level == 1:
			issues = append(issues, fmt.Sprintf("Level 1 heading %q is reserved for the title", h.Text))
		case h.Level > prev+1:
			issues = append(issues, fmt.Sprintf("Heading %q skips from level %d to %d", h.Text, prev, h.Level))
		}
		prev = h.Level
	}
	return issues
}
