package db2md

import (
	"context"
	"time"

	"github.com/alnah/go-db2md/internal/pandoc"
	"github.com/alnah/go-db2md/internal/tree"
)

// StructuralConverter parses markup into a document tree and renders a tree
// back to Markdown.
type StructuralConverter interface {
	Parse(ctx context.Context, text, format string) (*tree.Document, error)
	Render(ctx context.Context, doc *tree.Document) (string, error)
}

var _ StructuralConverter = (*pandoc.Converter)(nil)

// Option configures a Converter.
type Option func(*Converter)

// versioner is implemented by structural converters backed by an external
// tool.
type versioner interface {
	Version(ctx context.Context) (string, error)
}

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout     time.Duration
	htmlPreview bool
	pandocPath  string
	runner      pandoc.CommandRunner
}

// defaultTimeout bounds the conversion of a single record.
const defaultTimeout = 2 * time.Minute

// WithTimeout sets the per-record conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("db2md: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithPandocPath uses the pandoc executable at path. Empty means pandoc on
// PATH.
func WithPandocPath(path string) Option {
	return func(c *Converter) {
		c.cfg.pandocPath = path
	}
}

// WithCommandRunner runs pandoc through r. A nil r keeps the os/exec runner.
func WithCommandRunner(r pandoc.CommandRunner) Option {
	return func(c *Converter) {
		c.cfg.runner = r
	}
}

// WithStructuralConverter replaces the pandoc-backed converter. The pandoc
// path and runner options are then ignored.
func WithStructuralConverter(s StructuralConverter) Option {
	return func(c *Converter) {
		c.structural = s
	}
}

// WithHTMLPreview writes an HTML page next to every Markdown file.
func WithHTMLPreview(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.htmlPreview = enabled
	}
}
