package db2md

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"path/filepath"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/alnah/go-db2md/internal/batch"
	"github.com/alnah/go-db2md/internal/dateutil"
	"github.com/alnah/go-db2md/internal/fileutil"
	"github.com/alnah/go-db2md/internal/fixes"
	"github.com/alnah/go-db2md/internal/frontmatter"
	"github.com/alnah/go-db2md/internal/pandoc"
	"github.com/alnah/go-db2md/internal/preview"
	"github.com/alnah/go-db2md/internal/slugify"
	"github.com/alnah/go-db2md/internal/source"
	"github.com/alnah/go-db2md/internal/transform"
	"github.com/alnah/go-db2md/internal/tree"
)

// Output file suffixes.
const (
	MarkdownExt = ".md"
	DebugExt    = ".debug.json"
	PreviewExt  = ".html"
)

// aliasPrefix replaces the redirect marker of a wiki redirect body.
const aliasPrefix = "Alias for "

// redirectPattern matches the marker opening a wiki redirect.
var redirectPattern = regexp2.MustCompile(`^#(REDIRECT|OMDIRIGERING) `, regexp2.IgnoreCase)

// Converter turns dump records into Markdown files. Create with
// NewConverter and pass ConvertRecord to a batch, or call Run.
type Converter struct {
	cfg           converterConfig
	structural    StructuralConverter
	preview       *preview.Renderer
	wikiFixes     fixes.Table
	htmlFixes     fixes.Table
	markdownFixes fixes.Table
}

// NewConverter creates a Converter backed by pandoc and the built-in rule
// tables.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg:           converterConfig{timeout: defaultTimeout},
		wikiFixes:     fixes.WikiFixes(),
		htmlFixes:     fixes.HTMLFixes(),
		markdownFixes: fixes.MarkdownFixes(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.structural == nil {
		p := pandoc.New(c.cfg.pandocPath)
		if c.cfg.runner != nil {
			p.Runner = c.cfg.runner
		}
		c.structural = p
	}
	if c.cfg.htmlPreview {
		c.preview = preview.NewRenderer()
	}
	return c
}

// StructuralVersion reports the version of the structural converter, so a
// missing pandoc is found before any record is read. Converters without a
// version report "".
func (c *Converter) StructuralVersion(ctx context.Context) (string, error) {
	v, ok := c.structural.(versioner)
	if !ok {
		return "", nil
	}
	return v.Version(ctx)
}

// Run creates a batch from cfg and converts every record, one at a time.
// The returned batch is usable even when err is non-nil.
func (c *Converter) Run(ctx context.Context, records iter.Seq2[source.Record, error], cfg batch.Config) (*batch.Batch, error) {
	b := batch.New(cfg)
	return b, b.Process(ctx, records, c.ConvertRecord)
}

// document is the state of one record on its way through the pipeline.
type document struct {
	id         string
	title      string
	path       string
	text       string
	format     source.Format
	isRedirect bool
}

// ConvertRecord converts the job's record. It is a batch.Handler: it ends
// the job with a terminal status, or returns a validation error that the
// batch maps to INCOMPLETE.
func (c *Converter) ConvertRecord(ctx context.Context, job *batch.Job) error {
	cfg := job.Batch().Config()

	doc, err := c.prepare(job, cfg)
	if err != nil {
		return err
	}

	if cfg.Filter != "" && !strings.Contains(doc.id, strings.ToLower(cfg.Filter)) {
		job.Complete(batch.StatusSkip, nil)
		return nil
	}

	if transform.MatchNamespace(doc.title).HasNamespace() {
		job.Warn("Skipping doc as title includes a Mediawiki namespace")
		job.Complete(batch.StatusSkip, nil)
		return nil
	}

	if doc.format == source.FormatWiki {
		if err := detectRedirect(doc); err != nil {
			return err
		}
	}

	claim, prev := job.Batch().Registry().Claim(doc.id, doc.title, doc.isRedirect)
	switch claim {
	case batch.ClaimRejected:
		held := filepath.Join(cfg.OutFolder, prev.Title) + MarkdownExt
		job.Error(fmt.Sprintf("Forced to skip this doc '%s' as it might overwrite already processed doc with '%s'", doc.title, held))
		job.Complete(batch.StatusFail, nil)
		return nil
	case batch.ClaimOverwrite:
		if !doc.isRedirect {
			job.Warn("Overwrote older redirect doc with same id")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	return c.convert(ctx, job, cfg, doc)
}

// prepare validates the record and derives the identifier and output path.
func (c *Converter) prepare(job *batch.Job, cfg batch.Config) (*document, error) {
	rec := job.Record
	if rec.Title == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTitle)
	}
	if rec.Format != source.FormatWiki && rec.Format != source.FormatHTML {
		return nil, fmt.Errorf("%w: %w: %q", ErrValidation, ErrUnsupportedFormat, rec.Format)
	}
	if rec.Body == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrEmptyBody)
	}
	if cfg.OutFolder == "" && !cfg.DryRun {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrMissingOutFolder)
	}

	id := slugify.ID(rec.Title)
	if id == "" {
		return nil, fmt.Errorf("%w: %w: %q", ErrValidation, ErrEmptyID, rec.Title)
	}
	job.SetID(id)

	return &document{
		id:     id,
		title:  rec.Title,
		path:   filepath.Join(cfg.OutFolder, slugify.Name(rec.Title)+MarkdownExt),
		text:   rec.Body,
		format: rec.Format,
	}, nil
}

// detectRedirect rewrites a wiki redirect marker into plain alias text.
func detectRedirect(doc *document) error {
	ok, err := redirectPattern.MatchString(doc.text)
	if err != nil {
		return fmt.Errorf("detecting redirect: %w", err)
	}
	if !ok {
		return nil
	}
	text, err := redirectPattern.Replace(doc.text, aliasPrefix, -1, 1)
	if err != nil {
		return fmt.Errorf("detecting redirect: %w", err)
	}
	doc.text = text
	doc.isRedirect = true
	return nil
}

// convert runs the fix, parse, transform and render stages and completes
// the job.
func (c *Converter) convert(ctx context.Context, job *batch.Job, cfg batch.Config, doc *document) error {
	table, format := c.wikiFixes, pandoc.FormatMediaWiki
	if doc.format == source.FormatHTML {
		table, format = c.htmlFixes, pandoc.FormatHTML
	}

	text, _, err := fixes.Apply(doc.text, table, job)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceFixes, err)
	}

	parsed, err := c.structural.Parse(ctx, text, format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	found := transform.Run(parsed, doc.isRedirect, doc.format == source.FormatWiki, job)

	created := parseTimestamp(job, "created_at", job.Record.CreatedAt)
	updated := parseTimestamp(job, "updated_at", job.Record.UpdatedAt)

	var header string
	if !cfg.NoMetadata {
		meta := buildMetadata(doc, job.Record, created, updated, found.Namespace, cfg.ExtraMetadata)
		header, err = frontmatter.Marshal(meta)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFrontMatter, err)
		}
	}

	body, err := c.structural.Render(ctx, parsed)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	body, _, err = fixes.Apply(body, c.markdownFixes, job)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarkdownFixes, err)
	}

	for _, issue := range preview.AuditOutline(body) {
		job.Warn(issue)
	}

	var debug string
	if job.IsDebug() {
		raw, err := tree.EncodeIndent(parsed)
		if err != nil {
			return fmt.Errorf("encoding debug tree: %w", err)
		}
		debug = string(raw)
	}

	if job.IsDryRun() {
		job.Complete(batch.StatusOK, &batch.Result{
			Path:        doc.path,
			Text:        body,
			FrontMatter: header,
			Debug:       debug,
		})
		return nil
	}

	if err := c.write(ctx, doc, header, body, debug, created); err != nil {
		return err
	}
	job.Complete(batch.StatusOK, &batch.Result{Path: doc.path})
	return nil
}

// write stores the document and its sidecar files.
func (c *Converter) write(ctx context.Context, doc *document, header, body, debug string, created *dateutil.Timestamp) error {
	if err := fileutil.WriteFile(doc.path, header+body); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	if debug != "" {
		if err := fileutil.WriteFile(doc.path+DebugExt, debug); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	if c.preview != nil {
		page, err := c.preview.ToHTML(ctx, doc.title, body)
		if err != nil {
			return err
		}
		if err := fileutil.WriteFile(previewPath(doc.path), page); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	if created != nil {
		if err := fileutil.SetModTime(doc.path, created.Time); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	return nil
}

// previewPath swaps the Markdown extension of path for the preview one.
func previewPath(path string) string {
	return path[:len(path)-len(MarkdownExt)] + PreviewExt
}

// parseTimestamp parses an optional record timestamp. Unparseable values are
// logged on the job and dropped.
func parseTimestamp(job *batch.Job, key, value string) *dateutil.Timestamp {
	if value == "" {
		return nil
	}
	ts, err := dateutil.Parse(value)
	if err != nil {
		job.Warn(fmt.Sprintf("Ignoring %s: %v", key, err))
		return nil
	}
	return &ts
}

// buildMetadata assembles the front matter of a document. Extra metadata
// overrides the derived keys.
func buildMetadata(doc *document, rec source.Record, created, updated *dateutil.Timestamp, nc *transform.NamespaceContext, extra map[string]any) map[string]any {
	meta := map[string]any{
		frontmatter.KeyID:       doc.id,
		frontmatter.KeyTitle:    doc.title,
		frontmatter.KeyCategory: nc.Categories.Sorted(),
		frontmatter.KeyImage:    nc.Images.Sorted(),
		frontmatter.KeyAliasFor: nc.AliasFor.Sorted(),
	}
	if created != nil {
		meta[frontmatter.KeyCreatedAt] = created.ISO()
	}
	if updated != nil {
		meta[frontmatter.KeyUpdatedAt] = updated.ISO()
	}
	if rec.Author != "" {
		meta[frontmatter.KeyAuthor] = rec.Author
	}
	maps.Copy(meta, extra)
	return meta
}
