package db2md

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-db2md/internal/batch"
	"github.com/alnah/go-db2md/internal/logging"
	"github.com/alnah/go-db2md/internal/pandoc"
	"github.com/alnah/go-db2md/internal/source"
	"github.com/alnah/go-db2md/internal/tree"
)

// fakeStructural stands in for pandoc. Parse returns a fresh tree from
// build and Render returns body.
type fakeStructural struct {
	build     func(text string) []tree.Node
	body      string
	parseErr  error
	formats   []string
	texts     []string
	renders   int
	lastBlock []tree.Node
}

func (f *fakeStructural) Parse(_ context.Context, text, format string) (*tree.Document, error) {
	f.formats = append(f.formats, format)
	f.texts = append(f.texts, text)
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	var blocks []tree.Node
	if f.build != nil {
		blocks = f.build(text)
	}
	return &tree.Document{Blocks: blocks}, nil
}

func (f *fakeStructural) Render(_ context.Context, doc *tree.Document) (string, error) {
	f.renders++
	f.lastBlock = doc.Blocks
	return f.body, nil
}

// articleTree mirrors what pandoc makes of a short wiki article with a
// heading, a wiki link, a category and an image.
func articleTree(string) []tree.Node {
	return []tree.Node{
		&tree.Heading{Level: 2, Content: tree.Text("Intro")},
		&tree.Paragraph{Content: []tree.Node{
			&tree.Link{Content: tree.Text("Other page"), URL: "Other_page", Title: "wikilink"},
			tree.Space(),
			&tree.Link{Content: tree.Text("Category:Stuff"), URL: "Category:Stuff", Title: "wikilink"},
			tree.Space(),
			&tree.Image{Content: tree.Text("pic"), URL: "File:Pic.png", Title: "fig:pic"},
		}},
	}
}

// redirectTree is pandoc's view of "Alias for [[Normal]]".
func redirectTree(string) []tree.Node {
	return []tree.Node{
		&tree.Paragraph{Content: append(tree.Text("Alias for "),
			&tree.Link{Content: tree.Text("Normal"), URL: "Normal", Title: "wikilink"})},
	}
}

func wiki(title, body string) source.Record {
	return source.Record{Title: title, Body: body, Format: source.FormatWiki}
}

func recordSeq(recs ...source.Record) iter.Seq2[source.Record, error] {
	return func(yield func(source.Record, error) bool) {
		for _, r := range recs {
			if !yield(r, nil) {
				return
			}
		}
	}
}

func statuses(b *batch.Batch) []batch.Status {
	out := make([]batch.Status, 0, len(b.Jobs()))
	for _, j := range b.Jobs() {
		out = append(out, j.Status())
	}
	return out
}

func assertStatuses(t *testing.T, b *batch.Batch, want ...batch.Status) {
	t.Helper()
	got := statuses(b)
	if len(got) != len(want) {
		t.Fatalf("got %d jobs %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("job %d status = %v, want %v (log %+v)", i, got[i], want[i], b.Jobs()[i].Entries())
		}
	}
}

func hasEntry(job *batch.Job, level logging.Level, substr string) bool {
	for _, e := range job.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestConvertRecord_FixtureScenarios(t *testing.T) {
	t.Parallel()

	fake := &fakeStructural{build: articleTree, body: "## Intro\n\nPlain text.\n"}
	conv := NewConverter(WithStructuralConverter(fake))

	b, err := conv.Run(context.Background(), recordSeq(
		wiki("Normal", "== Intro ==\n[[Other page]] [[Category:Stuff]] [[File:Pic.png|pic]]"),
		wiki("Tricky", "Tricky title with [[Normal]] link."),
		wiki("Tricky", "Tricky title with [[Normal]] link."),
		wiki("Mall:Test", "{{Template}}"),
		wiki("", "No title"),
	), batch.Config{DryRun: true, OutFolder: "out"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertStatuses(t, b, batch.StatusOK, batch.StatusOK, batch.StatusFail, batch.StatusSkip, batch.StatusIncomplete)

	jobs := b.Jobs()
	if !hasEntry(jobs[2], logging.LevelError, "out/Tricky.md") {
		t.Errorf("collision log should name the held path, got %+v", jobs[2].Entries())
	}
	if jobs[3].Result() != nil {
		t.Errorf("skipped job result = %+v, want nil", jobs[3].Result())
	}
	if !hasEntry(jobs[3], logging.LevelWarn, "Mediawiki namespace") {
		t.Errorf("namespace skip not logged: %+v", jobs[3].Entries())
	}
	if !hasEntry(jobs[4], logging.LevelError, ErrEmptyTitle.Error()) {
		t.Errorf("validation fault not logged: %+v", jobs[4].Entries())
	}
	if len(fake.formats) != 2 {
		t.Errorf("parsed %d documents, want 2 (Normal, first Tricky)", len(fake.formats))
	}
	for _, f := range fake.formats {
		if f != pandoc.FormatMediaWiki {
			t.Errorf("parse format = %q, want %q", f, pandoc.FormatMediaWiki)
		}
	}

	res := jobs[0].Result()
	if res == nil {
		t.Fatal("Normal result is nil")
	}
	if res.Path != filepath.Join("out", "Normal.md") {
		t.Errorf("Path = %q", res.Path)
	}
	if res.Text != fake.body {
		t.Errorf("Text = %q, want %q", res.Text, fake.body)
	}
	for _, want := range []string{"---\n", "id: normal", "title: Normal", "Stuff", "Pic.png"} {
		if !strings.Contains(res.FrontMatter, want) {
			t.Errorf("FrontMatter missing %q:\n%s", want, res.FrontMatter)
		}
	}
	if strings.Contains(res.FrontMatter, "alias_for") {
		t.Errorf("non-redirect front matter has alias_for:\n%s", res.FrontMatter)
	}
	if res.Debug != "" {
		t.Error("Debug should be empty below DEBUG level")
	}
}

func TestConvertRecord_TransformsTree(t *testing.T) {
	t.Parallel()

	fake := &fakeStructural{build: articleTree, body: "## Intro\n"}
	conv := NewConverter(WithStructuralConverter(fake))

	if _, err := conv.Run(context.Background(), recordSeq(wiki("Normal", "text")),
		batch.Config{DryRun: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	para, ok := fake.lastBlock[1].(*tree.Paragraph)
	if !ok {
		t.Fatalf("block 1 = %T, want *tree.Paragraph", fake.lastBlock[1])
	}
	var links, images int
	for _, n := range para.Content {
		switch n := n.(type) {
		case *tree.Link:
			links++
			if n.URL != "Other_page" {
				t.Errorf("link URL = %q, want %q", n.URL, "Other_page")
			}
			if n.Title != "" {
				t.Errorf("link title = %q, want empty", n.Title)
			}
		case *tree.Image:
			images++
			if n.URL != "Pic.png" || n.Title != "pic" {
				t.Errorf("image = %+v", n)
			}
		}
	}
	if links != 1 || images != 1 {
		t.Errorf("got %d links and %d images, want the category link removed", links, images)
	}
}

func TestConvertRecord_OverwritePolicy(t *testing.T) {
	t.Parallel()

	const redirect = "#REDIRECT [[Normal]]"
	const article = "Some article text."

	tests := []struct {
		name       string
		first      string
		second     string
		wantSecond batch.Status
		wantWarn   bool
	}{
		{"redirect over redirect", redirect, redirect, batch.StatusOK, false},
		{"document over redirect", redirect, article, batch.StatusWarn, true},
		{"redirect over document", article, redirect, batch.StatusFail, false},
		{"document over document", article, article, batch.StatusFail, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeStructural{body: "Text.\n"}
			conv := NewConverter(WithStructuralConverter(fake))
			b, err := conv.Run(context.Background(), recordSeq(
				wiki("Same title", tt.first),
				wiki("SAME TITLE", tt.second),
			), batch.Config{DryRun: true, OutFolder: "out"})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			assertStatuses(t, b, batch.StatusOK, tt.wantSecond)
			second := b.Jobs()[1]
			if got := hasEntry(second, logging.LevelWarn, "Overwrote older redirect doc"); got != tt.wantWarn {
				t.Errorf("overwrite warning logged = %v, want %v", got, tt.wantWarn)
			}
			if tt.wantSecond == batch.StatusFail && second.Result() != nil {
				t.Error("rejected job should have no result")
			}
		})
	}
}

func TestConvertRecord_Redirect(t *testing.T) {
	t.Parallel()

	fake := &fakeStructural{build: redirectTree, body: "Alias for [Normal]\n"}
	conv := NewConverter(WithStructuralConverter(fake))

	b, err := conv.Run(context.Background(), recordSeq(wiki("Old name", "#redirect [[Normal]]")),
		batch.Config{DryRun: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertStatuses(t, b, batch.StatusOK)
	if fake.texts[0] != "Alias for [[Normal]]" {
		t.Errorf("parsed text = %q, want redirect marker rewritten", fake.texts[0])
	}
	if fm := b.Jobs()[0].Result().FrontMatter; !strings.Contains(fm, "alias_for") || !strings.Contains(fm, "Normal") {
		t.Errorf("FrontMatter missing alias:\n%s", fm)
	}
	if claim, _ := b.Registry().Claim("old name", "Old name", false); claim != batch.ClaimOverwrite {
		t.Errorf("Claim() over the redirect = %v, want ClaimOverwrite", claim)
	}
}

func TestConvertRecord_HTMLSource(t *testing.T) {
	t.Parallel()

	fake := &fakeStructural{build: articleTree, body: "## Intro\n"}
	conv := NewConverter(WithStructuralConverter(fake))

	rec := source.Record{Title: "Post", Body: "<p>#REDIRECT x</p>", Format: source.FormatHTML}
	b, err := conv.Run(context.Background(), recordSeq(rec), batch.Config{DryRun: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertStatuses(t, b, batch.StatusOK)
	if fake.formats[0] != pandoc.FormatHTML {
		t.Errorf("parse format = %q, want %q", fake.formats[0], pandoc.FormatHTML)
	}
	if claim, _ := b.Registry().Claim("post", "Post", false); claim != batch.ClaimRejected {
		t.Errorf("HTML bodies are never redirects, Claim() = %v", claim)
	}
	if fm := b.Jobs()[0].Result().FrontMatter; strings.Contains(fm, "category") {
		t.Errorf("namespaces are only extracted from wiki sources:\n%s", fm)
	}
}

func TestConvertRecord_SourceFixesLogToJob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rec   source.Record
		level logging.Level
		want  string
	}{
		{
			name:  "html shortcode left for manual cleanup",
			rec:   source.Record{Title: "Gallery", Body: `<p>Trip</p>[pe2-gallery album="aHR0cDovL3BpY2"]`, Format: source.FormatHTML},
			level: logging.LevelInfo,
			want:  "WordPress shortcode cannot be converted",
		},
		{
			name:  "wiki media prefix normalized",
			rec:   wiki("Pictures", "[[Fil:Pic.png]]"),
			level: logging.LevelDebug,
			want:  "Replaced normalize_image_links 1 times",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeStructural{body: "Text.\n"}
			conv := NewConverter(WithStructuralConverter(fake))
			b, err := conv.Run(context.Background(), recordSeq(tt.rec), batch.Config{DryRun: true})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			assertStatuses(t, b, batch.StatusOK)
			if job := b.Jobs()[0]; !hasEntry(job, tt.level, tt.want) {
				t.Errorf("job log missing %v %q: %+v", tt.level, tt.want, job.Entries())
			}
		})
	}
}

func TestConvertRecord_Filter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter string
		want   batch.Status
		parsed int
	}{
		{"no filter", "", batch.StatusOK, 1},
		{"case-insensitive match", "NOR", batch.StatusOK, 1},
		{"no match", "xyz", batch.StatusSkip, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeStructural{body: "Text.\n"}
			conv := NewConverter(WithStructuralConverter(fake))
			b, err := conv.Run(context.Background(), recordSeq(wiki("Normal", "text")),
				batch.Config{DryRun: true, Filter: tt.filter})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			assertStatuses(t, b, tt.want)
			if len(fake.formats) != tt.parsed {
				t.Errorf("parsed %d documents, want %d", len(fake.formats), tt.parsed)
			}
			if tt.want == batch.StatusSkip && b.Registry().Len() != 0 {
				t.Error("filtered record should not claim an identifier")
			}
		})
	}
}

func TestConvertRecord_ValidationFaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rec     source.Record
		cfg     batch.Config
		wantErr error
	}{
		{
			name:    "empty title",
			rec:     wiki("", "text"),
			cfg:     batch.Config{DryRun: true},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "empty body",
			rec:     wiki("Title", ""),
			cfg:     batch.Config{DryRun: true},
			wantErr: ErrEmptyBody,
		},
		{
			name:    "unsupported format",
			rec:     source.Record{Title: "Title", Body: "x", Format: "markdown"},
			cfg:     batch.Config{DryRun: true},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "missing out folder",
			rec:     wiki("Title", "text"),
			cfg:     batch.Config{},
			wantErr: ErrMissingOutFolder,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeStructural{body: "Text.\n"}
			conv := NewConverter(WithStructuralConverter(fake))
			b := batch.New(tt.cfg)
			job := b.NewJob(tt.rec)

			err := conv.ConvertRecord(context.Background(), job)
			if !errors.Is(err, ErrValidation) || !errors.Is(err, tt.wantErr) {
				t.Fatalf("ConvertRecord() error = %v, want %v", err, tt.wantErr)
			}

			if got := b.Run(context.Background(), b.NewJob(tt.rec), conv.ConvertRecord); got != batch.StatusIncomplete {
				t.Errorf("Run() status = %v, want INCOMPLETE", got)
			}
			if len(fake.formats) != 0 {
				t.Error("invalid record reached the parser")
			}
		})
	}
}

func TestConvertRecord_ParseErrorIsIncomplete(t *testing.T) {
	t.Parallel()

	fake := &fakeStructural{parseErr: pandoc.ErrNotInstalled}
	conv := NewConverter(WithStructuralConverter(fake))

	b, err := conv.Run(context.Background(), recordSeq(wiki("A", "a"), wiki("B", "b")),
		batch.Config{DryRun: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertStatuses(t, b, batch.StatusIncomplete, batch.StatusIncomplete)
	if !hasEntry(b.Jobs()[0], logging.LevelError, ErrParse.Error()) {
		t.Errorf("parse failure not logged: %+v", b.Jobs()[0].Entries())
	}
}

func TestConvertRecord_EmptyLinkTargetIsIncomplete(t *testing.T) {
	t.Parallel()

	fake := &fakeStructural{
		build: func(string) []tree.Node {
			return []tree.Node{&tree.Paragraph{Content: []tree.Node{
				&tree.Link{Content: tree.Text("x"), URL: "Category:"},
			}}}
		},
		body: "x\n",
	}
	conv := NewConverter(WithStructuralConverter(fake))

	b, err := conv.Run(context.Background(), recordSeq(wiki("Broken", "[[Category:]]"), wiki("Fine", "ok")),
		batch.Config{DryRun: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertStatuses(t, b, batch.StatusIncomplete, batch.StatusIncomplete)
	if !hasEntry(b.Jobs()[0], logging.LevelError, "Unexpected fault") {
		t.Errorf("fault not logged: %+v", b.Jobs()[0].Entries())
	}
}

func TestConvertRecord_Metadata(t *testing.T) {
	t.Parallel()

	rec := wiki("Normal", "text")
	rec.Author = "Ymir"
	rec.CreatedAt = "2011-03-13T18:42:38Z"
	rec.UpdatedAt = "not a date"

	fake := &fakeStructural{body: "Text.\n"}
	conv := NewConverter(WithStructuralConverter(fake))
	b, err := conv.Run(context.Background(), recordSeq(rec), batch.Config{
		DryRun:        true,
		ExtraMetadata: map[string]any{"title": "Overridden", "lang": "sv"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertStatuses(t, b, batch.StatusWarn)
	fm := b.Jobs()[0].Result().FrontMatter
	for _, want := range []string{"author: Ymir", "2011-03-13T18:42:38+00:00", "title: Overridden", "lang: sv"} {
		if !strings.Contains(fm, want) {
			t.Errorf("FrontMatter missing %q:\n%s", want, fm)
		}
	}
	if strings.Contains(fm, "updated_at") {
		t.Errorf("unparseable updated_at should be dropped:\n%s", fm)
	}
	if strings.Index(fm, "author") > strings.Index(fm, "title") {
		t.Errorf("keys should be sorted:\n%s", fm)
	}
}

func TestConvertRecord_NoMetadata(t *testing.T) {
	t.Parallel()

	fake := &fakeStructural{body: "Text.\n"}
	conv := NewConverter(WithStructuralConverter(fake))
	b, err := conv.Run(context.Background(), recordSeq(wiki("Normal", "text")),
		batch.Config{DryRun: true, NoMetadata: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if fm := b.Jobs()[0].Result().FrontMatter; fm != "" {
		t.Errorf("FrontMatter = %q, want empty", fm)
	}
}

func TestConvertRecord_OutlineAudit(t *testing.T) {
	t.Parallel()

	fake := &fakeStructural{body: "# Title\n\n#### Deep\n"}
	conv := NewConverter(WithStructuralConverter(fake))
	b, err := conv.Run(context.Background(), recordSeq(wiki("Normal", "text")),
		batch.Config{DryRun: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertStatuses(t, b, batch.StatusWarn)
	if !hasEntry(b.Jobs()[0], logging.LevelWarn, "reserved for the title") {
		t.Errorf("level 1 heading not flagged: %+v", b.Jobs()[0].Entries())
	}
}

func TestConvertRecord_WritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := wiki("Rock 'n' Roll", "text")
	rec.CreatedAt = "2011-03-13T18:42:38Z"

	fake := &fakeStructural{build: articleTree, body: "## Intro\n\nPlain text.\n"}
	conv := NewConverter(WithStructuralConverter(fake), WithHTMLPreview(true))
	b, err := conv.Run(context.Background(), recordSeq(rec), batch.Config{
		OutFolder: dir,
		LogLevel:  logging.LevelDebug,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertStatuses(t, b, batch.StatusOK)

	res := b.Jobs()[0].Result()
	want := filepath.Join(dir, "Rock 'n' Roll.md")
	if res.Path != want {
		t.Fatalf("Path = %q, want %q", res.Path, want)
	}
	if res.Text != "" || res.FrontMatter != "" {
		t.Error("written jobs should only report the path")
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "---\n") || !strings.HasSuffix(content, fake.body) {
		t.Errorf("unexpected content:\n%s", content)
	}

	info, err := os.Stat(want)
	if err != nil {
		t.Fatal(err)
	}
	created := time.Date(2011, 3, 13, 18, 42, 38, 0, time.UTC)
	if !info.ModTime().Equal(created) {
		t.Errorf("mtime = %v, want %v", info.ModTime(), created)
	}

	debug, err := os.ReadFile(want + DebugExt)
	if err != nil {
		t.Fatalf("reading debug tree: %v", err)
	}
	if _, err := tree.Decode(debug); err != nil {
		t.Errorf("debug tree does not decode: %v", err)
	}

	page, err := os.ReadFile(filepath.Join(dir, "Rock 'n' Roll.html"))
	if err != nil {
		t.Fatalf("reading preview: %v", err)
	}
	if !strings.Contains(string(page), "<h2") || strings.Contains(string(page), "id: rock") {
		t.Errorf("preview should render the body only:\n%s", page)
	}
}

func TestDetectRedirect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		want     string
		redirect bool
	}{
		{"english", "#REDIRECT [[Target]]", "Alias for [[Target]]", true},
		{"swedish lower case", "#omdirigering [[Mål]]", "Alias for [[Mål]]", true},
		{"not at start", "See #REDIRECT [[Target]]", "See #REDIRECT [[Target]]", false},
		{"missing space", "#REDIRECT[[Target]]", "#REDIRECT[[Target]]", false},
		{"plain text", "Hello", "Hello", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := &document{text: tt.text}
			if err := detectRedirect(doc); err != nil {
				t.Fatalf("detectRedirect() error = %v", err)
			}
			if doc.text != tt.want || doc.isRedirect != tt.redirect {
				t.Errorf("got (%q, %v), want (%q, %v)", doc.text, doc.isRedirect, tt.want, tt.redirect)
			}
		})
	}
}

func TestWithTimeoutPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}

// versionRunner answers `pandoc --version` and records the executable.
type versionRunner struct {
	names []string
}

func (r *versionRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	r.names = append(r.names, name)
	return "pandoc 3.1.9\nFeatures: +server", "", nil
}

func TestNewConverter_PandocOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		wantName string
	}{
		{"explicit path", "/opt/pandoc/bin/pandoc", "/opt/pandoc/bin/pandoc"},
		{"empty path uses PATH", "", pandoc.DefaultPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := &versionRunner{}
			conv := NewConverter(WithPandocPath(tt.path), WithCommandRunner(runner))

			got, err := conv.StructuralVersion(context.Background())
			if err != nil {
				t.Fatalf("StructuralVersion() error = %v", err)
			}
			if got != "pandoc 3.1.9" {
				t.Errorf("StructuralVersion() = %q, want %q", got, "pandoc 3.1.9")
			}
			if len(runner.names) != 1 || runner.names[0] != tt.wantName {
				t.Errorf("ran %v, want [%s]", runner.names, tt.wantName)
			}
		})
	}
}

func TestNewConverter_StructuralConverterWins(t *testing.T) {
	t.Parallel()

	runner := &versionRunner{}
	conv := NewConverter(
		WithStructuralConverter(&fakeStructural{}),
		WithPandocPath("/opt/pandoc"),
		WithCommandRunner(runner),
	)

	got, err := conv.StructuralVersion(context.Background())
	if err != nil || got != "" {
		t.Errorf("StructuralVersion() = %q, %v; want empty for a converter without a version", got, err)
	}
	if len(runner.names) != 0 {
		t.Errorf("pandoc ran %v, want no calls", runner.names)
	}
}
