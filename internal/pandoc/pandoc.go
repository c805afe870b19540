// Package pandoc drives the pandoc CLI to parse wiki or HTML markup into a
// document tree and to render a tree back to Markdown.
package pandoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/alnah/go-db2md/internal/fileutil"
	"github.com/alnah/go-db2md/internal/tree"
)

// DefaultPath is the pandoc executable looked up on PATH.
const DefaultPath = "pandoc"

// Input formats understood by Parse.
const (
	FormatMediaWiki = "mediawiki"
	FormatHTML      = "html"
)

// MarkdownFormat is the output dialect: CommonMark with extensions, without
// implicit figures, raw attributes or smart punctuation.
const MarkdownFormat = "commonmark_x-implicit_figures-raw_attribute-smart"

// Sentinel errors for pandoc invocations.
var (
	ErrUnknownFormat = errors.New("unknown input format")
	ErrPandocFailed  = errors.New("pandoc failed")
	ErrNotInstalled  = errors.New("pandoc not found")
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", fmt.Errorf("%w: %v", ErrNotInstalled, err)
		}
		return "", "", fmt.Errorf("starting command: %w", err)
	}

	stderrContent, err := io.ReadAll(stderrPipe)
	if err != nil {
		return "", "", fmt.Errorf("reading stderr: %w", err)
	}

	err = cmd.Wait()
	return stdout.String(), string(stderrContent), err
}

// Converter parses and renders documents through the pandoc CLI.
type Converter struct {
	Runner CommandRunner
	Path   string
}

// New creates a Converter with a real command runner. An empty path means
// DefaultPath.
func New(path string) *Converter {
	if path == "" {
		path = DefaultPath
	}
	return &Converter{Runner: &ExecRunner{}, Path: path}
}

func (c *Converter) path() string {
	if c.Path == "" {
		return DefaultPath
	}
	return c.Path
}

// Parse converts markup text in the given input format into a document tree.
func (c *Converter) Parse(ctx context.Context, text, format string) (*tree.Document, error) {
	if format != FormatMediaWiki && format != FormatHTML {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(text, format)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	stdout, err := c.run(ctx, tmpPath, "-f", format, "-t", "json")
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", format, err)
	}

	doc, err := tree.Decode([]byte(stdout))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", format, err)
	}
	return doc, nil
}

// Render converts a document tree to Markdown without line wrapping and with
// reference-style links.
func (c *Converter) Render(ctx context.Context, doc *tree.Document) (string, error) {
	data, err := tree.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("encoding tree: %w", err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(string(data), "json")
	if err != nil {
		return "", err
	}
	defer cleanup()

	stdout, err := c.run(ctx, tmpPath, "-f", "json", "-t", MarkdownFormat, "--wrap=none", "--reference-links")
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return stdout, nil
}

// Version returns the first line of `pandoc --version`.
func (c *Converter) Version(ctx context.Context) (string, error) {
	stdout, err := c.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSpace(line), nil
}

func (c *Converter) run(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, err := c.Runner.Run(ctx, c.path(), args...)
	if err != nil {
		if errors.Is(err, ErrNotInstalled) {
			return "", err
		}
		if stderr = strings.TrimSpace(stderr); stderr != "" {
			return "", fmt.Errorf("%w: %s: %w", ErrPandocFailed, stderr, err)
		}
		return "", fmt.Errorf("%w: %w", ErrPandocFailed, err)
	}
	return stdout, nil
}
