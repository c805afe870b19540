package pandoc

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-db2md/internal/tree"
)

type MockRunner struct {
	Stdout     string
	Stderr     string
	Err        error
	CalledWith []string
	Input      string
}

func (m *MockRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	m.CalledWith = append([]string{name}, args...)
	if len(args) > 0 {
		if data, err := os.ReadFile(args[0]); err == nil {
			m.Input = string(data)
		}
	}
	return m.Stdout, m.Stderr, m.Err
}

const paraJSON = `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"Para","c":[{"t":"Str","c":"hi"}]}]}`

func TestConverter_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		format     string
		mock       *MockRunner
		wantErr    error
		wantAnyErr bool
		wantArgs   []string
	}{
		{
			name:     "mediawiki",
			format:   FormatMediaWiki,
			mock:     &MockRunner{Stdout: paraJSON},
			wantArgs: []string{"-f", "mediawiki", "-t", "json"},
		},
		{
			name:     "html",
			format:   FormatHTML,
			mock:     &MockRunner{Stdout: paraJSON},
			wantArgs: []string{"-f", "html", "-t", "json"},
		},
		{
			name:    "unknown format",
			format:  "docx",
			mock:    &MockRunner{},
			wantErr: ErrUnknownFormat,
		},
		{
			name:    "pandoc fails",
			format:  FormatHTML,
			mock:    &MockRunner{Stderr: "boom", Err: errors.New("exit status 1")},
			wantErr: ErrPandocFailed,
		},
		{
			name:    "garbage output",
			format:  FormatHTML,
			mock:    &MockRunner{Stdout: "not json"},
			wantErr: tree.ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &Converter{Runner: tt.mock}
			doc, err := c.Parse(context.Background(), "text", tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if got := tree.Stringify(doc.Blocks); got != "hi" {
				t.Errorf("Stringify = %q, want %q", got, "hi")
			}
			if tt.mock.CalledWith[0] != DefaultPath {
				t.Errorf("command = %q, want %q", tt.mock.CalledWith[0], DefaultPath)
			}
			if got := strings.Join(tt.mock.CalledWith[2:], " "); got != strings.Join(tt.wantArgs, " ") {
				t.Errorf("args = %q, want %q", got, strings.Join(tt.wantArgs, " "))
			}
			if tt.mock.Input != "text" {
				t.Errorf("input file = %q, want %q", tt.mock.Input, "text")
			}
		})
	}
}

func TestConverter_Render(t *testing.T) {
	t.Parallel()

	mock := &MockRunner{Stdout: "hi\n"}
	c := &Converter{Runner: mock, Path: "/opt/pandoc"}
	doc := &tree.Document{Blocks: []tree.Node{&tree.Paragraph{Content: tree.Text("hi")}}}

	got, err := c.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "hi\n" {
		t.Errorf("Render() = %q", got)
	}

	want := []string{"/opt/pandoc", "", "-f", "json", "-t", MarkdownFormat, "--wrap=none", "--reference-links"}
	if len(mock.CalledWith) != len(want) {
		t.Fatalf("args = %v", mock.CalledWith)
	}
	for i, w := range want {
		if i == 1 {
			continue
		}
		if mock.CalledWith[i] != w {
			t.Errorf("arg[%d] = %q, want %q", i, mock.CalledWith[i], w)
		}
	}
	if !strings.Contains(mock.Input, `"Para"`) {
		t.Errorf("rendered input = %q, want Pandoc JSON", mock.Input)
	}
}

func TestConverter_Version(t *testing.T) {
	t.Parallel()

	mock := &MockRunner{Stdout: "pandoc 3.1.9\nFeatures: +server\n"}
	c := &Converter{Runner: mock}
	got, err := c.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if got != "pandoc 3.1.9" {
		t.Errorf("Version() = %q", got)
	}
}

func TestConverter_NotInstalled(t *testing.T) {
	t.Parallel()

	c := &Converter{Runner: &MockRunner{Err: ErrNotInstalled}}
	_, err := c.Version(context.Background())
	if !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Version() error = %v, want ErrNotInstalled", err)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	t.Parallel()

	c := &Converter{Runner: &ExecRunner{}, Path: "db2md-no-such-pandoc"}
	_, err := c.Version(context.Background())
	if !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Version() error = %v, want ErrNotInstalled", err)
	}
}
