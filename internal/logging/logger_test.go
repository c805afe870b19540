package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "DEBUG", want: LevelDebug},
		{in: "info", want: LevelInfo},
		{in: " Warn ", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: "ERROR", want: LevelError},
		{in: "verbose", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLevel) {
					t.Fatalf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestLevelSlogOrdering(t *testing.T) {
	t.Parallel()

	for i := 1; i < len(Levels); i++ {
		if Levels[i-1].Slog() >= Levels[i].Slog() {
			t.Errorf("%v should map below %v", Levels[i-1], Levels[i])
		}
	}
}

func TestConsoleHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Level: LevelInfo, Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.With(FieldRun, "abc", FieldJob, 3, FieldID, "normal").Warn("Replaced empty_ref_link 2 times", "rule", "empty_ref_link")
	logger.Debug("filtered out")

	out := buf.String()
	if strings.Contains(out, "filtered out") {
		t.Errorf("debug line should be filtered: %q", out)
	}
	for _, want := range []string{"WARN", "[job 3]", "normal", "Replaced empty_ref_link 2 times", `rule="empty_ref_link"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "abc") {
		t.Errorf("run id should not be printed on console: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("colour codes present without Color option: %q", out)
	}
}

func TestJSONHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Level: LevelDebug, Format: FormatJSON, Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("hello", FieldID, "x")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if rec["msg"] != "hello" || rec[FieldID] != "x" || rec["level"] != slog.LevelDebug.String() {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	t.Parallel()

	if IsTerminal(&bytes.Buffer{}) {
		t.Error("buffer reported as terminal")
	}
}
