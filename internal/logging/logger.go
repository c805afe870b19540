package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Attribute keys shared by the batch and the console handler.
const (
	FieldRun = "run"
	FieldJob = "job"
	FieldID  = "id"
)

// Format names.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options describes logger construction parameters.
type Options struct {
	Level  Level
	Format string
	Writer io.Writer // nil means stderr
	Color  bool
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := opts.Level
	if level == LevelNone {
		level = LevelWarn
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatConsole:
		return slog.New(&consoleHandler{mu: &sync.Mutex{}, w: w, level: level.Slog(), color: opts.Color}), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level.Slog()})), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// IsTerminal reports whether w is a terminal, so callers can decide on colour.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type consoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Level
	color  bool
	attrs  []slog.Attr
	groups []string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var job, id string
	var rest []slog.Attr

	collect := func(a slog.Attr) bool {
		switch a.Key {
		case FieldJob:
			job = a.Value.String()
		case FieldID:
			id = a.Value.String()
		case FieldRun:
			// constant for the run; JSON output keeps it
		default:
			rest = append(rest, a)
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	var buf bytes.Buffer
	buf.WriteString(h.levelLabel(r.Level))
	if job != "" {
		buf.WriteString(" [job ")
		buf.WriteString(job)
		buf.WriteByte(']')
	}
	if id != "" {
		buf.WriteByte(' ')
		buf.WriteString(id)
	}
	buf.WriteString(" – ")
	buf.WriteString(strings.TrimSpace(r.Message))

	prefix := strings.Join(h.groups, ".")
	for _, a := range rest {
		buf.WriteByte(' ')
		if prefix != "" {
			buf.WriteString(prefix)
			buf.WriteByte('.')
		}
		buf.WriteString(a.Key)
		buf.WriteByte('=')
		buf.WriteString(fmt.Sprintf("%q", a.Value.String()))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

const (
	ansiReset  = "\x1b[0m"
	ansiGray   = "\x1b[90m"
	ansiCyan   = "\x1b[36m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
)

func (h *consoleHandler) levelLabel(level slog.Level) string {
	var label, color string
	switch {
	case level >= slog.LevelError:
		label, color = "ERROR", ansiRed
	case level >= slog.LevelWarn:
		label, color = "WARN ", ansiYellow
	case level >= slog.LevelInfo:
		label, color = "INFO ", ansiCyan
	default:
		label, color = "DEBUG", ansiGray
	}
	if !h.color {
		return label
	}
	return color + label + ansiReset
}
