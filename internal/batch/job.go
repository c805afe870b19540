package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-db2md/internal/logging"
	"github.com/alnah/go-db2md/internal/source"
)

// ErrAlreadyComplete is the panic value when a job is completed twice.
var ErrAlreadyComplete = errors.New("job already complete")

// LogEntry is one line of a job log.
type LogEntry struct {
	Time    time.Time
	Level   logging.Level
	Message string
}

// Result is what a completed job produced. Dry runs fill Text, FrontMatter
// and Debug instead of writing files.
type Result struct {
	Path        string
	Text        string
	FrontMatter string
	Debug       string
}

// Field returns a result field by its summary column key.
func (r *Result) Field(key string) string {
	if r == nil {
		return ""
	}
	switch key {
	case "path":
		return r.Path
	case "text":
		return r.Text
	case "frontMatter":
		return r.FrontMatter
	case "debug":
		return r.Debug
	default:
		return ""
	}
}

// Job is the processing of a single record.
type Job struct {
	Seq    int
	Record source.Record

	batch   *Batch
	id      string
	log     []LogEntry
	warned  bool
	result  *Result
	status  Status
	done    bool
	dryRun  bool
	started time.Time
}

// Batch returns the batch the job belongs to.
func (j *Job) Batch() *Batch { return j.batch }

// ID returns the document identifier, once known.
func (j *Job) ID() string { return j.id }

// SetID records the document identifier used in log lines.
func (j *Job) SetID(id string) { j.id = id }

// IsDryRun reports whether output must be returned instead of written.
func (j *Job) IsDryRun() bool { return j.dryRun }

// IsDebug reports whether the batch logs at debug level.
func (j *Job) IsDebug() bool { return j.batch.cfg.LogLevel == logging.LevelDebug }

// Entries returns the job log.
func (j *Job) Entries() []LogEntry { return j.log }

// Result returns the job result, or nil.
func (j *Job) Result() *Result { return j.result }

// Status returns the terminal status, or StatusIncomplete while running.
func (j *Job) Status() Status { return j.status }

// Done reports whether a terminal status has been set.
func (j *Job) Done() bool { return j.done }

// Log records msg on the job and emits it through the batch logger. A
// completed job is immutable: the message is still emitted but neither the
// job log nor its status changes.
func (j *Job) Log(level logging.Level, msg string) {
	if level == logging.LevelNone {
		return
	}
	if j.done {
		j.batch.emit(j, level, msg)
		return
	}
	j.log = append(j.log, LogEntry{Time: time.Now(), Level: level, Message: msg})
	if level >= logging.LevelWarn {
		j.warned = true
	}
	j.batch.emit(j, level, msg)
}

func (j *Job) Debug(msg string) { j.Log(logging.LevelDebug, msg) }

func (j *Job) Info(msg string) { j.Log(logging.LevelInfo, msg) }

func (j *Job) Warn(msg string) { j.Log(logging.LevelWarn, msg) }

func (j *Job) Error(msg string) { j.Log(logging.LevelError, msg) }

// Complete sets the terminal status. OK becomes WARN when a warning was
// logged. Completing twice panics with ErrAlreadyComplete.
func (j *Job) Complete(status Status, result *Result) Status {
	if j.done {
		panic(fmt.Errorf("%w: job %d", ErrAlreadyComplete, j.Seq))
	}
	if status == StatusOK && j.warned {
		status = StatusWarn
	}
	j.status = status
	j.result = result
	j.done = true
	j.batch.emitAttrs(context.Background(), j, logging.LevelDebug, "Completed",
		slog.String("status", status.String()),
		slog.Duration("elapsed", time.Since(j.started)))
	return status
}

// abort ends a job that never reached Complete.
func (j *Job) abort() {
	j.status = StatusIncomplete
	j.done = true
}
