package batch

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-db2md/internal/logging"
	"github.com/alnah/go-db2md/internal/source"
)

// Column is a summary table column. Exactly one of ImportKey (a record
// field) and ResultKey (a result field) is set.
type Column struct {
	Header    string `yaml:"header" toml:"header"`
	ImportKey string `yaml:"importKey" toml:"importKey"`
	ResultKey string `yaml:"resultKey" toml:"resultKey"`
}

// Value returns the column's cell for job.
func (c Column) Value(job *Job) string {
	if c.ImportKey != "" {
		return job.Record.Field(c.ImportKey)
	}
	return job.Result().Field(c.ResultKey)
}

// DefaultColumns shows the record title and the output path.
var DefaultColumns = []Column{
	{Header: "Title", ImportKey: "title"},
	{Header: "Path", ResultKey: "path"},
}

// Config holds run-wide settings read by handlers.
type Config struct {
	Name          string
	LogLevel      logging.Level
	DryRun        bool
	NoMetadata    bool
	ExtraMetadata map[string]any
	Filter        string
	OutFolder     string
	Columns       []Column
	Logger        *slog.Logger
}

// Handler processes one job. It should end the job with Job.Complete; a
// returned error or panic ends it as StatusIncomplete instead.
type Handler func(ctx context.Context, job *Job) error

// Batch is one run over a record sequence.
type Batch struct {
	cfg      Config
	registry *Registry
	jobs     []*Job
	runID    string
	logger   *slog.Logger
	started  time.Time
}

// New creates a batch. A nil logger discards output; missing columns fall
// back to DefaultColumns.
func New(cfg Config) *Batch {
	if cfg.LogLevel == logging.LevelNone {
		cfg.LogLevel = logging.LevelWarn
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = DefaultColumns
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	runID := uuid.NewString()
	return &Batch{
		cfg:      cfg,
		registry: NewRegistry(),
		runID:    runID,
		logger:   logger.With(slog.String(logging.FieldRun, runID)),
		started:  time.Now(),
	}
}

// Config returns the batch settings.
func (b *Batch) Config() Config { return b.cfg }

// Registry returns the identifier registry of the run.
func (b *Batch) Registry() *Registry { return b.registry }

// RunID returns the unique identifier of the run.
func (b *Batch) RunID() string { return b.runID }

// Jobs returns every job created so far, in order.
func (b *Batch) Jobs() []*Job { return b.jobs }

// NewJob creates the next job for rec.
func (b *Batch) NewJob(rec source.Record) *Job {
	job := &Job{
		Seq:     len(b.jobs),
		Record:  rec,
		batch:   b,
		dryRun:  b.cfg.DryRun,
		started: time.Now(),
	}
	b.jobs = append(b.jobs, job)
	return job
}

// Process runs h over every record, one at a time. A failing record never
// stops the run; a read error from records or a cancelled context does.
func (b *Batch) Process(ctx context.Context, records iter.Seq2[source.Record, error], h Handler) error {
	for rec, err := range records {
		if err != nil {
			return fmt.Errorf("reading records: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		b.Run(ctx, b.NewJob(rec), h)
	}
	return nil
}

// Run executes h for a single job and guarantees a terminal status. An error
// or panic after the job completed is emitted but leaves the job unchanged.
func (b *Batch) Run(ctx context.Context, job *Job, h Handler) Status {
	defer func() {
		if r := recover(); r != nil {
			job.Error(fmt.Sprintf("Unexpected fault: %v", r))
			if !job.done {
				job.abort()
			}
		}
	}()

	if err := h(ctx, job); err != nil {
		job.Error(err.Error())
		if !job.done {
			job.abort()
		}
		return job.status
	}
	if !job.done {
		job.Error("Job ended without a result")
		job.abort()
	}
	return job.status
}

func (b *Batch) emit(job *Job, level logging.Level, msg string) {
	b.emitAttrs(context.Background(), job, level, msg)
}

func (b *Batch) emitAttrs(ctx context.Context, job *Job, level logging.Level, msg string, attrs ...slog.Attr) {
	all := make([]slog.Attr, 0, len(attrs)+2)
	all = append(all, slog.String(logging.FieldJob, strconv.Itoa(job.Seq)))
	if job.id != "" {
		all = append(all, slog.String(logging.FieldID, job.id))
	}
	all = append(all, attrs...)
	b.logger.LogAttrs(ctx, level.Slog(), msg, all...)
}
