package batch

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/alnah/go-db2md/internal/logging"
)

// Counts tallies job outcomes and log entry levels.
type Counts struct {
	Status map[Status]int
	Level  map[logging.Level]int
}

// Counts returns the tallies over all jobs so far.
func (b *Batch) Counts() Counts {
	c := Counts{Status: make(map[Status]int), Level: make(map[logging.Level]int)}
	for _, job := range b.jobs {
		c.Status[job.status]++
		for _, e := range job.log {
			c.Level[e.Level]++
		}
	}
	return c
}

// Summary returns a one-line account of the run, e.g.
// `Batch "x": 4 jobs in 1.2s. OK 1, WARN 1, SKIP 1, INCOMPLETE 1. Logged WARN 3`.
func (b *Batch) Summary() string {
	c := b.Counts()

	var statuses []string
	for _, s := range Statuses {
		if n := c.Status[s]; n > 0 {
			statuses = append(statuses, fmt.Sprintf("%s %d", s, n))
		}
	}
	var levels []string
	for _, l := range logging.Levels {
		if n := c.Level[l]; n > 0 {
			levels = append(levels, fmt.Sprintf("%s %d", l, n))
		}
	}

	var sb strings.Builder
	name := b.cfg.Name
	if name == "" {
		name = "batch"
	}
	fmt.Fprintf(&sb, "Batch %q: %d jobs in %s.", name, len(b.jobs), time.Since(b.started).Round(time.Millisecond))
	if len(statuses) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(statuses, ", "))
		sb.WriteString(".")
	}
	if len(levels) > 0 {
		sb.WriteString(" Logged ")
		sb.WriteString(strings.Join(levels, ", "))
	}
	return sb.String()
}

// Table renders one row per job with the configured columns and the
// status. Only jobs that did not end OK are listed unless the batch logs
// at INFO or below.
func (b *Batch) Table() string {
	all := b.cfg.LogLevel <= logging.LevelInfo

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := table.Row{"#"}
	for _, c := range b.cfg.Columns {
		header = append(header, c.Header)
	}
	header = append(header, "Status")
	tw.AppendHeader(header)

	rows := 0
	for _, job := range b.jobs {
		if !all && job.status == StatusOK {
			continue
		}
		row := table.Row{job.Seq}
		for _, c := range b.cfg.Columns {
			row = append(row, c.Value(job))
		}
		row = append(row, job.status.String())
		tw.AppendRow(row)
		rows++
	}
	if rows == 0 {
		return ""
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
