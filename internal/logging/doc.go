// Package logging builds the slog loggers used by db2md and defines the four
// job log levels (DEBUG, INFO, WARN, ERROR).
//
// Console output is one line per record, tagged with the job sequence number
// and document id when present, and coloured by level on a terminal. JSON
// output uses the standard slog JSON handler so migration logs can be
// post-processed.
package logging
