// Package batch runs a sequence of records through a per-record handler.
//
// Every record becomes a Job that collects log entries and ends in exactly
// one terminal Status. The Batch owns the identifier Registry shared by all
// jobs of a run, recovers faults so a bad record cannot stop the run, and
// summarizes outcomes at the end.
package batch
