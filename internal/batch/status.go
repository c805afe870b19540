package batch

// Status is the outcome of a job.
type Status int

const (
	// StatusIncomplete means the job ended without completing, usually
	// through a fault. It is also the status of a job still running.
	StatusIncomplete Status = iota
	// StatusOK means the job completed without warnings.
	StatusOK
	// StatusWarn means the job completed but logged warnings.
	StatusWarn
	// StatusSkip means the record was intentionally not written.
	StatusSkip
	// StatusFail means the record was rejected, e.g. on an identifier
	// collision.
	StatusFail
)

// Statuses lists every status in summary order.
var Statuses = []Status{StatusOK, StatusWarn, StatusSkip, StatusFail, StatusIncomplete}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarn:
		return "WARN"
	case StatusSkip:
		return "SKIP"
	case StatusFail:
		return "FAIL"
	default:
		return "INCOMPLETE"
	}
}
