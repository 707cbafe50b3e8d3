package domain

import "fmt"

// Translation reports whether a presentation status survived the trip to the
// backend vocabulary unchanged.
type Translation int

const (
	Exact Translation = iota
	Lossy
)

func (t Translation) String() string {
	if t == Lossy {
		return "lossy"
	}
	return "exact"
}

var execToStatus = map[ExecutionStatus]Status{
	ExecNotStarted: StatusNotStarted,
	ExecInProgress: StatusInProgress,
	ExecOnApproval: StatusApproval,
	ExecCompleted:  StatusDone,
}

var statusToExec = map[Status]ExecutionStatus{
	StatusNotStarted: ExecNotStarted,
	StatusInProgress: ExecInProgress,
	StatusApproval:   ExecOnApproval,
	StatusDone:       ExecCompleted,
}

// ParseExecutionStatus reads a backend code. Unknown codes become
// ExecNotStarted so that schema drift never breaks rendering.
func ParseExecutionStatus(s string) ExecutionStatus {
	e := ExecutionStatus(s)
	if _, ok := execToStatus[e]; ok {
		return e
	}
	return ExecNotStarted
}

// ToPresentation maps a backend execution status to its presentation status.
func ToPresentation(e ExecutionStatus) Status {
	if s, ok := execToStatus[e]; ok {
		return s
	}
	return StatusNotStarted
}

// ToBackend maps a presentation status to the backend vocabulary. Blocked and
// unknown values are written as not_started and reported as Lossy.
func ToBackend(s Status) (ExecutionStatus, Translation) {
	if e, ok := statusToExec[s]; ok {
		return e, Exact
	}
	return ExecNotStarted, Lossy
}

// ParseStatus validates a presentation status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Label returns the human-readable name of the status.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusApproval:
		return "On approval"
	case StatusDone:
		return "Done"
	case StatusBlocked:
		return "Blocking"
	default:
		return string(s)
	}
}

// Resolved reports whether the status no longer holds up its dependents.
func (s Status) Resolved() bool {
	return s == StatusDone
}

// Active reports whether the status counts as ongoing work.
func (s Status) Active() bool {
	return s == StatusInProgress || s == StatusApproval || s == StatusBlocked
}

// Apply returns the status a never-touched node should display under p.
func (p UntouchedPolicy) Apply(def Status) Status {
	if p == PolicyNeutral && def == StatusBlocked {
		return StatusNotStarted
	}
	return def
}
