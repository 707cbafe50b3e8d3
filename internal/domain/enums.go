package domain

// ExecutionStatus is the backend's four-value execution vocabulary.
type ExecutionStatus string

const (
	ExecNotStarted ExecutionStatus = "not_started"
	ExecInProgress ExecutionStatus = "in_progress"
	ExecOnApproval ExecutionStatus = "on_approval"
	ExecCompleted  ExecutionStatus = "completed"
)

// ExecutionStatuses lists every backend execution status in workflow order.
var ExecutionStatuses = []ExecutionStatus{ExecNotStarted, ExecInProgress, ExecOnApproval, ExecCompleted}

// Status is the five-value presentation vocabulary shown on the roadmap.
// StatusBlocked has no backend counterpart; it only appears as a template
// default.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusApproval   Status = "approval"
	StatusDone       Status = "done"
	StatusBlocked    Status = "blocked"
)

// Statuses lists every presentation status in display order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusApproval, StatusDone, StatusBlocked}

// DocumentStatus describes the validity window of an issued document.
type DocumentStatus string

const (
	DocValid    DocumentStatus = "valid"
	DocExpiring DocumentStatus = "expiring"
	DocExpired  DocumentStatus = "expired"
)

type NodeKind string

const (
	NodeMilestone NodeKind = "milestone"
	NodeTitle     NodeKind = "title"
)

// UntouchedPolicy decides how nodes without a status record are displayed.
type UntouchedPolicy string

const (
	// PolicyTemplate shows the template default as-is, including blocked.
	PolicyTemplate UntouchedPolicy = "template"
	// PolicyNeutral shows a blocked template default as not_started.
	PolicyNeutral UntouchedPolicy = "neutral"
)

// ValidUntouchedPolicies is the canonical set of accepted policy strings.
var ValidUntouchedPolicies = map[string]bool{
	string(PolicyTemplate): true,
	string(PolicyNeutral):  true,
}
