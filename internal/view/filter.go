// Package view composes the roadmap's search, status filter and traversal
// modes into a single visibility predicate over nodes and edges.
package view

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// Mode selects one dependency-aware view. Modes are mutually exclusive.
type Mode string

const (
	ModeAll            Mode = "all"
	ModeCritical       Mode = "critical"
	ModeBlocking       Mode = "blocking"
	ModeActivePath     Mode = "active_path"
	ModePathToBlocking Mode = "path_to_blocking"
	ModeDoneOnly       Mode = "done_only"
	ModeInProgressOnly Mode = "in_progress_only"
	ModeApprovalOnly   Mode = "approval_only"
	ModeNotStartedOnly Mode = "not_started_only"
)

// Modes lists every mode in menu order.
var Modes = []Mode{
	ModeAll, ModeCritical, ModeBlocking, ModeActivePath, ModePathToBlocking,
	ModeDoneOnly, ModeInProgressOnly, ModeApprovalOnly, ModeNotStartedOnly,
}

// modeStatus maps the *_only modes to the status they keep.
var modeStatus = map[Mode]domain.Status{
	ModeBlocking:       domain.StatusBlocked,
	ModeDoneOnly:       domain.StatusDone,
	ModeInProgressOnly: domain.StatusInProgress,
	ModeApprovalOnly:   domain.StatusApproval,
	ModeNotStartedOnly: domain.StatusNotStarted,
}

// ParseMode validates a mode string. The empty string means ModeAll.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeAll, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Label returns a short menu label for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeCritical:
		return "Critical path"
	case ModeBlocking:
		return "Blocking"
	case ModeActivePath:
		return "Path to active work"
	case ModePathToBlocking:
		return "Path to blockers"
	case ModeDoneOnly:
		return "Done only"
	case ModeInProgressOnly:
		return "In progress only"
	case ModeApprovalOnly:
		return "On approval only"
	case ModeNotStartedOnly:
		return "Not started only"
	default:
		return "All"
	}
}

// StatusFilter keeps only nodes with one effective status, or everything.
type StatusFilter string

// StatusAny disables status filtering.
const StatusAny StatusFilter = "any"

// ParseStatusFilter accepts "any" (or "") and the presentation statuses.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || s == string(StatusAny) {
		return StatusAny, nil
	}
	st, err := domain.ParseStatus(s)
	if err != nil {
		return "", err
	}
	return StatusFilter(st), nil
}

// Matches reports whether a status passes the filter.
func (f StatusFilter) Matches(s domain.Status) bool {
	return f == "" || f == StatusAny || domain.Status(f) == s
}

// Filter is the user's current view selection.
type Filter struct {
	Search string
	Status StatusFilter
	Mode   Mode
}

// DefaultFilter shows everything.
func DefaultFilter() Filter {
	return Filter{Status: StatusAny, Mode: ModeAll}
}

// IsDefault reports whether the filter hides nothing.
func (f Filter) IsDefault() bool {
	return strings.TrimSpace(f.Search) == "" &&
		(f.Status == "" || f.Status == StatusAny) &&
		(f.Mode == "" || f.Mode == ModeAll)
}
