package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNode is returned for node ids that are not in the template.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownSection is returned for section codes no node maps to.
	ErrUnknownSection = errors.New("unknown section code")

	// ErrStaleLoad is returned by a load whose project was switched away
	// before the backend answered. Its result was discarded.
	ErrStaleLoad = errors.New("stale status load discarded")

	// ErrNoProject is returned by operations that need an active project.
	ErrNoProject = errors.New("no project selected")

	// ErrNoSelection is returned by operations on the selected node when
	// nothing is selected.
	ErrNoSelection = errors.New("no node selected")

	// ErrNotMapped is returned when a node has no backend section code.
	ErrNotMapped = errors.New("node has no section code")
)

// LoadError reports that both the bulk initialisation and the list fallback
// failed for a project. The status map is left empty.
type LoadError struct {
	ProjectID int64
	InitErr   error
	ListErr   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading statuses for project %d: init: %v; list: %v", e.ProjectID, e.InitErr, e.ListErr)
}

func (e *LoadError) Unwrap() []error {
	return []error{e.InitErr, e.ListErr}
}
