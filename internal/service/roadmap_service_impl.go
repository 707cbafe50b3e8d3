package service

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/alexanderramin/roadmap/internal/backend"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/template"
	"github.com/alexanderramin/roadmap/internal/traversal"
	"github.com/alexanderramin/roadmap/internal/view"
)

const (
	MinZoom     = 35
	MaxZoom     = 200
	DefaultZoom = 100
)

// ViewState is the ephemeral presentation state of a session.
type ViewState struct {
	Selected string
	Filter   view.Filter
	Zoom     int
}

// HasSelection reports whether a node is selected.
func (v ViewState) HasSelection() bool { return v.Selected != "" }

type roadmapService struct {
	tpl      *template.Template
	statuses *StatusStore
	layout   *LayoutStore
	client   backend.Client
	observer UseCaseObserver

	mu        sync.RWMutex
	state     ViewState
	highlight traversal.Highlight
	overrides domain.LayoutOverrides
}

// NewRoadmapService creates a session over tpl. Layout positions start at
// the template defaults until ReloadLayout is called.
func NewRoadmapService(
	tpl *template.Template,
	statuses *StatusStore,
	layout *LayoutStore,
	client backend.Client,
	observers ...UseCaseObserver,
) RoadmapService {
	return &roadmapService{
		tpl:       tpl,
		statuses:  statuses,
		layout:    layout,
		client:    client,
		observer:  useCaseObserverOrNoop(observers),
		state:     ViewState{Filter: view.DefaultFilter(), Zoom: DefaultZoom},
		overrides: domain.LayoutOverrides{},
	}
}

func (s *roadmapService) Template() *template.Template { return s.tpl }

func (s *roadmapService) Projects(ctx context.Context) (projects []domain.Project, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "list-projects", startedAt, &err, nil)

	projects, err = s.client.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// SelectProject clears the selection and loads the project's statuses. A
// *LoadError still leaves the session usable with template defaults.
func (s *roadmapService) SelectProject(ctx context.Context, projectID int64) error {
	s.ClearSelection()
	return s.statuses.Load(ctx, projectID)
}

func (s *roadmapService) SelectNode(nodeID string) error {
	if !s.tpl.HasNode(nodeID) {
		return fmt.Errorf("select %q: %w", nodeID, ErrUnknownNode)
	}
	h := traversal.SelectionHighlight(s.tpl, nodeID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Selected = nodeID
	s.highlight = h
	return nil
}

func (s *roadmapService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Selected = ""
	s.highlight = traversal.Highlight{}
}

func (s *roadmapService) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filter.Search = query
}

func (s *roadmapService) SetMode(mode view.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filter.Mode = mode
}

func (s *roadmapService) SetStatusFilter(filter view.StatusFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filter.Status = filter
}

// ResetFilters restores search, mode and status filter and clears the
// selection. Zoom is kept.
func (s *roadmapService) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filter = view.DefaultFilter()
	s.state.Selected = ""
	s.highlight = traversal.Highlight{}
}

// SetZoom clamps percent to [MinZoom, MaxZoom] and returns the applied value.
func (s *roadmapService) SetZoom(percent int) int {
	percent = min(max(percent, MinZoom), MaxZoom)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Zoom = percent
	return percent
}

func (s *roadmapService) View() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *roadmapService) Snapshot() Snapshot {
	return s.statuses.Snapshot()
}

func (s *roadmapService) EffectiveStatus(nodeID string) domain.Status {
	return s.statuses.EffectiveStatus(nodeID)
}

// Visibility composes the current filter over a consistent status snapshot.
func (s *roadmapService) Visibility() view.Visibility {
	f := s.View().Filter
	return view.Compose(s.tpl, s.statuses.StatusFunc(), f)
}

func (s *roadmapService) NodeVisible(nodeID string) bool {
	return s.Visibility().NodeVisible(nodeID)
}

func (s *roadmapService) EdgeVisible(edgeID string) bool {
	return s.Visibility().EdgeVisible(edgeID)
}

// NodeTier is TierNone when nothing is selected.
func (s *roadmapService) NodeTier(nodeID string) traversal.Tier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highlight.NodeTier(nodeID)
}

func (s *roadmapService) EdgeTier(edgeID string) traversal.Tier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highlight.EdgeTier(edgeID)
}

func (s *roadmapService) Position(nodeID string) (domain.Point, error) {
	node, ok := s.tpl.Node(nodeID)
	if !ok {
		return domain.Point{}, fmt.Errorf("position of %q: %w", nodeID, ErrUnknownNode)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Position(s.overrides, node), nil
}

func (s *roadmapService) Explain(nodeID string) (*WhyReport, error) {
	if !s.tpl.HasNode(nodeID) {
		return nil, fmt.Errorf("explain %q: %w", nodeID, ErrUnknownNode)
	}
	snap := s.statuses.Snapshot()
	status := func(id string) domain.Status {
		return EffectiveStatus(s.tpl, snap.Records, s.statuses.Policy(), id)
	}
	return buildWhyReport(s.tpl, status, snap.Records, nodeID), nil
}

// EnsureRecord creates the backend record for the selected node if it has a
// section code and none exists yet.
func (s *roadmapService) EnsureRecord(ctx context.Context) (EnsureOutcome, error) {
	selected := s.View().Selected
	if selected == "" {
		return EnsureFailed, fmt.Errorf("ensure record: %w", ErrNoSelection)
	}
	if s.tpl.IsTitle(selected) {
		return EnsureFailed, fmt.Errorf("ensure record for title %q: %w", selected, ErrNotMapped)
	}
	code, ok := s.tpl.SectionCode(selected)
	if !ok {
		return EnsureFailed, fmt.Errorf("ensure record for %q: %w", selected, ErrNotMapped)
	}
	snap := s.statuses.Snapshot()
	if !snap.HasProject {
		return EnsureFailed, fmt.Errorf("ensure record for %q: %w", selected, ErrNoProject)
	}
	return s.statuses.EnsureRecord(ctx, snap.ProjectID, code)
}

// Files lists the files of the node's status record. A node without a loaded
// record has no files.
func (s *roadmapService) Files(ctx context.Context, nodeID string) ([]domain.FileInfo, error) {
	if !s.tpl.HasNode(nodeID) {
		return nil, fmt.Errorf("files of %q: %w", nodeID, ErrUnknownNode)
	}
	code, ok := s.tpl.SectionCode(nodeID)
	if !ok {
		return []domain.FileInfo{}, nil
	}
	rec, found := s.statuses.Record(code)
	if !found || rec.ID == 0 {
		return []domain.FileInfo{}, nil
	}
	return s.statuses.Files(ctx, rec.ID)
}

func (s *roadmapService) ReloadLayout(ctx context.Context) domain.LayoutOverrides {
	overrides := s.layout.Load(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = overrides
	return maps.Clone(overrides)
}

func (s *roadmapService) SaveLayout(ctx context.Context, nodeID string, p domain.Point) error {
	if !s.tpl.HasNode(nodeID) {
		return fmt.Errorf("save position of %q: %w", nodeID, ErrUnknownNode)
	}
	if err := s.layout.Save(ctx, nodeID, p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := maps.Clone(s.overrides)
	if next == nil {
		next = domain.LayoutOverrides{}
	}
	next[nodeID] = p
	s.overrides = next
	return nil
}

func (s *roadmapService) ResetLayout(ctx context.Context) error {
	if err := s.layout.Reset(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = domain.LayoutOverrides{}
	return nil
}
