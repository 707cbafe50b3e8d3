package service

import (
	"context"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/template"
	"github.com/alexanderramin/roadmap/internal/traversal"
	"github.com/alexanderramin/roadmap/internal/view"
)

// RoadmapReader is the derived, read-only model of one roadmap session.
// Every answer is recomputed from the current status snapshot.
type RoadmapReader interface {
	Template() *template.Template
	View() ViewState
	Snapshot() Snapshot
	EffectiveStatus(nodeID string) domain.Status
	Visibility() view.Visibility
	NodeVisible(nodeID string) bool
	EdgeVisible(edgeID string) bool
	NodeTier(nodeID string) traversal.Tier
	EdgeTier(edgeID string) traversal.Tier
	Position(nodeID string) (domain.Point, error)
	Explain(nodeID string) (*WhyReport, error)
}

// RoadmapService combines the read model with the commands that change the
// session.
type RoadmapService interface {
	RoadmapReader

	Projects(ctx context.Context) ([]domain.Project, error)
	SelectProject(ctx context.Context, projectID int64) error

	SelectNode(nodeID string) error
	ClearSelection()
	SetSearch(query string)
	SetMode(mode view.Mode)
	SetStatusFilter(filter view.StatusFilter)
	ResetFilters()
	SetZoom(percent int) int

	EnsureRecord(ctx context.Context) (EnsureOutcome, error)
	Files(ctx context.Context, nodeID string) ([]domain.FileInfo, error)

	ReloadLayout(ctx context.Context) domain.LayoutOverrides
	SaveLayout(ctx context.Context, nodeID string, p domain.Point) error
	ResetLayout(ctx context.Context) error
}
