package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/testutil"
	"github.com/alexanderramin/roadmap/internal/traversal"
	"github.com/alexanderramin/roadmap/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoadmapService_DefaultView(t *testing.T) {
	svc, _ := newSession(t, newFake(t))

	v := svc.View()
	assert.False(t, v.HasSelection())
	assert.True(t, v.Filter.IsDefault())
	assert.Equal(t, DefaultZoom, v.Zoom)
	assert.Equal(t, traversal.TierNone, svc.NodeTier("sketch"))

	for _, id := range svc.Template().NodeIDs() {
		assert.True(t, svc.NodeVisible(id), id)
	}
	for _, e := range svc.Template().Edges() {
		assert.True(t, svc.EdgeVisible(e.ID), e.ID)
	}
}

func TestRoadmapService_SelectNodeHighlights(t *testing.T) {
	svc, _ := newSession(t, newFake(t))

	require.NoError(t, svc.SelectNode("urban"))

	assert.Equal(t, "urban", svc.View().Selected)
	assert.Equal(t, traversal.TierPrimary, svc.NodeTier("urban"))
	assert.Equal(t, traversal.TierInPath, svc.NodeTier("sketch"))
	assert.Equal(t, traversal.TierInPath, svc.NodeTier("heat"))
	assert.Equal(t, traversal.TierDim, svc.NodeTier("geo"))
	assert.Equal(t, traversal.TierDim, svc.NodeTier("registry"))

	// e0 sketch→tu lies inside the closure, e13 urban→workproj touches the
	// selection, e1 sketch→geo leaves it.
	assert.Equal(t, traversal.TierInPath, svc.EdgeTier("e0"))
	assert.Equal(t, traversal.TierPrimary, svc.EdgeTier("e13"))
	assert.Equal(t, traversal.TierDim, svc.EdgeTier("e1"))

	svc.ClearSelection()
	assert.Equal(t, traversal.TierNone, svc.NodeTier("urban"))
}

func TestRoadmapService_UnknownNodeRejected(t *testing.T) {
	svc, _ := newSession(t, newFake(t))
	ctx := context.Background()

	assert.ErrorIs(t, svc.SelectNode("nope"), ErrUnknownNode)
	_, err := svc.Explain("nope")
	assert.ErrorIs(t, err, ErrUnknownNode)
	_, err = svc.Position("nope")
	assert.ErrorIs(t, err, ErrUnknownNode)
	assert.ErrorIs(t, svc.SaveLayout(ctx, "nope", domain.Point{}), ErrUnknownNode)
	_, err = svc.Files(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestRoadmapService_FiltersAndReset(t *testing.T) {
	fb := newFake(t)
	fb.Fail(testutil.OpInit, http.StatusInternalServerError)
	svc, _ := newSession(t, fb)
	require.NoError(t, svc.SelectProject(context.Background(), 7))

	svc.SetMode(view.ModeCritical)
	assert.True(t, svc.NodeVisible("gpar"))
	assert.False(t, svc.NodeVisible("geo"))
	assert.False(t, svc.EdgeVisible("e1"))

	svc.SetMode(view.ModeAll)
	svc.SetStatusFilter(view.StatusFilter(domain.StatusBlocked))
	assert.True(t, svc.NodeVisible("exp1"))
	assert.False(t, svc.NodeVisible("sketch"))

	svc.SetSearch("SUPPLY")
	require.NoError(t, svc.SelectNode("heat"))
	svc.SetZoom(150)
	svc.ResetFilters()

	v := svc.View()
	assert.True(t, v.Filter.IsDefault())
	assert.False(t, v.HasSelection())
	assert.Equal(t, 150, v.Zoom, "zoom survives a filter reset")
}

func TestRoadmapService_ActivePathFollowsStatuses(t *testing.T) {
	fb := newFake(t)
	fb.Fail(testutil.OpInit, http.StatusInternalServerError)
	svc, _ := newSession(t, fb)
	require.NoError(t, svc.SelectProject(context.Background(), 7))

	svc.SetMode(view.ModePathToBlocking)
	// exp1 is blocked by default: its prerequisites are on the path.
	for _, id := range []string{"exp1", "gpar", "workproj", "urban", "geo", "sketch"} {
		assert.True(t, svc.NodeVisible(id), id)
	}
	assert.False(t, svc.NodeVisible("registry"))
	assert.False(t, svc.NodeVisible("mchs"))
}

func TestRoadmapService_SetZoomClamps(t *testing.T) {
	svc, _ := newSession(t, newFake(t))

	assert.Equal(t, MinZoom, svc.SetZoom(5))
	assert.Equal(t, MaxZoom, svc.SetZoom(900))
	assert.Equal(t, 120, svc.SetZoom(120))
	assert.Equal(t, 120, svc.View().Zoom)
}

func TestRoadmapService_SelectProjectClearsSelection(t *testing.T) {
	fb := newFake(t)
	svc, _ := newSession(t, fb)
	require.NoError(t, svc.SelectNode("geo"))

	require.NoError(t, svc.SelectProject(context.Background(), 3))

	assert.False(t, svc.View().HasSelection())
	assert.Equal(t, int64(3), svc.Snapshot().ProjectID)
}

func TestRoadmapService_EnsureRecordForSelection(t *testing.T) {
	fb := newFake(t)
	fb.Fail(testutil.OpInit, http.StatusInternalServerError)
	svc, _ := newSession(t, fb)
	ctx := context.Background()

	_, err := svc.EnsureRecord(ctx)
	assert.ErrorIs(t, err, ErrNoSelection)

	require.NoError(t, svc.SelectNode("geo"))
	_, err = svc.EnsureRecord(ctx)
	assert.ErrorIs(t, err, ErrNoProject)

	require.NoError(t, svc.SelectProject(ctx, 7))
	require.NoError(t, svc.SelectNode("geo"))
	outcome, err := svc.EnsureRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, EnsureCreated, outcome)

	outcome, err = svc.EnsureRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, EnsureExisting, outcome)
	assert.Equal(t, 1, fb.Calls(testutil.OpCreate))
	assert.Equal(t, domain.StatusNotStarted, svc.EffectiveStatus("geo"))
}

func TestRoadmapService_LayoutLifecycle(t *testing.T) {
	svc, _ := newSession(t, newFake(t))
	ctx := context.Background()

	assert.Empty(t, svc.ReloadLayout(ctx))
	p, err := svc.Position("geo")
	require.NoError(t, err)
	assert.Equal(t, domain.Point{X: 1230, Y: 327}, p)

	require.NoError(t, svc.SaveLayout(ctx, "geo", domain.Point{X: 10, Y: 20}))
	p, err = svc.Position("geo")
	require.NoError(t, err)
	assert.Equal(t, domain.Point{X: 10, Y: 20}, p)
	assert.Equal(t, domain.LayoutOverrides{"geo": {X: 10, Y: 20}}, svc.ReloadLayout(ctx))

	require.NoError(t, svc.ResetLayout(ctx))
	p, err = svc.Position("geo")
	require.NoError(t, err)
	assert.Equal(t, domain.Point{X: 1230, Y: 327}, p)
}

func TestRoadmapService_FilesForNode(t *testing.T) {
	fb := newFake(t)
	rec := testutil.NewTestRecord(7, "sketch.itc", domain.ExecCompleted, testutil.WithFilesCount(1))
	fb.AddRecord(rec)
	fb.AddFile(rec.ID, domain.FileInfo{ID: 9, FileName: "conditions.pdf", MimeType: "application/pdf"})
	svc, _ := newSession(t, fb)
	ctx := context.Background()
	require.NoError(t, svc.SelectProject(ctx, 7))

	files, err := svc.Files(ctx, "tu")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "conditions.pdf", files[0].FileName)

	files, err = svc.Files(ctx, "geo")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRoadmapService_Projects(t *testing.T) {
	fb := newFake(t)
	fb.AddProject(testutil.NewTestProject(1, "Riverside tower", "RT-1"))
	fb.AddProject(testutil.NewTestProject(2, "School No. 4", ""))
	svc, _ := newSession(t, fb)

	projects, err := svc.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "RT-1", projects[0].DisplayID())
	assert.Equal(t, "#2", projects[1].DisplayID())

	fb.Fail(testutil.OpProjects, http.StatusInternalServerError)
	_, err = svc.Projects(context.Background())
	assert.Error(t, err)
}
