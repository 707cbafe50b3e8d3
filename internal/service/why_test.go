package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func explainIn(t *testing.T, fb *testutil.FakeBackend, nodeID string) *WhyReport {
	t.Helper()
	svc, _ := newSession(t, fb)
	require.NoError(t, svc.SelectProject(context.Background(), 7))
	r, err := svc.Explain(nodeID)
	require.NoError(t, err)
	return r
}

func TestExplain_BlockersInEdgeOrder(t *testing.T) {
	fb := newFake(t)
	fb.Fail(testutil.OpInit, http.StatusInternalServerError)
	fb.AddRecord(testutil.NewTestRecord(7, "sketch.itc.power", domain.ExecCompleted))

	r := explainIn(t, fb, "urban")

	ids := make([]string, len(r.Blockers))
	for i, b := range r.Blockers {
		ids[i] = b.ID
	}
	// tu, heat, water, gas and phone are open; power is done.
	assert.Equal(t, []string{"tu", "heat", "water", "gas", "phone"}, ids)
	assert.Equal(t, domain.StatusApproval, r.Blockers[0].Status)
	assert.Equal(t, "Engineering technical conditions (issued by the architecture authority)", r.Blockers[0].Title)

	assert.Equal(t, "sketch.urban", r.SectionCode)
	assert.Nil(t, r.Record)
	assert.True(t, r.Critical)
	assert.Equal(t, []NodeStatus{{ID: "workproj", Title: "Working project", Status: domain.StatusInProgress}}, r.Unblocks)
	assert.Contains(t, r.Summary, "waiting on 5 prerequisites")
	assert.Contains(t, r.Summary, "Heat supply (in progress)")
}

func TestExplain_PathAndDownstream(t *testing.T) {
	fb := newFake(t)
	fb.Fail(testutil.OpInit, http.StatusInternalServerError)

	r := explainIn(t, fb, "exp1")

	path := make([]string, len(r.Path))
	for i, p := range r.Path {
		path[i] = p.ID
	}
	assert.Equal(t, []string{"sketch", "tu", "geo", "heat", "power", "water", "gas", "phone", "urban", "workproj", "gpar"}, path)
	// registry, exp2, engproj, ext, int and their nine children.
	assert.Equal(t, 14, r.Downstream)
	assert.Equal(t, domain.StatusBlocked, r.Node.Status)
}

func TestExplain_Summaries(t *testing.T) {
	fb := newFake(t)
	fb.Fail(testutil.OpInit, http.StatusInternalServerError)
	fb.AddRecord(testutil.NewTestRecord(7, "sketch", domain.ExecCompleted))
	fb.AddRecord(testutil.NewTestRecord(7, "sketch.itc", domain.ExecCompleted))

	svc, _ := newSession(t, fb)
	require.NoError(t, svc.SelectProject(context.Background(), 7))

	r, err := svc.Explain("sketch")
	require.NoError(t, err)
	assert.Equal(t, "Sketch design is done.", r.Summary)
	require.NotNil(t, r.Record)
	assert.Equal(t, domain.ExecCompleted, r.Record.ExecutionStatus)

	r, err = svc.Explain("geo")
	require.NoError(t, err)
	assert.Equal(t, "Engineering-geological surveys is in progress; nothing upstream holds it.", r.Summary)
	assert.Empty(t, r.Blockers)
}
