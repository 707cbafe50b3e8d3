package view

import (
	"testing"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/template"
	"github.com/alexanderramin/roadmap/internal/traversal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults(tpl *template.Template) traversal.StatusFunc {
	return func(id string) domain.Status {
		n, _ := tpl.Node(id)
		return n.DefaultStatus
	}
}

// groupedTemplate is A->B->C, A->D, plus a title node T.
func groupedTemplate(t *testing.T) *template.Template {
	t.Helper()
	tpl, err := template.New(template.Definition{
		Nodes: []domain.Node{
			{ID: "T", Label: "Permits", Kind: domain.NodeTitle},
			{ID: "A", Label: "Sketch design", DefaultStatus: domain.StatusDone},
			{ID: "B", Label: "Urban planning", DefaultStatus: domain.StatusBlocked},
			{ID: "C", Label: "Registry", DefaultStatus: domain.StatusNotStarted},
			{ID: "D", Label: "Geology surveys", DefaultStatus: domain.StatusInProgress},
		},
		Edges: []domain.Edge{
			{From: "A", To: "B"},
			{From: "B", To: "C"},
			{From: "A", To: "D"},
		},
		Critical: []string{"A", "B", "C"},
	})
	require.NoError(t, err)
	return tpl
}

func TestCompose_DefaultShowsEverything(t *testing.T) {
	tpl := template.Roadmap()
	vis := Compose(tpl, defaults(tpl), DefaultFilter())
	assert.Len(t, vis.Nodes, len(tpl.NodeIDs()))
	assert.Len(t, vis.Edges, len(tpl.Edges()))
}

func TestCompose_SearchIsCaseInsensitiveAndAppliesToTitles(t *testing.T) {
	tpl := groupedTemplate(t)
	vis := Compose(tpl, defaults(tpl), Filter{Search: "  URBAN ", Status: StatusAny, Mode: ModeAll})
	assert.Equal(t, []string{"B"}, vis.Nodes.Sorted())

	vis = Compose(tpl, defaults(tpl), Filter{Search: "permits"})
	assert.Equal(t, []string{"T"}, vis.Nodes.Sorted())
}

func TestCompose_StatusFilterExemptsTitles(t *testing.T) {
	tpl := groupedTemplate(t)
	vis := Compose(tpl, defaults(tpl), Filter{Status: StatusFilter(domain.StatusDone), Mode: ModeAll})
	assert.Equal(t, []string{"A", "T"}, vis.Nodes.Sorted())
	assert.Empty(t, vis.Edges)
}

func TestCompose_CriticalMode(t *testing.T) {
	tpl := groupedTemplate(t)
	vis := Compose(tpl, defaults(tpl), Filter{Mode: ModeCritical})
	assert.Equal(t, []string{"A", "B", "C", "T"}, vis.Nodes.Sorted())
	assert.Equal(t, []string{"e0", "e1"}, vis.Edges.Sorted())
}

func TestCompose_BlockingMode(t *testing.T) {
	tpl := groupedTemplate(t)
	vis := Compose(tpl, defaults(tpl), Filter{Mode: ModeBlocking})
	assert.Equal(t, []string{"B", "T"}, vis.Nodes.Sorted())
}

func TestCompose_ClosureModes(t *testing.T) {
	tpl := groupedTemplate(t)
	status := defaults(tpl)

	vis := Compose(tpl, status, Filter{Mode: ModeActivePath})
	assert.Equal(t, []string{"A", "B", "D"}, vis.Nodes.Sorted())
	assert.Equal(t, []string{"e0", "e2"}, vis.Edges.Sorted())

	vis = Compose(tpl, status, Filter{Mode: ModePathToBlocking})
	assert.Equal(t, []string{"A", "B"}, vis.Nodes.Sorted())
	assert.Equal(t, []string{"e0"}, vis.Edges.Sorted())
}

func TestCompose_PathToBlockingEmptyWhenNothingBlocked(t *testing.T) {
	tpl := groupedTemplate(t)
	status := func(string) domain.Status { return domain.StatusDone }
	vis := Compose(tpl, status, Filter{Mode: ModePathToBlocking})
	assert.Empty(t, vis.Nodes)
}

func TestCompose_OnlyModes(t *testing.T) {
	tpl := groupedTemplate(t)
	status := defaults(tpl)
	cases := map[Mode][]string{
		ModeDoneOnly:       {"A", "T"},
		ModeInProgressOnly: {"D", "T"},
		ModeApprovalOnly:   {"T"},
		ModeNotStartedOnly: {"C", "T"},
	}
	for mode, want := range cases {
		t.Run(string(mode), func(t *testing.T) {
			vis := Compose(tpl, status, Filter{Mode: mode})
			assert.Equal(t, want, vis.Nodes.Sorted())
		})
	}
}

func TestCompose_LayersIntersect(t *testing.T) {
	tpl := groupedTemplate(t)
	status := defaults(tpl)

	vis := Compose(tpl, status, Filter{Search: "geology", Mode: ModeActivePath})
	assert.Equal(t, []string{"D"}, vis.Nodes.Sorted())

	vis = Compose(tpl, status, Filter{Status: StatusFilter(domain.StatusDone), Mode: ModeActivePath})
	assert.Equal(t, []string{"A"}, vis.Nodes.Sorted())

	vis = Compose(tpl, status, Filter{Status: StatusFilter(domain.StatusDone), Mode: ModeNotStartedOnly})
	assert.Equal(t, []string{"T"}, vis.Nodes.Sorted())
}

func TestCompose_EdgeNeedsBothEndpoints(t *testing.T) {
	tpl := template.Roadmap()
	vis := Compose(tpl, defaults(tpl), Filter{Mode: ModeCritical})
	for _, e := range tpl.Edges() {
		want := vis.NodeVisible(e.From) && vis.NodeVisible(e.To)
		assert.Equal(t, want, vis.EdgeVisible(e.ID), "edge %s %s->%s", e.ID, e.From, e.To)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("path_to_blocking")
	require.NoError(t, err)
	assert.Equal(t, ModePathToBlocking, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeAll, m)

	_, err = ParseMode("shortest")
	require.Error(t, err)
}

func TestParseStatusFilter(t *testing.T) {
	f, err := ParseStatusFilter("any")
	require.NoError(t, err)
	assert.Equal(t, StatusAny, f)

	f, err = ParseStatusFilter("blocked")
	require.NoError(t, err)
	assert.True(t, f.Matches(domain.StatusBlocked))
	assert.False(t, f.Matches(domain.StatusDone))

	_, err = ParseStatusFilter("completed")
	require.Error(t, err)
}

func TestFilter_IsDefault(t *testing.T) {
	assert.True(t, DefaultFilter().IsDefault())
	assert.True(t, Filter{}.IsDefault())
	assert.False(t, Filter{Search: "x"}.IsDefault())
	assert.False(t, Filter{Mode: ModeCritical}.IsDefault())
}
