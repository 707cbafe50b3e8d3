package traversal

import (
	"testing"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/template"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapGraph is an unvalidated adjacency list; it may contain cycles.
type mapGraph struct {
	ids    []string
	edges  []domain.Edge
	titles map[string]bool
	calls  map[string]int
}

func newMapGraph(ids []string, pairs ...[2]string) *mapGraph {
	g := &mapGraph{ids: ids, titles: map[string]bool{}, calls: map[string]int{}}
	for i, p := range pairs {
		g.edges = append(g.edges, domain.Edge{ID: "e" + string(rune('0'+i)), From: p[0], To: p[1]})
	}
	return g
}

func (g *mapGraph) NodeIDs() []string    { return g.ids }
func (g *mapGraph) Edges() []domain.Edge { return g.edges }
func (g *mapGraph) IsTitle(id string) bool {
	return g.titles[id]
}

func (g *mapGraph) Predecessors(id string) []string {
	g.calls[id]++
	var out []string
	for _, e := range g.edges {
		if e.To == id {
			out = append(out, e.From)
		}
	}
	return out
}

func (g *mapGraph) Successors(id string) []string {
	var out []string
	for _, e := range g.edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}

// exampleGraph is A->B->C and A->D.
func exampleGraph(t *testing.T) *template.Template {
	t.Helper()
	tpl, err := template.New(template.Definition{
		Nodes: []domain.Node{
			{ID: "A", Label: "A"},
			{ID: "B", Label: "B"},
			{ID: "C", Label: "C"},
			{ID: "D", Label: "D"},
		},
		Edges: []domain.Edge{
			{From: "A", To: "B"},
			{From: "B", To: "C"},
			{From: "A", To: "D"},
		},
	})
	require.NoError(t, err)
	return tpl
}

func statuses(def domain.Status, overrides map[string]domain.Status) StatusFunc {
	return func(id string) domain.Status {
		if s, ok := overrides[id]; ok {
			return s
		}
		return def
	}
}

func TestAncestorClosure_Example(t *testing.T) {
	g := exampleGraph(t)
	assert.Equal(t, []string{"A", "B", "C"}, AncestorClosure(g, "C").Sorted())
	assert.Equal(t, []string{"A", "D"}, AncestorClosure(g, "D").Sorted())
	assert.Equal(t, []string{"A"}, AncestorClosure(g, "A").Sorted())
}

func TestAncestorClosure_UnknownNodeIsSingleton(t *testing.T) {
	g := exampleGraph(t)
	assert.Equal(t, []string{"ghost"}, AncestorClosure(g, "ghost").Sorted())
}

func TestAncestorClosure_ContainsSelfAndIsClosed(t *testing.T) {
	g := template.Roadmap()
	for _, id := range g.NodeIDs() {
		closure := AncestorClosure(g, id)
		require.True(t, closure.Has(id), "closure of %q must contain itself", id)
		for member := range closure {
			for _, p := range g.Predecessors(member) {
				assert.True(t, closure.Has(p), "closure of %q misses %q (prerequisite of %q)", id, p, member)
			}
		}
	}
}

func TestAncestorClosure_RoadmapRegistry(t *testing.T) {
	g := template.Roadmap()
	got := AncestorClosure(g, "registry").Sorted()
	// genplan, ppr and act are siblings of gpar, not prerequisites.
	want := []string{"exp1", "gas", "geo", "gpar", "heat", "phone", "power", "registry", "sketch", "tu", "urban", "water", "workproj"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("registry closure mismatch (-want +got):\n%s", diff)
	}
}

func TestAncestorClosure_ExpandsEachNodeOnce(t *testing.T) {
	// Diamond: every path to D revisits A.
	g := newMapGraph([]string{"A", "B", "C", "D"},
		[2]string{"A", "B"}, [2]string{"A", "C"}, [2]string{"B", "D"}, [2]string{"C", "D"})
	closure := AncestorClosure(g, "D")
	assert.Equal(t, []string{"A", "B", "C", "D"}, closure.Sorted())
	for id, n := range g.calls {
		assert.Equal(t, 1, n, "node %q expanded %d times", id, n)
	}
}

func TestAncestorClosure_TerminatesOnCycle(t *testing.T) {
	g := newMapGraph([]string{"A", "B", "C"},
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "A"})
	closure := AncestorClosure(g, "B")
	assert.Equal(t, []string{"A", "B", "C"}, closure.Sorted())
	for id, n := range g.calls {
		assert.Equal(t, 1, n, "node %q expanded %d times", id, n)
	}
}

func TestDescendantClosure(t *testing.T) {
	g := exampleGraph(t)
	assert.Equal(t, []string{"B", "C"}, DescendantClosure(g, "B").Sorted())
	assert.Equal(t, []string{"A", "B", "C", "D"}, DescendantClosure(g, "A").Sorted())
}

func TestActiveAndBlockingClosure_Example(t *testing.T) {
	g := exampleGraph(t)
	status := statuses(domain.StatusNotStarted, map[string]domain.Status{
		"D": domain.StatusInProgress,
		"A": domain.StatusDone,
	})

	assert.Equal(t, []string{"A", "D"}, ActiveWorkClosure(g, status).Sorted())
	assert.Empty(t, BlockingClosure(g, status))
}

func TestActiveWorkClosure_SeedsApprovalAndBlocked(t *testing.T) {
	g := exampleGraph(t)
	status := statuses(domain.StatusNotStarted, map[string]domain.Status{
		"B": domain.StatusApproval,
		"D": domain.StatusBlocked,
	})
	assert.Equal(t, []string{"A", "B", "D"}, ActiveWorkClosure(g, status).Sorted())
	assert.Equal(t, []string{"A", "D"}, BlockingClosure(g, status).Sorted())
}

func TestClosures_SkipTitleSeeds(t *testing.T) {
	g := newMapGraph([]string{"T", "A", "B"}, [2]string{"A", "B"})
	g.titles["T"] = true
	status := statuses(domain.StatusBlocked, nil)
	assert.Equal(t, []string{"A", "B"}, BlockingClosure(g, status).Sorted())
}

func TestClosures_RoadmapDefaults(t *testing.T) {
	g := template.Roadmap()
	status := func(id string) domain.Status {
		n, _ := g.Node(id)
		return n.DefaultStatus
	}
	blocking := BlockingClosure(g, status)
	assert.Equal(t, AncestorClosure(g, "exp1").Sorted(), blocking.Sorted())
	assert.False(t, blocking.Has("registry"))
}

func TestBlockersOf(t *testing.T) {
	g := template.Roadmap()
	status := statuses(domain.StatusDone, map[string]domain.Status{
		"heat":  domain.StatusInProgress,
		"gas":   domain.StatusApproval,
		"phone": domain.StatusBlocked,
	})
	assert.Equal(t, []string{"heat", "gas", "phone"}, BlockersOf(g, status, "urban"))
	assert.Empty(t, BlockersOf(g, status, "sketch"))
}

func TestBlockersOf_SubsetOfPredecessorsExcludingDone(t *testing.T) {
	g := template.Roadmap()
	status := func(id string) domain.Status {
		n, _ := g.Node(id)
		return n.DefaultStatus
	}
	for _, id := range g.NodeIDs() {
		preds := NewSet(g.Predecessors(id)...)
		for _, b := range BlockersOf(g, status, id) {
			assert.True(t, preds.Has(b), "%q is not a direct predecessor of %q", b, id)
			assert.NotEqual(t, domain.StatusDone, status(b))
		}
	}
}

func TestBlockersOf_OnlyOneHop(t *testing.T) {
	g := exampleGraph(t)
	status := statuses(domain.StatusNotStarted, map[string]domain.Status{"B": domain.StatusDone})
	// A is unresolved but only reachable through B.
	assert.Empty(t, BlockersOf(g, status, "C"))
}

func TestSet_Ordered(t *testing.T) {
	s := NewSet("c", "a")
	assert.Equal(t, []string{"c", "a"}, s.Ordered([]string{"c", "b", "a"}))
}
