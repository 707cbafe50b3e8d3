package template

import (
	"testing"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

func smallDef() Definition {
	return Definition{
		Nodes: []domain.Node{
			{ID: "a", Label: "A"},
			{ID: "b", Label: "B"},
			{ID: "c", Label: "C"},
		},
		Edges:    []domain.Edge{{From: "a", To: "b"}, {From: "b", To: "c"}},
		Sections: map[string]string{"a": "s", "b": "s.b"},
		Critical: []string{"a", "c"},
	}
}

func TestValidate_ValidDefinition(t *testing.T) {
	assert.Empty(t, Validate(smallDef()))
}

func TestValidate_RoadmapDefinition(t *testing.T) {
	errs := Validate(Definition{
		Nodes:    roadmapNodes,
		Edges:    roadmapEdges,
		Sections: sectionCodes,
		Critical: roadmapCritical,
	})
	assert.Empty(t, errStrings(errs))
}

func TestValidate_MissingFields(t *testing.T) {
	errs := Validate(Definition{})
	assert.Contains(t, errStrings(errs), "at least one node is required")

	def := smallDef()
	def.Nodes = append(def.Nodes, domain.Node{})
	msgs := errStrings(Validate(def))
	assert.Contains(t, msgs, "node[3]: id is required")
	assert.Contains(t, msgs, "node[3]: label is required")
}

func TestValidate_DuplicateNodeID(t *testing.T) {
	def := smallDef()
	def.Nodes = append(def.Nodes, domain.Node{ID: "a", Label: "again"})
	assert.Contains(t, errStrings(Validate(def)), `node[3]: duplicate id "a"`)
}

func TestValidate_UnknownEdgeEndpoints(t *testing.T) {
	def := smallDef()
	def.Edges = append(def.Edges, domain.Edge{From: "a", To: "zzz"}, domain.Edge{From: "yyy", To: "a"})
	msgs := errStrings(Validate(def))
	assert.Contains(t, msgs, `edge[2]: unknown target "zzz"`)
	assert.Contains(t, msgs, `edge[3]: unknown source "yyy"`)
}

func TestValidate_SelfAndDuplicateEdges(t *testing.T) {
	def := smallDef()
	def.Edges = append(def.Edges, domain.Edge{From: "a", To: "b"}, domain.Edge{From: "c", To: "c"})
	msgs := errStrings(Validate(def))
	assert.Contains(t, msgs, "edge[2]: duplicate edge a -> b")
	assert.Contains(t, msgs, `edge[3]: self-referential edge on "c"`)
}

func TestValidate_DetectsCycle(t *testing.T) {
	def := smallDef()
	def.Edges = append(def.Edges, domain.Edge{From: "c", To: "a"})
	errs := Validate(def)
	require.NotEmpty(t, errs)
	assert.Contains(t, errStrings(errs)[len(errs)-1], "cycle detected")
}

func TestValidate_SectionMappingMustBeInjective(t *testing.T) {
	def := smallDef()
	def.Sections = map[string]string{"a": "s", "b": "s"}
	assert.Contains(t, errStrings(Validate(def)), `section "s": mapped by both "a" and "b"`)
}

func TestValidate_SectionForUnknownNode(t *testing.T) {
	def := smallDef()
	def.Sections = map[string]string{"ghost": "g"}
	assert.Contains(t, errStrings(Validate(def)), `section "g": unknown node "ghost"`)
}

func TestValidate_UnknownCriticalNode(t *testing.T) {
	def := smallDef()
	def.Critical = []string{"nope"}
	assert.Contains(t, errStrings(Validate(def)), `critical path: unknown node "nope"`)
}
