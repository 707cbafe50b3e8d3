package template

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// ErrInvalidTemplate is returned by New when the template fails validation.
var ErrInvalidTemplate = errors.New("invalid roadmap template")

// Template is the immutable roadmap graph shared by every project. It is safe
// for concurrent use; accessors return copies.
type Template struct {
	nodes    []domain.Node
	edges    []domain.Edge
	byID     map[string]int
	edgeByID map[string]int
	incoming map[string][]int
	outgoing map[string][]int

	sections  map[string]string
	bySection map[string]string
	critical  map[string]bool
}

// Definition is the raw material a Template is built from.
type Definition struct {
	Nodes    []domain.Node
	Edges    []domain.Edge
	Sections map[string]string
	Critical []string
}

// New validates def and builds a Template. Edge ids are assigned as "e<index>"
// when the definition leaves them empty.
func New(def Definition) (*Template, error) {
	edges := make([]domain.Edge, len(def.Edges))
	for i, e := range def.Edges {
		if e.ID == "" {
			e.ID = fmt.Sprintf("e%d", i)
		}
		edges[i] = e
	}
	def.Edges = edges

	if errs := Validate(def); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, errors.Join(errs...))
	}

	t := &Template{
		nodes:     append([]domain.Node(nil), def.Nodes...),
		edges:     edges,
		byID:      make(map[string]int, len(def.Nodes)),
		edgeByID:  make(map[string]int, len(edges)),
		incoming:  make(map[string][]int),
		outgoing:  make(map[string][]int),
		sections:  make(map[string]string, len(def.Sections)),
		bySection: make(map[string]string, len(def.Sections)),
		critical:  make(map[string]bool, len(def.Critical)),
	}
	for i := range t.nodes {
		if t.nodes[i].Kind == "" {
			t.nodes[i].Kind = domain.NodeMilestone
		}
		if t.nodes[i].DefaultStatus == "" {
			t.nodes[i].DefaultStatus = domain.StatusNotStarted
		}
		t.byID[t.nodes[i].ID] = i
	}
	for i, e := range edges {
		t.edgeByID[e.ID] = i
		t.incoming[e.To] = append(t.incoming[e.To], i)
		t.outgoing[e.From] = append(t.outgoing[e.From], i)
	}
	for id, code := range def.Sections {
		t.sections[id] = code
		t.bySection[code] = id
	}
	for _, id := range def.Critical {
		t.critical[id] = true
	}
	return t, nil
}

// MustNew is like New but panics on an invalid definition. It is meant for
// templates compiled into the binary.
func MustNew(def Definition) *Template {
	t, err := New(def)
	if err != nil {
		panic(err)
	}
	return t
}

// Nodes returns the template nodes in declaration order.
func (t *Template) Nodes() []domain.Node {
	return append([]domain.Node(nil), t.nodes...)
}

// Edges returns the template edges in declaration order.
func (t *Template) Edges() []domain.Edge {
	return append([]domain.Edge(nil), t.edges...)
}

// NodeIDs returns the node ids in declaration order.
func (t *Template) NodeIDs() []string {
	ids := make([]string, len(t.nodes))
	for i, n := range t.nodes {
		ids[i] = n.ID
	}
	return ids
}

func (t *Template) Node(id string) (domain.Node, bool) {
	i, ok := t.byID[id]
	if !ok {
		return domain.Node{}, false
	}
	return t.nodes[i], true
}

func (t *Template) HasNode(id string) bool {
	_, ok := t.byID[id]
	return ok
}

func (t *Template) Edge(id string) (domain.Edge, bool) {
	i, ok := t.edgeByID[id]
	if !ok {
		return domain.Edge{}, false
	}
	return t.edges[i], true
}

// IsTitle reports whether id is a group header node.
func (t *Template) IsTitle(id string) bool {
	n, ok := t.Node(id)
	return ok && n.IsTitle()
}

// Predecessors returns the direct prerequisites of id in edge order.
func (t *Template) Predecessors(id string) []string {
	idx := t.incoming[id]
	out := make([]string, len(idx))
	for i, e := range idx {
		out[i] = t.edges[e].From
	}
	return out
}

// Successors returns the nodes that directly depend on id in edge order.
func (t *Template) Successors(id string) []string {
	idx := t.outgoing[id]
	out := make([]string, len(idx))
	for i, e := range idx {
		out[i] = t.edges[e].To
	}
	return out
}

// SectionCode returns the backend section code mapped to a node.
func (t *Template) SectionCode(nodeID string) (string, bool) {
	code, ok := t.sections[nodeID]
	return code, ok
}

// NodeForSection is the reverse of SectionCode.
func (t *Template) NodeForSection(code string) (string, bool) {
	id, ok := t.bySection[code]
	return id, ok
}

// SectionCodes returns every mapped section code, sorted.
func (t *Template) SectionCodes() []string {
	codes := make([]string, 0, len(t.bySection))
	for code := range t.bySection {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// IsCritical reports whether id is on the curated critical path.
func (t *Template) IsCritical(id string) bool {
	return t.critical[id]
}

// CriticalPath returns the curated critical path in declaration order.
func (t *Template) CriticalPath() []string {
	var ids []string
	for _, n := range t.nodes {
		if t.critical[n.ID] {
			ids = append(ids, n.ID)
		}
	}
	return ids
}
