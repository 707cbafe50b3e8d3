package view

import (
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/traversal"
)

// Source is the template surface the compositor reads.
type Source interface {
	traversal.Graph
	Node(id string) (domain.Node, bool)
	IsCritical(id string) bool
}

// Visibility is the render-time result of a Filter.
type Visibility struct {
	Nodes traversal.Set
	Edges traversal.Set
}

func (v Visibility) NodeVisible(id string) bool { return v.Nodes.Has(id) }
func (v Visibility) EdgeVisible(id string) bool { return v.Edges.Has(id) }

// Compose evaluates f against every node and edge. Search and status filter
// apply to all nodes; the mode further restricts the result. Title nodes are
// exempt from status-based predicates but not from search or the closure
// modes. An edge is visible when both endpoints are.
func Compose(src Source, status traversal.StatusFunc, f Filter) Visibility {
	query := strings.ToLower(strings.TrimSpace(f.Search))

	var closure traversal.Set
	switch f.Mode {
	case ModeActivePath:
		closure = traversal.ActiveWorkClosure(src, status)
	case ModePathToBlocking:
		closure = traversal.BlockingClosure(src, status)
	}

	vis := Visibility{Nodes: traversal.Set{}, Edges: traversal.Set{}}
	for _, id := range src.NodeIDs() {
		n, ok := src.Node(id)
		if !ok {
			continue
		}
		if nodePasses(src, n, status, query, f, closure) {
			vis.Nodes.Add(id)
		}
	}
	for _, e := range src.Edges() {
		if vis.Nodes.Has(e.From) && vis.Nodes.Has(e.To) {
			vis.Edges.Add(e.ID)
		}
	}
	return vis
}

func nodePasses(src Source, n domain.Node, status traversal.StatusFunc, query string, f Filter, closure traversal.Set) bool {
	if query != "" && !strings.Contains(strings.ToLower(n.Label), query) {
		return false
	}
	if closure != nil && !closure.Has(n.ID) {
		return false
	}
	if n.IsTitle() {
		return true
	}
	s := status(n.ID)
	if !f.Status.Matches(s) {
		return false
	}
	if f.Mode == ModeCritical {
		return src.IsCritical(n.ID)
	}
	if want, ok := modeStatus[f.Mode]; ok {
		return s == want
	}
	return true
}
