package service

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/template"
	"github.com/alexanderramin/roadmap/internal/traversal"
)

// NodeStatus pairs a node with its effective status.
type NodeStatus struct {
	ID     string
	Title  string
	Status domain.Status
}

// WhyReport explains where a node stands: what it waits on and what it
// holds up.
type WhyReport struct {
	Node        NodeStatus
	SectionCode string
	Record      *domain.StatusRecord
	Critical    bool
	// Blockers are the direct prerequisites that are not done, in template
	// edge order.
	Blockers []NodeStatus
	// Path is every transitive prerequisite, in template order.
	Path []NodeStatus
	// Unblocks are the direct successors.
	Unblocks []NodeStatus
	// Downstream counts every transitive successor.
	Downstream int
	Summary    string
}

func buildWhyReport(tpl *template.Template, status traversal.StatusFunc, records map[string]domain.StatusRecord, nodeID string) *WhyReport {
	nodeStatus := func(id string) NodeStatus {
		n, _ := tpl.Node(id)
		return NodeStatus{ID: id, Title: n.Title(), Status: status(id)}
	}

	r := &WhyReport{
		Node:     nodeStatus(nodeID),
		Critical: tpl.IsCritical(nodeID),
	}
	if code, ok := tpl.SectionCode(nodeID); ok {
		r.SectionCode = code
		if rec, found := records[code]; found {
			r.Record = &rec
		}
	}
	for _, id := range traversal.BlockersOf(tpl, status, nodeID) {
		r.Blockers = append(r.Blockers, nodeStatus(id))
	}
	ancestors := traversal.AncestorClosure(tpl, nodeID)
	for _, id := range ancestors.Ordered(tpl.NodeIDs()) {
		if id != nodeID {
			r.Path = append(r.Path, nodeStatus(id))
		}
	}
	for _, id := range tpl.Successors(nodeID) {
		r.Unblocks = append(r.Unblocks, nodeStatus(id))
	}
	r.Downstream = len(traversal.DescendantClosure(tpl, nodeID)) - 1
	r.Summary = summarize(r)
	return r
}

func summarize(r *WhyReport) string {
	title := r.Node.Title
	switch {
	case r.Node.Status == domain.StatusDone:
		return fmt.Sprintf("%s is done.", title)
	case len(r.Blockers) == 0 && r.Node.Status == domain.StatusBlocked:
		return fmt.Sprintf("%s is marked blocking, but all of its prerequisites are done.", title)
	case len(r.Blockers) == 0:
		return fmt.Sprintf("%s is %s; nothing upstream holds it.", title, strings.ToLower(r.Node.Status.Label()))
	}
	parts := make([]string, len(r.Blockers))
	for i, b := range r.Blockers {
		parts[i] = fmt.Sprintf("%s (%s)", b.Title, strings.ToLower(b.Status.Label()))
	}
	noun := "prerequisites"
	if len(parts) == 1 {
		noun = "prerequisite"
	}
	s := fmt.Sprintf("%s is waiting on %d %s: %s.", title, len(parts), noun, strings.Join(parts, ", "))
	if r.Downstream > 0 {
		s += fmt.Sprintf(" %d later step(s) depend on it.", r.Downstream)
	}
	return s
}
