package traversal

import "github.com/alexanderramin/roadmap/internal/domain"

// AncestorClosure returns id plus every transitive prerequisite of id.
// Each node is expanded at most once.
func AncestorClosure(g Graph, id string) Set {
	return walk(g.Predecessors, id)
}

// DescendantClosure returns id plus every node that transitively depends on it.
func DescendantClosure(g Graph, id string) Set {
	return walk(g.Successors, id)
}

func walk(next func(string) []string, id string) Set {
	seen := NewSet(id)
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range next(cur) {
			if seen.Has(nb) {
				continue
			}
			seen.Add(nb)
			stack = append(stack, nb)
		}
	}
	return seen
}

// closureOf unions the ancestor closures of every non-title node whose
// status satisfies match.
func closureOf(g Graph, status StatusFunc, match func(domain.Status) bool) Set {
	out := Set{}
	for _, id := range g.NodeIDs() {
		if g.IsTitle(id) || out.Has(id) || !match(status(id)) {
			continue
		}
		out.Union(AncestorClosure(g, id))
	}
	return out
}

// ActiveWorkClosure returns everything needed to understand the work in
// flight: nodes in progress, on approval, or blocked, and all their
// prerequisites.
func ActiveWorkClosure(g Graph, status StatusFunc) Set {
	return closureOf(g, status, domain.Status.Active)
}

// BlockingClosure returns the blocked nodes and all their prerequisites.
func BlockingClosure(g Graph, status StatusFunc) Set {
	return closureOf(g, status, func(s domain.Status) bool { return s == domain.StatusBlocked })
}

// BlockersOf returns the direct prerequisites of id that are not done, in
// edge order. Only one hop is considered.
func BlockersOf(g Graph, status StatusFunc, id string) []string {
	var out []string
	for _, p := range g.Predecessors(id) {
		if !status(p).Resolved() {
			out = append(out, p)
		}
	}
	return out
}
