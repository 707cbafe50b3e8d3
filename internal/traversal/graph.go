package traversal

import (
	"sort"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// Graph is the read-only view of the template the algorithms need.
type Graph interface {
	NodeIDs() []string
	Edges() []domain.Edge
	Predecessors(id string) []string
	Successors(id string) []string
	IsTitle(id string) bool
}

// StatusFunc resolves the effective status of a node.
type StatusFunc func(nodeID string) domain.Status

// Set is a set of node or edge ids.
type Set map[string]struct{}

// NewSet builds a set from ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Add(id string) {
	s[id] = struct{}{}
}

// Union adds every member of other to s.
func (s Set) Union(other Set) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Ordered returns the members of s in the order they appear in ids.
func (s Set) Ordered(ids []string) []string {
	out := make([]string, 0, len(s))
	for _, id := range ids {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
