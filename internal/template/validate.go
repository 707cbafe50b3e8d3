package template

import (
	"fmt"
	"sort"
)

// Validate checks a Definition for structural errors.
// Returns a slice of errors (empty if valid).
func Validate(def Definition) []error {
	var errs []error

	if len(def.Nodes) == 0 {
		errs = append(errs, fmt.Errorf("at least one node is required"))
	}

	nodeIDs := map[string]bool{}
	for i, n := range def.Nodes {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("node[%d]: id is required", i))
		}
		if n.Label == "" {
			errs = append(errs, fmt.Errorf("node[%d]: label is required", i))
		}
		if nodeIDs[n.ID] {
			errs = append(errs, fmt.Errorf("node[%d]: duplicate id %q", i, n.ID))
		}
		nodeIDs[n.ID] = true
	}

	edgeIDs := map[string]bool{}
	pairs := map[[2]string]bool{}
	for i, e := range def.Edges {
		if !nodeIDs[e.From] {
			errs = append(errs, fmt.Errorf("edge[%d]: unknown source %q", i, e.From))
		}
		if !nodeIDs[e.To] {
			errs = append(errs, fmt.Errorf("edge[%d]: unknown target %q", i, e.To))
		}
		if e.From == e.To {
			errs = append(errs, fmt.Errorf("edge[%d]: self-referential edge on %q", i, e.From))
		}
		if e.ID != "" && edgeIDs[e.ID] {
			errs = append(errs, fmt.Errorf("edge[%d]: duplicate id %q", i, e.ID))
		}
		edgeIDs[e.ID] = true
		key := [2]string{e.From, e.To}
		if pairs[key] {
			errs = append(errs, fmt.Errorf("edge[%d]: duplicate edge %s -> %s", i, e.From, e.To))
		}
		pairs[key] = true
	}

	codes := map[string]string{}
	for _, id := range sortedKeys(def.Sections) {
		code := def.Sections[id]
		if !nodeIDs[id] {
			errs = append(errs, fmt.Errorf("section %q: unknown node %q", code, id))
		}
		if code == "" {
			errs = append(errs, fmt.Errorf("node %q: empty section code", id))
			continue
		}
		if other, dup := codes[code]; dup {
			errs = append(errs, fmt.Errorf("section %q: mapped by both %q and %q", code, other, id))
		}
		codes[code] = id
	}

	for _, id := range def.Critical {
		if !nodeIDs[id] {
			errs = append(errs, fmt.Errorf("critical path: unknown node %q", id))
		}
	}

	if err := detectCycles(def); err != nil {
		errs = append(errs, err)
	}

	return errs
}

// detectCycles checks for circular dependencies using DFS.
func detectCycles(def Definition) error {
	deps := map[string][]string{}
	for _, e := range def.Edges {
		deps[e.To] = append(deps[e.To], e.From)
	}
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		visiting[id] = true
		for _, dep := range deps[id] {
			if visiting[dep] {
				return fmt.Errorf("cycle detected involving %q", dep)
			}
			if !visited[dep] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(visiting, id)
		visited[id] = true
		return nil
	}

	for _, n := range def.Nodes {
		if !visited[n.ID] {
			if err := visit(n.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
