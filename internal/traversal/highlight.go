package traversal

// Tier is the emphasis level of a node or edge in the selection highlight.
type Tier int

const (
	// TierNone applies when nothing is selected.
	TierNone Tier = iota
	TierDim
	TierInPath
	TierPrimary
)

func (t Tier) String() string {
	switch t {
	case TierDim:
		return "dim"
	case TierInPath:
		return "in_path"
	case TierPrimary:
		return "primary"
	default:
		return "none"
	}
}

// Highlight is the two-tier emphasis computed for a selected node.
type Highlight struct {
	Selected string
	Nodes    Set
	nodeTier map[string]Tier
	edgeTier map[string]Tier
}

// SelectionHighlight computes the ancestor closure of the selected node.
// The selected node and every edge touching it are Primary; other closure
// members and edges with both ends in the closure are InPath; the rest is Dim.
func SelectionHighlight(g Graph, id string) Highlight {
	closure := AncestorClosure(g, id)
	h := Highlight{
		Selected: id,
		Nodes:    closure,
		nodeTier: make(map[string]Tier),
		edgeTier: make(map[string]Tier),
	}
	for _, n := range g.NodeIDs() {
		switch {
		case n == id:
			h.nodeTier[n] = TierPrimary
		case closure.Has(n):
			h.nodeTier[n] = TierInPath
		default:
			h.nodeTier[n] = TierDim
		}
	}
	for _, e := range g.Edges() {
		switch {
		case e.From == id || e.To == id:
			h.edgeTier[e.ID] = TierPrimary
		case closure.Has(e.From) && closure.Has(e.To):
			h.edgeTier[e.ID] = TierInPath
		default:
			h.edgeTier[e.ID] = TierDim
		}
	}
	return h
}

// NodeTier returns the tier of a node; unknown ids are Dim.
func (h Highlight) NodeTier(id string) Tier {
	if h.nodeTier == nil {
		return TierNone
	}
	if t, ok := h.nodeTier[id]; ok {
		return t
	}
	return TierDim
}

// EdgeTier returns the tier of an edge; unknown ids are Dim.
func (h Highlight) EdgeTier(id string) Tier {
	if h.edgeTier == nil {
		return TierNone
	}
	if t, ok := h.edgeTier[id]; ok {
		return t
	}
	return TierDim
}

// PrimaryEdges returns the ids of Primary edges in template order.
func (h Highlight) PrimaryEdges(g Graph) []string {
	var out []string
	for _, e := range g.Edges() {
		if h.edgeTier[e.ID] == TierPrimary {
			out = append(out, e.ID)
		}
	}
	return out
}
