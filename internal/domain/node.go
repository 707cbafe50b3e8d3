package domain

import "strings"

// Box is a node's default placement in template coordinates. X and Y are
// the top-left corner.
type Box struct {
	X, Y, W, H float64
}

// Center returns the default render position of the box.
func (b Box) Center() Point {
	return Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Point is a render position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one milestone of the roadmap template.
type Node struct {
	ID            string
	Label         string
	Stage         string
	Role          string
	Kind          NodeKind
	DefaultStatus Status
	Box           Box
}

// IsTitle reports whether the node is a group header.
func (n Node) IsTitle() bool {
	return n.Kind == NodeTitle
}

// Title returns the label on one line, or the id for a blank label.
func (n Node) Title() string {
	if title := strings.Join(strings.Fields(n.Label), " "); title != "" {
		return title
	}
	return n.ID
}

// Edge is a directed prerequisite relationship: From must finish before To.
type Edge struct {
	ID   string
	From string
	To   string
}

// LayoutOverrides maps node ids to manually dragged positions.
type LayoutOverrides map[string]Point
