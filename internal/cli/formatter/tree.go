package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/traversal"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one roadmap node in a section tree.
type TreeItem struct {
	ID     string
	Title  string
	Level  int
	IsLast bool
	Status domain.Status
	Tier   traversal.Tier
	// Critical marks nodes on the critical path.
	Critical bool
	Detail   string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree with box-drawing connectors.
// Each line carries the status glyph, and dimmed tiers render muted. Detail
// badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		var title string
		switch {
		case item.Tier == traversal.TierDim:
			title = Dim(item.Title)
		case item.Tier == traversal.TierPrimary:
			title = StyleBold.Underline(true).Render(item.Title)
		case item.Status == domain.StatusInProgress:
			title = StyleYellowBold.Render(item.Title)
		case item.Status == domain.StatusDone:
			title = Dim(item.Title)
		default:
			title = StyleFg.Render(item.Title)
		}
		if item.Critical {
			title += StyleRed.Render(" *")
		}

		glyph := StatusStyle(item.Status).Render(StatusGlyph(item.Status) + " ")
		content := TierMarker(item.Tier) + " " + Dim(prefix) + glyph + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}
