package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/alexanderramin/roadmap/internal/template"
	"github.com/alexanderramin/roadmap/internal/view"
)

// FormatRoadmap renders the visible part of the roadmap as a section tree,
// preceded by the project, filter and load state. projectLabel may be empty.
func FormatRoadmap(r service.RoadmapReader, projectLabel string) string {
	var b strings.Builder
	b.WriteString(Header("Document roadmap"))
	b.WriteString("\n")
	b.WriteString(RoadmapStatusLine(r, projectLabel))
	b.WriteString("\n")
	if line := FilterLine(r.View()); line != "" {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	items := RoadmapTreeItems(r)
	if len(items) == 0 {
		b.WriteString(Dim("  No nodes match the current filters.") + "\n")
	} else {
		b.WriteString(RenderTree(items))
	}

	done, total := 0, 0
	for _, id := range r.Template().NodeIDs() {
		if r.Template().IsTitle(id) {
			continue
		}
		total++
		if r.EffectiveStatus(id) == domain.StatusDone {
			done++
		}
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s  %s\n",
		RenderCompletion(done, total, 20),
		Dim(fmt.Sprintf("%d of %d nodes shown", len(items), len(r.Template().NodeIDs()))),
		StyleRed.Render("*")+Dim(" critical path"))
	return b.String()
}

// RoadmapStatusLine summarizes the project, load state and zoom.
func RoadmapStatusLine(r service.RoadmapReader, projectLabel string) string {
	snap := r.Snapshot()
	var parts []string
	switch {
	case projectLabel != "":
		parts = append(parts, Bold(projectLabel))
	case snap.HasProject:
		parts = append(parts, Bold(fmt.Sprintf("Project #%d", snap.ProjectID)))
	default:
		parts = append(parts, Dim("No project selected"))
	}
	switch {
	case snap.Loading:
		parts = append(parts, StyleYellow.Render("loading statuses…"))
	case snap.Failed:
		parts = append(parts, StyleRed.Render("statuses unavailable, showing template defaults"))
	case snap.HasProject:
		parts = append(parts, Dim(fmt.Sprintf("%d status records", len(snap.Records))))
	}
	parts = append(parts, Dim(fmt.Sprintf("zoom %d%%", r.View().Zoom)))
	return strings.Join(parts, Dim(" · "))
}

// FilterLine describes the active filters and selection, or "" when
// nothing is filtered.
func FilterLine(v service.ViewState) string {
	var parts []string
	if v.Filter.Mode != "" && v.Filter.Mode != view.ModeAll {
		parts = append(parts, "mode: "+StylePurple.Render(v.Filter.Mode.Label()))
	}
	if v.Filter.Status != "" && v.Filter.Status != view.StatusAny {
		parts = append(parts, "status: "+StatusPill(domain.Status(v.Filter.Status)))
	}
	if q := strings.TrimSpace(v.Filter.Search); q != "" {
		parts = append(parts, "search: "+StyleBlue.Render(fmt.Sprintf("%q", q)))
	}
	if v.HasSelection() {
		parts = append(parts, "selected: "+StylePurple.Render(v.Selected))
	}
	return strings.Join(parts, Dim(" · "))
}

// RoadmapTreeItems orders visible nodes by section code, which lists every
// section right after its parent, and nests each under its nearest visible
// ancestor section.
func RoadmapTreeItems(r service.RoadmapReader) []TreeItem {
	tpl := r.Template()

	type entry struct {
		id, code, parent string
	}
	var entries []entry
	visible := map[string]bool{}
	for _, id := range tpl.NodeIDs() {
		if !r.NodeVisible(id) {
			continue
		}
		code, ok := tpl.SectionCode(id)
		if !ok {
			code = id
		}
		entries = append(entries, entry{id: id, code: code})
		visible[code] = true
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].code < entries[j].code })

	level := map[string]int{}
	for i := range entries {
		parent := template.ParentSection(entries[i].code)
		for parent != "" && !visible[parent] {
			parent = template.ParentSection(parent)
		}
		entries[i].parent = parent
		if parent != "" {
			level[entries[i].code] = level[parent] + 1
		}
	}

	items := make([]TreeItem, len(entries))
	for i, e := range entries {
		n, _ := tpl.Node(e.id)
		isLast := true
		for _, later := range entries[i+1:] {
			if later.parent == e.parent {
				isLast = false
				break
			}
		}
		items[i] = TreeItem{
			Title:    n.Title(),
			Level:    level[e.code],
			IsLast:   isLast,
			Status:   r.EffectiveStatus(e.id),
			Tier:     r.NodeTier(e.id),
			Critical: tpl.IsCritical(e.id),
			Detail:   e.id,
			ID:       e.id,
		}
	}
	return items
}
