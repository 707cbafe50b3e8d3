package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/alexanderramin/roadmap/internal/traversal"
)

// FormatWhy renders a node explanation inside a bordered box. now anchors
// relative dates.
func FormatWhy(r *service.WhyReport, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", StatusPill(r.Node.Status), Dim(r.Node.ID))
	if r.SectionCode != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Section:"), r.SectionCode)
	}
	if r.Critical {
		b.WriteString(StyleRed.Render("On the critical path") + "\n")
	}

	b.WriteString("\n")
	if r.Record == nil {
		b.WriteString(Dim("No status record; the template default applies.") + "\n")
	} else {
		writeRecord(&b, r.Record, now)
	}

	if len(r.Blockers) > 0 {
		b.WriteString("\n" + StyleHeader.Render("Waiting on") + "\n")
		for _, n := range r.Blockers {
			fmt.Fprintf(&b, "  %s %s\n", StatusPill(n.Status), n.Title)
		}
	}
	if len(r.Unblocks) > 0 {
		b.WriteString("\n" + StyleHeader.Render("Unblocks") + "\n")
		for _, n := range r.Unblocks {
			fmt.Fprintf(&b, "  %s %s\n", StatusGlyph(n.Status), n.Title)
		}
	}
	if len(r.Path) > 0 {
		done := 0
		for _, n := range r.Path {
			if n.Status.Resolved() {
				done++
			}
		}
		fmt.Fprintf(&b, "\n%s %d of %d upstream steps done\n", Dim("Path:"), done, len(r.Path))
	}

	b.WriteString("\n" + StyleFg.Render(r.Summary))
	return RenderBox(r.Node.Title, b.String())
}

func writeRecord(b *strings.Builder, rec *domain.StatusRecord, now time.Time) {
	fmt.Fprintf(b, "%s %s\n", Dim("Backend status:"), rec.ExecutionStatus)
	if rec.ExecutorCompany != "" || rec.ExecutorAuthority != "" {
		who := strings.TrimSpace(strings.Join([]string{rec.ExecutorCompany, rec.ExecutorAuthority}, " / "))
		who = strings.Trim(who, "/ ")
		fmt.Fprintf(b, "%s %s\n", Dim("Executor:"), who)
	}
	if rec.RequestDate != nil {
		fmt.Fprintf(b, "%s %s\n", Dim("Requested:"), rec.RequestDate.Format("2006-01-02"))
	}
	if rec.DueDate != nil {
		fmt.Fprintf(b, "%s %s\n", Dim("Due:"), DueDate(*rec.DueDate, now))
	}
	if rec.ValidUntilDate != nil {
		fmt.Fprintf(b, "%s %s %s\n", Dim("Valid until:"), rec.ValidUntilDate.Format("2006-01-02"), DocBadge(rec.DocumentStatus))
	}
	if rec.FilesCount > 0 {
		fmt.Fprintf(b, "%s %d\n", Dim("Files:"), rec.FilesCount)
	}
	if rec.Note != "" {
		fmt.Fprintf(b, "%s %s\n", Dim("Note:"), rec.Note)
	}
}

// FormatPath lists the dependency path through the node of report in
// template order: its prerequisites, the node itself, then every node it
// holds up.
func FormatPath(r service.RoadmapReader, report *service.WhyReport) string {
	upstream := make(map[string]bool, len(report.Path))
	for _, n := range report.Path {
		upstream[n.ID] = true
	}
	downstream := traversal.DescendantClosure(r.Template(), report.Node.ID)

	headers := []string{"", "ROLE", "NODE", "STATUS", "TITLE"}
	var rows [][]string
	for _, id := range r.Template().NodeIDs() {
		var role string
		switch {
		case id == report.Node.ID:
			role = StylePurple.Render("selected")
		case upstream[id]:
			role = StyleBlue.Render("upstream")
		case downstream.Has(id):
			role = Dim("downstream")
		default:
			continue
		}
		n, _ := r.Template().Node(id)
		rows = append(rows, []string{TierMarker(r.NodeTier(id)), role, id, StatusPill(r.EffectiveStatus(id)), n.Title()})
	}

	var b strings.Builder
	b.WriteString(Header("Path: "+report.Node.Title) + "\n")
	b.WriteString(RenderTable(headers, rows))
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d upstream, %d downstream", len(report.Path), report.Downstream)))
	b.WriteString(report.Summary + "\n")
	return b.String()
}
