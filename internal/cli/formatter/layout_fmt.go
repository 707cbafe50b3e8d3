package formatter

import "github.com/alexanderramin/roadmap/internal/domain"

// LayoutRow is one node's render position.
type LayoutRow struct {
	ID         string
	Title      string
	Position   domain.Point
	Overridden bool
}

// FormatLayout renders node positions, telling saved overrides apart from
// template defaults.
func FormatLayout(rows []LayoutRow) string {
	headers := []string{"NODE", "X", "Y", "SOURCE", "TITLE"}
	out := make([][]string, 0, len(rows))
	overridden := 0
	for _, r := range rows {
		source := Dim("template")
		if r.Overridden {
			source = StylePurple.Render("saved")
			overridden++
		}
		out = append(out, []string{r.ID, Coord(r.Position.X), Coord(r.Position.Y), source, r.Title})
	}
	summary := Dim("All positions are template defaults.")
	if overridden > 0 {
		summary = StylePurple.Render(Coord(float64(overridden))) + Dim(" node(s) moved from their default position.")
	}
	return Header("Layout") + "\n" + RenderTableAligned(headers, out, 1, 2) + "\n" + summary + "\n"
}
