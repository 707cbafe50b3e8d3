package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/traversal"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleRedBold    = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the style a presentation status is drawn in.
func StatusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusDone:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleYellow
	case domain.StatusApproval:
		return StyleBlue
	case domain.StatusBlocked:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusGlyph returns the one-character marker of a status.
func StatusGlyph(s domain.Status) string {
	switch s {
	case domain.StatusDone:
		return "✔"
	case domain.StatusInProgress:
		return "▶"
	case domain.StatusApproval:
		return "◔"
	case domain.StatusBlocked:
		return "■"
	default:
		return "○"
	}
}

// StatusPill returns a colored status indicator such as "▶ In progress".
func StatusPill(s domain.Status) string {
	return StatusStyle(s).Render(StatusGlyph(s) + " " + s.Label())
}

// DocBadge renders a document validity state, or "" for none.
func DocBadge(d *domain.DocumentStatus) string {
	if d == nil {
		return ""
	}
	switch *d {
	case domain.DocExpired:
		return StyleRedBold.Render("EXPIRED")
	case domain.DocExpiring:
		return StyleYellow.Render("expiring")
	default:
		return StyleGreen.Render("valid")
	}
}

// TierMarker returns the gutter marker of a highlight tier.
func TierMarker(t traversal.Tier) string {
	switch t {
	case traversal.TierPrimary:
		return StylePurple.Render("◆")
	case traversal.TierInPath:
		return StylePurple.Render("│")
	default:
		return " "
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
