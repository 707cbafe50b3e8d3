package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// ErrNotInteractive is returned when the viewer is started without a terminal.
var ErrNotInteractive = errors.New("the interactive viewer needs a terminal")

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the roadmap interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	if !app.interactive() {
		return ErrNotInteractive
	}
	s, err := app.loadSession(cmd, projectOptional)
	if err != nil {
		return err
	}
	defer s.Close()

	s.svc.ReloadLayout(cmd.Context())
	m := newRoadmapModel(cmd.Context(), s, app.now)
	_, err = tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	).Run()
	return err
}

// roadmapHuhTheme is the huh theme in the formatter palette.
func roadmapHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = t.Blurred.SelectSelector.Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// projectPickerForm builds the select form behind PickProjectForm.
func projectPickerForm(projects []domain.Project, result *int64) *huh.Form {
	options := make([]huh.Option[int64], 0, len(projects))
	for _, p := range projects {
		label := p.Name
		if label == "" {
			label = "Project " + strconv.FormatInt(p.ID, 10)
		}
		options = append(options, huh.NewOption(fmt.Sprintf("%-10s %s", p.DisplayID(), label), p.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Project").
				Description("Whose roadmap to open").
				Options(options...).
				Filtering(true).
				Value(result),
		),
	).WithTheme(roadmapHuhTheme()).WithShowHelp(false)
}

// PickProjectForm asks for a project with a huh select form. It fits
// App.PickProject.
func PickProjectForm(projects []domain.Project) (int64, error) {
	if len(projects) == 0 {
		return 0, fmt.Errorf("no projects to choose from")
	}
	id := projects[0].ID
	if err := projectPickerForm(projects, &id).Run(); err != nil {
		return 0, err
	}
	return id, nil
}
