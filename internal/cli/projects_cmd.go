package cli

import (
	"fmt"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "projects",
		Aliases: []string{"ls"},
		Short:   "List the backend's projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd, projectIgnored)
			if err != nil {
				return err
			}
			defer s.Close()

			projects, err := s.svc.Projects(cmd.Context())
			if err != nil {
				return err
			}
			var active int64
			if p := findProject(projects, app.ProjectRef); p != nil {
				active = p.ID
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, active))
			return nil
		},
	}
}
