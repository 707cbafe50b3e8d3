package cli

import (
	"fmt"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/view"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	mode := modeFlag{mode: view.ModeAll}
	status := statusFlag{filter: view.StatusAny}
	var (
		search   string
		selectID string
		zoom     int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the roadmap as a section tree",
		Long: "Show every visible roadmap node nested under its parent section, with its\n" +
			"effective status. Without --project the template defaults are shown.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd, projectOptional)
			if err != nil {
				return err
			}
			defer s.Close()

			s.svc.SetMode(mode.mode)
			s.svc.SetStatusFilter(status.filter)
			s.svc.SetSearch(search)
			if selectID != "" {
				if err := s.svc.SelectNode(selectID); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("zoom") {
				s.svc.SetZoom(zoom)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoadmap(s.svc, s.projectLabel()))
			return nil
		},
	}

	cmd.Flags().VarP(&mode, "mode", "m", "View mode: "+joinModes())
	cmd.Flags().VarP(&status, "status", "s", "Keep only nodes with this status: any, "+joinStatuses())
	cmd.Flags().StringVarP(&search, "search", "q", "", "Keep only nodes whose label contains this text")
	cmd.Flags().StringVar(&selectID, "select", "", "Highlight a node with its prerequisites and dependents")
	cmd.Flags().IntVar(&zoom, "zoom", 100, "Zoom percentage of the session")
	return cmd
}
