package cli

import (
	"fmt"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/spf13/cobra"
)

func newEnsureCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure <node>",
		Short: "Create a not_started status record for a node that has none",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd, projectRequired)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.svc.SelectNode(args[0]); err != nil {
				return err
			}
			outcome, err := s.svc.EnsureRecord(cmd.Context())
			if err != nil {
				return err
			}
			code, _ := s.svc.Template().SectionCode(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), ensureMessage(outcome, code))
			return nil
		},
	}
}

func ensureMessage(o service.EnsureOutcome, section string) string {
	switch o {
	case service.EnsureCreated:
		return formatter.StyleGreen.Render("✔ ") + fmt.Sprintf("Created a not_started record for %s.", section)
	case service.EnsureExisting:
		return formatter.Dim(fmt.Sprintf("%s already has a status record.", section))
	case service.EnsureInFlight:
		return formatter.StyleYellow.Render(fmt.Sprintf("A record for %s is already being created.", section))
	case service.EnsureStale:
		return formatter.StyleYellow.Render("The project changed before the backend answered; nothing was recorded.")
	default:
		return o.String()
	}
}
