package cli

import (
	"fmt"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newWhyCmd(app *App) *cobra.Command {
	var files bool

	cmd := &cobra.Command{
		Use:   "why <node>",
		Short: "Explain what a node is waiting on and what it holds up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd, projectOptional)
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.svc.Explain(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatWhy(report, app.now()))

			if files {
				list, err := s.svc.Files(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(out, "\n"+formatter.FormatFiles("Files: "+report.Node.Title, list))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&files, "files", false, "Also list the files attached to the node's status record")
	return cmd
}

func newPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path <node>",
		Short: "List a node's prerequisites and dependents in dependency order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd, projectOptional)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.svc.SelectNode(args[0]); err != nil {
				return err
			}
			report, err := s.svc.Explain(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPath(s.svc, report))
			return nil
		},
	}
}
