package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/spf13/cobra"
)

func newLayoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect and edit saved node positions",
	}

	cmd.AddCommand(
		newLayoutShowCmd(app),
		newLayoutSetCmd(app),
		newLayoutResetCmd(app),
	)
	return cmd
}

func newLayoutShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show every node's render position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd, projectIgnored)
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLayout(layoutRows(cmd, s)))
			return nil
		},
	}
}

func layoutRows(cmd *cobra.Command, s *session) []formatter.LayoutRow {
	overrides := s.svc.ReloadLayout(cmd.Context())
	tpl := s.svc.Template()
	rows := make([]formatter.LayoutRow, 0, len(tpl.NodeIDs()))
	for _, id := range tpl.NodeIDs() {
		n, _ := tpl.Node(id)
		p, err := s.svc.Position(id)
		if err != nil {
			continue
		}
		_, moved := overrides[id]
		rows = append(rows, formatter.LayoutRow{ID: id, Title: n.Title(), Position: p, Overridden: moved})
	}
	return rows
}

func newLayoutSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <node> <x> <y>",
		Short: "Save a node's position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}

			s, err := app.loadSession(cmd, projectIgnored)
			if err != nil {
				return err
			}
			defer s.Close()

			s.svc.ReloadLayout(cmd.Context())
			if err := s.svc.SaveLayout(cmd.Context(), args[0], domain.Point{X: x, Y: y}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to (%s, %s).\n", args[0], formatter.Coord(x), formatter.Coord(y))
			return nil
		},
	}
}

func newLayoutResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget every saved position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd, projectIgnored)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.svc.ResetLayout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All nodes are back at their template positions.")
			return nil
		},
	}
}
