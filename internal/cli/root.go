package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "roadmap" command. Persistent flags
// override app.Config, which already carries file and environment settings.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "roadmap",
		Short: "Document roadmap of a construction project's permits and approvals",
		Long: "roadmap shows the permitting roadmap of a project: which documents are done,\n" +
			"which are under way and what each milestone is waiting on.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Config.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&app.ProjectRef, "project", "p", app.ProjectRef, "Project id or code")
	pf.StringVar(&app.Config.APIURL, "api-url", app.Config.APIURL, "Resource API base URL")
	pf.IntVar(&app.Config.APITimeoutMs, "api-timeout-ms", app.Config.APITimeoutMs, "Per-request timeout of the resource API")
	pf.Var(layoutBackendFlag{&app.Config.LayoutBackend}, "layout-backend", "Where node positions are stored: sqlite or file")
	pf.StringVar(&app.Config.DBPath, "db", app.Config.DBPath, "SQLite database for local state")
	pf.StringVar(&app.Config.LayoutDir, "layout-dir", app.Config.LayoutDir, "Directory for the file layout backend")
	pf.Var(policyFlag{&app.Config.UntouchedPolicy}, "policy", "Display of never-touched nodes: template or neutral")
	pf.BoolVar(&app.Config.Log, "log", app.Config.Log, "Log backend calls and use cases to stderr")
	pf.StringVar(&app.Config.LogLevel, "log-level", app.Config.LogLevel, "Log level: debug, info, warn or error")

	root.AddCommand(
		newProjectsCmd(app),
		newShowCmd(app),
		newWhyCmd(app),
		newPathCmd(app),
		newEnsureCmd(app),
		newLayoutCmd(app),
		newTUICmd(app),
	)

	return root
}
