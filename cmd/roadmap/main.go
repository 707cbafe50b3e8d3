package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/roadmap/internal/backend"
	"github.com/alexanderramin/roadmap/internal/cli"
	"github.com/alexanderramin/roadmap/internal/config"
	"github.com/alexanderramin/roadmap/internal/db"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/alexanderramin/roadmap/internal/template"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	app := &cli.App{
		Config:      cfg,
		Open:        openSession,
		PickProject: cli.PickProjectForm,
	}

	// Detect interactive terminal for the TUI entrypoint and the project picker.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// openSession wires the backend client, the status and layout stores and
// the roadmap service for cfg. Flags are applied to cfg before this runs.
func openSession(cfg config.Config) (service.RoadmapService, io.Closer, error) {
	var (
		clientObserver backend.Observer = backend.NoopObserver{}
		observers      []service.UseCaseObserver
	)
	if cfg.Log {
		clientObserver = backend.NewLogObserver(os.Stderr, cfg.SlogLevel())
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr, cfg.SlogLevel()))
	}

	repo, closer, err := openLayoutRepo(cfg)
	if err != nil {
		return nil, nil, err
	}

	tpl := template.Roadmap()
	client := backend.NewHTTPClient(backend.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout()}, clientObserver)
	statuses := service.NewStatusStore(client, tpl, cfg.UntouchedPolicy, observers...)
	layout := service.NewLayoutStore(repo, observers...)
	return service.NewRoadmapService(tpl, statuses, layout, client, observers...), closer, nil
}

func openLayoutRepo(cfg config.Config) (repository.StateRepo, io.Closer, error) {
	switch cfg.LayoutBackend {
	case config.LayoutFile:
		return repository.NewFileStateRepo(osfs.New(cfg.LayoutDir)), nopCloser{}, nil
	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening layout database: %w", err)
		}
		return repository.NewSQLiteStateRepo(database, db.NewSQLiteUnitOfWork(database)), database, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
