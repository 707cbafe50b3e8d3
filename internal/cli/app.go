package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/config"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/spf13/cobra"
)

// ErrUnknownProject is returned when --project matches no backend project.
var ErrUnknownProject = errors.New("unknown project")

// OpenFunc builds a roadmap session for cfg. The closer releases local
// storage and is always non-nil on success.
type OpenFunc func(cfg config.Config) (service.RoadmapService, io.Closer, error)

// App holds what the CLI commands need: settings, a way to open a session,
// and terminal capabilities.
type App struct {
	Config config.Config
	Open   OpenFunc

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// PickProject asks the user to choose a project. Nil disables picking.
	PickProject func(projects []domain.Project) (int64, error)
	// Now anchors relative dates. Nil means time.Now.
	Now func() time.Time

	// ProjectRef is the --project flag: a numeric id or a project code.
	ProjectRef string
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// session is an opened roadmap session plus the project it was pointed at.
type session struct {
	svc     service.RoadmapService
	closer  io.Closer
	project *domain.Project
}

func (s *session) Close() error { return s.closer.Close() }

// projectLabel is the header text for the active project.
func (s *session) projectLabel() string {
	if s.project == nil {
		return ""
	}
	if s.project.Name == "" {
		return s.project.DisplayID()
	}
	return fmt.Sprintf("%s  %s", s.project.DisplayID(), s.project.Name)
}

// projectNeed says how a command uses the active project.
type projectNeed int

const (
	projectIgnored projectNeed = iota
	projectOptional
	projectRequired
)

// openSession opens a session and, when a project is given or picked,
// loads its statuses. A *service.LoadError is reported on warn and does not
// fail the session.
func (a *App) openSession(ctx context.Context, warn io.Writer, need projectNeed) (*session, error) {
	if a.Open == nil {
		return nil, errors.New("no session factory configured")
	}
	svc, closer, err := a.Open(a.Config)
	if err != nil {
		return nil, err
	}
	s := &session{svc: svc, closer: closer}
	if need == projectIgnored {
		return s, nil
	}

	project, err := a.resolveProject(ctx, svc)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	if project == nil {
		if need == projectRequired {
			_ = closer.Close()
			return nil, fmt.Errorf("pass --project: %w", service.ErrNoProject)
		}
		return s, nil
	}

	s.project = project
	if err := svc.SelectProject(ctx, project.ID); err != nil {
		var loadErr *service.LoadError
		if !errors.As(err, &loadErr) {
			_ = closer.Close()
			return nil, err
		}
		fmt.Fprintf(warn, "warning: %v; showing template defaults\n", err)
	}
	return s, nil
}

// loadSession opens a session for cmd, animating a spinner on stderr while
// statuses load in an interactive terminal.
func (a *App) loadSession(cmd *cobra.Command, need projectNeed) (*session, error) {
	if need != projectIgnored && a.interactive() && a.ProjectRef != "" {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Loading statuses...")
		defer stop()
	}
	return a.openSession(cmd.Context(), cmd.ErrOrStderr(), need)
}

// resolveProject turns --project into a project. A numeric reference that
// the project list cannot confirm is still used as an id, so a backend
// without the project listing endpoint keeps working. Without a reference
// an interactive terminal offers the picker.
func (a *App) resolveProject(ctx context.Context, svc service.RoadmapService) (*domain.Project, error) {
	ref := strings.TrimSpace(a.ProjectRef)
	if ref == "" {
		if !a.interactive() || a.PickProject == nil {
			return nil, nil
		}
		projects, err := svc.Projects(ctx)
		if err != nil {
			return nil, err
		}
		if len(projects) == 0 {
			return nil, nil
		}
		id, err := a.PickProject(projects)
		if err != nil {
			return nil, err
		}
		return findProject(projects, strconv.FormatInt(id, 10)), nil
	}

	projects, listErr := svc.Projects(ctx)
	if p := findProject(projects, ref); p != nil {
		return p, nil
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		return &domain.Project{ID: id}, nil
	}
	if listErr != nil {
		return nil, fmt.Errorf("resolving project %q: %w", ref, listErr)
	}
	return nil, fmt.Errorf("%q: %w", ref, ErrUnknownProject)
}

// findProject matches ref against ids, then codes case-insensitively.
func findProject(projects []domain.Project, ref string) *domain.Project {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for i := range projects {
			if projects[i].ID == id {
				return &projects[i]
			}
		}
	}
	for i := range projects {
		if projects[i].Code != "" && strings.EqualFold(projects[i].Code, ref) {
			return &projects[i]
		}
	}
	return nil
}
