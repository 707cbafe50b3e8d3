package cli

import (
	"bytes"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/roadmap/internal/backend"
	"github.com/alexanderramin/roadmap/internal/config"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/alexanderramin/roadmap/internal/template"
	"github.com/alexanderramin/roadmap/internal/testutil"
	"github.com/go-git/go-billy/v5/memfs"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// testApp wires an App whose sessions talk to a fake backend and keep the
// layout in one in-memory filesystem shared by every command of the test.
func testApp(t *testing.T) (*App, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t, template.Roadmap().SectionCodes()...)
	layoutRepo := repository.NewFileStateRepo(memfs.New())

	cfg := config.DefaultConfig()
	cfg.APIURL = fb.URL()

	app := &App{
		Config: cfg,
		Open: func(cfg config.Config) (service.RoadmapService, io.Closer, error) {
			client := backend.NewHTTPClient(backend.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout()}, nil)
			store := service.NewStatusStore(client, template.Roadmap(), cfg.UntouchedPolicy)
			layout := service.NewLayoutStore(layoutRepo)
			return service.NewRoadmapService(template.Roadmap(), store, layout, client), nopCloser{}, nil
		},
		Now: func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) },
	}
	return app, fb
}

// runCmd executes the command tree with args and returns plain stdout and
// stderr.
func runCmd(app *App, args ...string) (string, string, error) {
	root := NewRootCmd(app)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(out.String()), stripANSI(errOut.String()), err
}
