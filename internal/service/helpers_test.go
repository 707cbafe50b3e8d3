package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/roadmap/internal/backend"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/alexanderramin/roadmap/internal/template"
	"github.com/alexanderramin/roadmap/internal/testutil"
)

// newFake starts a fake backend that knows every section of the roadmap.
func newFake(t *testing.T) *testutil.FakeBackend {
	t.Helper()
	return testutil.NewFakeBackend(t, template.Roadmap().SectionCodes()...)
}

func newClient(fb *testutil.FakeBackend) backend.Client {
	return backend.NewHTTPClient(backend.Config{BaseURL: fb.URL(), Timeout: 5 * time.Second}, nil)
}

func newStore(t *testing.T, fb *testutil.FakeBackend, policy domain.UntouchedPolicy) *StatusStore {
	t.Helper()
	return NewStatusStore(newClient(fb), template.Roadmap(), policy)
}

func newSQLiteLayout(t *testing.T) (*LayoutStore, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteStateRepo(database, testutil.NewTestUoW(database))
	return NewLayoutStore(repo), database
}

func newSession(t *testing.T, fb *testutil.FakeBackend) (RoadmapService, *StatusStore) {
	t.Helper()
	store := newStore(t, fb, domain.PolicyTemplate)
	layout, _ := newSQLiteLayout(t)
	return NewRoadmapService(template.Roadmap(), store, layout, newClient(fb)), store
}
