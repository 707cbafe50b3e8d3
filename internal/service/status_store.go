package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/alexanderramin/roadmap/internal/backend"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/template"
)

// EnsureOutcome reports what EnsureRecord did.
type EnsureOutcome int

const (
	// EnsureExisting means a record for the section was already loaded.
	EnsureExisting EnsureOutcome = iota
	// EnsureCreated means a record was created and merged into the map.
	EnsureCreated
	// EnsureInFlight means another creation (or the bulk load) for the same
	// section is still pending; nothing was sent.
	EnsureInFlight
	// EnsureStale means the active project changed before the backend
	// answered; the created record was discarded.
	EnsureStale
	// EnsureFailed accompanies a non-nil error.
	EnsureFailed
)

func (o EnsureOutcome) String() string {
	switch o {
	case EnsureExisting:
		return "existing"
	case EnsureCreated:
		return "created"
	case EnsureInFlight:
		return "in_flight"
	case EnsureStale:
		return "stale"
	case EnsureFailed:
		return "failed"
	default:
		return fmt.Sprintf("EnsureOutcome(%d)", int(o))
	}
}

// Snapshot is an immutable copy of the store state.
type Snapshot struct {
	ProjectID  int64
	HasProject bool
	Records    map[string]domain.StatusRecord
	Generation uint64
	Loading    bool
	Failed     bool
}

// Record returns the record for a section code.
func (s Snapshot) Record(sectionCode string) (domain.StatusRecord, bool) {
	r, ok := s.Records[sectionCode]
	return r, ok
}

// pendingKey marks a create call in flight. Keys carry the project, so they
// outlive project switches and reloads until their own call returns.
type pendingKey struct {
	projectID int64
	section   string
}

// StatusStore holds the status records of the active project, keyed by
// section code. It is safe for concurrent use; no lock is held across a
// backend call.
type StatusStore struct {
	client   backend.Client
	tpl      *template.Template
	policy   domain.UntouchedPolicy
	observer UseCaseObserver
	now      func() time.Time

	mu         sync.RWMutex
	projectID  int64
	hasProject bool
	generation uint64
	records    map[string]domain.StatusRecord
	pending    map[pendingKey]struct{}
	loading    bool
	failed     bool
}

// NewStatusStore creates an empty store with no active project.
func NewStatusStore(client backend.Client, tpl *template.Template, policy domain.UntouchedPolicy, observers ...UseCaseObserver) *StatusStore {
	if policy == "" {
		policy = domain.PolicyTemplate
	}
	return &StatusStore{
		client:   client,
		tpl:      tpl,
		policy:   policy,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
		records:  map[string]domain.StatusRecord{},
		pending:  map[pendingKey]struct{}{},
	}
}

// Load makes projectID the active project and fetches its records: bulk
// init first, then the plain list, then an empty map. Only when both calls
// fail is a *LoadError returned. A load overtaken by a later Load returns
// ErrStaleLoad and leaves the newer state alone.
func (s *StatusStore) Load(ctx context.Context, projectID int64) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID}
	defer observe(ctx, s.observer, "load-statuses", startedAt, &err, fields)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.projectID = projectID
	s.hasProject = true
	s.records = map[string]domain.StatusRecord{}
	s.loading = true
	s.failed = false
	s.mu.Unlock()

	records, source, fetchErr := s.fetch(ctx, projectID)
	fields["source"] = source

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return ErrStaleLoad
	}
	s.loading = false
	if fetchErr != nil {
		s.failed = true
		return fetchErr
	}
	fetched := s.index(projectID, records)
	// Records created while the fetch was running may be missing from it.
	for code, r := range s.records {
		if _, ok := fetched[code]; !ok {
			fetched[code] = r
		}
	}
	s.records = fetched
	fields["records"] = len(s.records)
	return nil
}

func (s *StatusStore) fetch(ctx context.Context, projectID int64) ([]domain.StatusRecord, string, error) {
	records, initErr := s.client.InitStatuses(ctx, projectID)
	if initErr == nil {
		return records, "init", nil
	}
	if errors.Is(initErr, context.Canceled) {
		return nil, "init", initErr
	}
	records, listErr := s.client.ListStatuses(ctx, projectID)
	if listErr == nil {
		return records, "list", nil
	}
	return nil, "none", &LoadError{ProjectID: projectID, InitErr: initErr, ListErr: listErr}
}

// index keys records by section code, keeping the first record per section
// and skipping records that belong to another project.
func (s *StatusStore) index(projectID int64, records []domain.StatusRecord) map[string]domain.StatusRecord {
	out := make(map[string]domain.StatusRecord, len(records))
	today := s.now()
	for _, r := range records {
		if r.SectionCode == "" {
			continue
		}
		if r.ProjectID != 0 && r.ProjectID != projectID {
			continue
		}
		if _, dup := out[r.SectionCode]; dup {
			continue
		}
		out[r.SectionCode] = withDocumentStatus(r, today)
	}
	return out
}

func withDocumentStatus(r domain.StatusRecord, today time.Time) domain.StatusRecord {
	if r.DocumentStatus == nil {
		r.DocumentStatus = domain.DocumentStatusAt(r.ValidUntilDate, today)
	}
	return r
}

// EnsureRecord creates the record for (projectID, sectionCode) unless it is
// already loaded or being created. At most one create call per pair is in
// flight at any time.
func (s *StatusStore) EnsureRecord(ctx context.Context, projectID int64, sectionCode string) (outcome EnsureOutcome, err error) {
	if _, ok := s.tpl.NodeForSection(sectionCode); !ok {
		return EnsureFailed, fmt.Errorf("ensure %q: %w", sectionCode, ErrUnknownSection)
	}

	s.mu.Lock()
	if !s.hasProject || s.projectID != projectID {
		s.mu.Unlock()
		return EnsureStale, nil
	}
	if _, ok := s.records[sectionCode]; ok {
		s.mu.Unlock()
		return EnsureExisting, nil
	}
	key := pendingKey{projectID: projectID, section: sectionCode}
	if _, busy := s.pending[key]; busy || s.loading {
		s.mu.Unlock()
		return EnsureInFlight, nil
	}
	s.pending[key] = struct{}{}
	s.mu.Unlock()

	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID, "section": sectionCode}
	defer observe(ctx, s.observer, "ensure-record", startedAt, &err, fields)

	rec, createErr := s.client.CreateStatus(ctx, projectID, sectionCode, domain.ExecNotStarted)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
	if !s.hasProject || s.projectID != projectID {
		fields["outcome"] = EnsureStale.String()
		return EnsureStale, nil
	}
	if createErr == nil && rec == nil {
		createErr = backend.ErrDecode
	}
	if createErr != nil {
		return EnsureFailed, fmt.Errorf("creating status for %q: %w", sectionCode, createErr)
	}
	r := *rec
	if r.SectionCode == "" {
		r.SectionCode = sectionCode
	}
	if r.ProjectID == 0 {
		r.ProjectID = projectID
	}
	if _, ok := s.records[sectionCode]; ok {
		// A record arrived some other way while the create was pending.
		fields["outcome"] = EnsureExisting.String()
		return EnsureExisting, nil
	}
	s.records[sectionCode] = withDocumentStatus(r, s.now())
	fields["outcome"] = EnsureCreated.String()
	return EnsureCreated, nil
}

// EffectiveStatus returns the displayed status of a node for the active
// project.
func (s *StatusStore) EffectiveStatus(nodeID string) domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return EffectiveStatus(s.tpl, s.records, s.policy, nodeID)
}

// StatusFunc returns a lookup bound to a consistent copy of the current
// records, for use by traversals.
func (s *StatusStore) StatusFunc() func(string) domain.Status {
	snap := s.Snapshot()
	return func(nodeID string) domain.Status {
		return EffectiveStatus(s.tpl, snap.Records, s.policy, nodeID)
	}
}

// Record returns the loaded record for a section code.
func (s *StatusStore) Record(sectionCode string) (domain.StatusRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[sectionCode]
	return r, ok
}

// Failed reports whether the last completed load ended with an empty map
// because the backend was unreachable.
func (s *StatusStore) Failed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failed
}

// Policy returns the untouched-node policy in effect.
func (s *StatusStore) Policy() domain.UntouchedPolicy { return s.policy }

// Snapshot returns a copy of the current state.
func (s *StatusStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		ProjectID:  s.projectID,
		HasProject: s.hasProject,
		Records:    maps.Clone(s.records),
		Generation: s.generation,
		Loading:    s.loading,
		Failed:     s.failed,
	}
}

// Files lists the files attached to a status record. On failure the list is
// empty and the error is returned alongside it.
func (s *StatusStore) Files(ctx context.Context, statusID int64) (files []domain.FileInfo, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "list-files", startedAt, &err, map[string]any{"status_id": statusID})

	files, err = s.client.ListFiles(ctx, statusID)
	if err != nil {
		return []domain.FileInfo{}, fmt.Errorf("listing files of status %d: %w", statusID, err)
	}
	return files, nil
}

// EffectiveStatus derives the displayed status of nodeID from explicit
// inputs: the record for the node's section code if there is one, else the
// template default filtered through policy. Unknown nodes are not_started.
func EffectiveStatus(tpl *template.Template, records map[string]domain.StatusRecord, policy domain.UntouchedPolicy, nodeID string) domain.Status {
	node, ok := tpl.Node(nodeID)
	if !ok {
		return domain.StatusNotStarted
	}
	if code, mapped := tpl.SectionCode(nodeID); mapped {
		if r, found := records[code]; found {
			return r.Status()
		}
	}
	return policy.Apply(node.DefaultStatus)
}
