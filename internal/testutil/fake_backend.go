package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// APIPrefix is the path under which FakeBackend serves the resource API.
const APIPrefix = "/api/v1"

// Operation names counted by FakeBackend.
const (
	OpInit     = "init"
	OpList     = "list"
	OpCreate   = "create"
	OpFiles    = "files"
	OpProjects = "projects"
)

// Hold pauses matching requests until Release is called.
type Hold struct {
	arrived     chan struct{}
	release     chan struct{}
	arrivedOnce sync.Once
	releaseOnce sync.Once
}

// Arrived is closed once the first held request reaches the server.
func (h *Hold) Arrived() <-chan struct{} { return h.arrived }

// Release lets held requests continue. Safe to call more than once.
func (h *Hold) Release() { h.releaseOnce.Do(func() { close(h.release) }) }

// FakeBackend is an in-process stand-in for the resource API, built on
// httptest. It records calls, can fail operations, and can hold requests to
// stage races.
type FakeBackend struct {
	Server *httptest.Server

	mu        sync.Mutex
	sections  []string
	projects  []domain.Project
	records   map[int64][]domain.StatusRecord
	files     map[int64][]domain.FileInfo
	failing   map[string]int
	calls     map[string]int
	requestID []string
	holds     map[string]*Hold
	nextID    int64
}

// NewFakeBackend starts a server whose init-statuses call creates a
// not_started record for each of sections. It is closed with the test.
func NewFakeBackend(t *testing.T, sections ...string) *FakeBackend {
	t.Helper()
	f := &FakeBackend{
		sections: sections,
		records:  map[int64][]domain.StatusRecord{},
		files:    map[int64][]domain.FileInfo{},
		failing:  map[string]int{},
		calls:    map[string]int{},
		holds:    map[string]*Hold{},
		nextID:   1000,
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(func() {
		f.mu.Lock()
		for _, h := range f.holds {
			h.Release()
		}
		f.mu.Unlock()
		f.Server.Close()
	})
	return f
}

// URL is the API base URL to configure clients with.
func (f *FakeBackend) URL() string { return f.Server.URL + APIPrefix }

func (f *FakeBackend) AddProject(p domain.Project) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = append(f.projects, p)
}

func (f *FakeBackend) AddRecord(r domain.StatusRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[r.ProjectID] = append(f.records[r.ProjectID], r)
}

func (f *FakeBackend) AddFile(statusID int64, fi domain.FileInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[statusID] = append(f.files[statusID], fi)
}

// Fail makes op answer with the given HTTP status code. Code 0 restores it.
func (f *FakeBackend) Fail(op string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code == 0 {
		delete(f.failing, op)
		return
	}
	f.failing[op] = code
}

// HoldOp pauses op requests whose key matches. For init and list the key is
// the project id, for create the section code.
func (f *FakeBackend) HoldOp(op, key string) *Hold {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := &Hold{arrived: make(chan struct{}), release: make(chan struct{})}
	f.holds[op+":"+key] = h
	return h
}

// Calls returns how many requests op has received.
func (f *FakeBackend) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// RequestIDs returns the X-Request-ID of every request in arrival order.
func (f *FakeBackend) RequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestID...)
}

// Records returns the stored records of a project.
func (f *FakeBackend) Records(projectID int64) []domain.StatusRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.StatusRecord(nil), f.records[projectID]...)
}

func (f *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, APIPrefix)
	roadmap := strings.TrimPrefix(path, "/document-roadmap")

	switch {
	case r.Method == http.MethodGet && path == "/projects/":
		f.handle(w, r, OpProjects, "", func() (int, any) {
			return http.StatusOK, map[string]any{"data": projectsJSON(f.projects)}
		})

	case r.Method == http.MethodPost && strings.HasPrefix(roadmap, "/projects/") && strings.HasSuffix(roadmap, "/init-statuses"):
		idStr := strings.TrimSuffix(strings.TrimPrefix(roadmap, "/projects/"), "/init-statuses")
		f.handle(w, r, OpInit, idStr, func() (int, any) {
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				return http.StatusBadRequest, map[string]string{"detail": "bad project id"}
			}
			f.initLocked(id)
			return http.StatusOK, recordsJSON(f.records[id])
		})

	case r.Method == http.MethodGet && roadmap == "/statuses/":
		idStr := r.URL.Query().Get("project_id")
		f.handle(w, r, OpList, idStr, func() (int, any) {
			id, _ := strconv.ParseInt(idStr, 10, 64)
			return http.StatusOK, recordsJSON(f.records[id])
		})

	case r.Method == http.MethodPost && roadmap == "/statuses/":
		var body struct {
			ProjectID       int64  `json:"project_id"`
			SectionCode     string `json:"section_code"`
			ExecutionStatus string `json:"execution_status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad body", http.StatusUnprocessableEntity)
			return
		}
		f.handle(w, r, OpCreate, body.SectionCode, func() (int, any) {
			rec := domain.StatusRecord{
				ID:              f.allocID(),
				ProjectID:       body.ProjectID,
				SectionCode:     body.SectionCode,
				ExecutionStatus: domain.ParseExecutionStatus(body.ExecutionStatus),
			}
			f.records[body.ProjectID] = append(f.records[body.ProjectID], rec)
			return http.StatusCreated, recordJSON(rec)
		})

	case r.Method == http.MethodGet && strings.HasPrefix(roadmap, "/statuses/") && strings.HasSuffix(roadmap, "/files"):
		idStr := strings.TrimSuffix(strings.TrimPrefix(roadmap, "/statuses/"), "/files")
		f.handle(w, r, OpFiles, idStr, func() (int, any) {
			id, _ := strconv.ParseInt(idStr, 10, 64)
			return http.StatusOK, filesJSON(f.files[id])
		})

	default:
		http.NotFound(w, r)
	}
}

// handle counts the call, honours holds and failures, then runs fn under
// the lock and writes its JSON result.
func (f *FakeBackend) handle(w http.ResponseWriter, r *http.Request, op, key string, fn func() (int, any)) {
	f.mu.Lock()
	f.calls[op]++
	f.requestID = append(f.requestID, r.Header.Get("X-Request-ID"))
	hold := f.holds[op+":"+key]
	f.mu.Unlock()

	if hold != nil {
		hold.arrivedOnce.Do(func() { close(hold.arrived) })
		select {
		case <-hold.release:
		case <-r.Context().Done():
			return
		}
	}

	f.mu.Lock()
	if code, failing := f.failing[op]; failing {
		f.mu.Unlock()
		http.Error(w, fmt.Sprintf(`{"detail":"%s failed"}`, op), code)
		return
	}
	code, body := fn()
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func (f *FakeBackend) initLocked(projectID int64) {
	have := map[string]bool{}
	for _, r := range f.records[projectID] {
		have[r.SectionCode] = true
	}
	for _, code := range f.sections {
		if have[code] {
			continue
		}
		f.records[projectID] = append(f.records[projectID], domain.StatusRecord{
			ID:              f.allocID(),
			ProjectID:       projectID,
			SectionCode:     code,
			ExecutionStatus: domain.ExecNotStarted,
		})
	}
}

func (f *FakeBackend) allocID() int64 {
	f.nextID++
	return f.nextID
}

func recordsJSON(records []domain.StatusRecord) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, r := range records {
		out = append(out, recordJSON(r))
	}
	return out
}

func recordJSON(r domain.StatusRecord) map[string]any {
	m := map[string]any{
		"id":               r.ID,
		"project_id":       r.ProjectID,
		"section_code":     r.SectionCode,
		"execution_status": string(r.ExecutionStatus),
		"files_count":      r.FilesCount,
	}
	if r.DocumentStatus != nil {
		m["document_status"] = string(*r.DocumentStatus)
	}
	putDate(m, "request_date", r.RequestDate)
	putDate(m, "due_date", r.DueDate)
	putDate(m, "valid_until_date", r.ValidUntilDate)
	putString(m, "executor_company", r.ExecutorCompany)
	putString(m, "executor_authority", r.ExecutorAuthority)
	putString(m, "note", r.Note)
	return m
}

func putDate(m map[string]any, key string, t *time.Time) {
	if t != nil {
		m[key] = t.Format("2006-01-02")
	}
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func projectsJSON(projects []domain.Project) []map[string]any {
	out := make([]map[string]any, 0, len(projects))
	for _, p := range projects {
		out = append(out, map[string]any{"id": p.ID, "name": p.Name, "code": p.Code})
	}
	return out
}

func filesJSON(files []domain.FileInfo) []map[string]any {
	out := make([]map[string]any, 0, len(files))
	for _, fi := range files {
		m := map[string]any{
			"id":          fi.ID,
			"file_name":   fi.FileName,
			"mime_type":   fi.MimeType,
			"uploaded_at": fi.UploadedAt.UTC().Format(time.RFC3339),
		}
		if fi.FileSize != nil {
			m["file_size"] = *fi.FileSize
		}
		putString(m, "description", fi.Description)
		out = append(out, m)
	}
	return out
}
