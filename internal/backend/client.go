package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is kept in HTTPError.
const maxErrorBody = 512

// Client is the subset of the external resource API the roadmap consumes.
type Client interface {
	// InitStatuses creates missing status records for every section of the
	// project and returns all of the project's records.
	InitStatuses(ctx context.Context, projectID int64) ([]domain.StatusRecord, error)

	// ListStatuses returns the records that already exist for the project.
	ListStatuses(ctx context.Context, projectID int64) ([]domain.StatusRecord, error)

	// CreateStatus creates a single record.
	CreateStatus(ctx context.Context, projectID int64, sectionCode string, status domain.ExecutionStatus) (*domain.StatusRecord, error)

	// ListFiles returns the files attached to a status record.
	ListFiles(ctx context.Context, statusID int64) ([]domain.FileInfo, error)

	// ListProjects returns the projects a roadmap can be shown for.
	ListProjects(ctx context.Context) ([]domain.Project, error)
}

// Config locates the resource API.
type Config struct {
	BaseURL       string
	RoadmapPrefix string
	Timeout       time.Duration
}

// httpClient implements Client over REST/JSON.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
	newID    func() string
}

// NewHTTPClient creates a Client for the API at cfg.BaseURL.
func NewHTTPClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.RoadmapPrefix == "" {
		cfg.RoadmapPrefix = "/document-roadmap"
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
		newID:    func() string { return uuid.New().String() },
	}
}

func (c *httpClient) roadmapPath(format string, args ...any) string {
	return c.cfg.RoadmapPrefix + fmt.Sprintf(format, args...)
}

func (c *httpClient) InitStatuses(ctx context.Context, projectID int64) ([]domain.StatusRecord, error) {
	var dtos []statusDTO
	path := c.roadmapPath("/projects/%d/init-statuses", projectID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &dtos); err != nil {
		return nil, fmt.Errorf("initializing statuses for project %d: %w", projectID, err)
	}
	return toRecords(dtos), nil
}

func (c *httpClient) ListStatuses(ctx context.Context, projectID int64) ([]domain.StatusRecord, error) {
	var dtos []statusDTO
	q := url.Values{"project_id": {strconv.FormatInt(projectID, 10)}}
	if err := c.do(ctx, http.MethodGet, c.roadmapPath("/statuses/"), q, nil, &dtos); err != nil {
		return nil, fmt.Errorf("listing statuses for project %d: %w", projectID, err)
	}
	return toRecords(dtos), nil
}

func (c *httpClient) CreateStatus(ctx context.Context, projectID int64, sectionCode string, status domain.ExecutionStatus) (*domain.StatusRecord, error) {
	body := createStatusDTO{
		ProjectID:       projectID,
		SectionCode:     sectionCode,
		ExecutionStatus: string(status),
	}
	var dto statusDTO
	if err := c.do(ctx, http.MethodPost, c.roadmapPath("/statuses/"), nil, body, &dto); err != nil {
		return nil, fmt.Errorf("creating status %s for project %d: %w", sectionCode, projectID, err)
	}
	rec := dto.toDomain()
	return &rec, nil
}

func (c *httpClient) ListFiles(ctx context.Context, statusID int64) ([]domain.FileInfo, error) {
	var dtos []fileDTO
	if err := c.do(ctx, http.MethodGet, c.roadmapPath("/statuses/%d/files", statusID), nil, nil, &dtos); err != nil {
		return nil, fmt.Errorf("listing files for status %d: %w", statusID, err)
	}
	files := make([]domain.FileInfo, len(dtos))
	for i, d := range dtos {
		files[i] = d.toDomain()
	}
	return files, nil
}

func (c *httpClient) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/projects/", nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	dtos, err := decodeProjects(raw)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	projects := make([]domain.Project, 0, len(dtos))
	for _, d := range dtos {
		if d.ID == 0 {
			continue
		}
		projects = append(projects, domain.Project{ID: d.ID, Name: d.Name, Code: d.Code})
	}
	return projects, nil
}

// decodeProjects accepts either a bare array or an envelope {"data": [...]}.
func decodeProjects(raw json.RawMessage) ([]projectDTO, error) {
	var list []projectDTO
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var envelope struct {
		Data []projectDTO `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return envelope.Data, nil
}

func toRecords(dtos []statusDTO) []domain.StatusRecord {
	out := make([]domain.StatusRecord, len(dtos))
	for i, d := range dtos {
		out[i] = d.toDomain()
	}
	return out
}

// do performs one request and decodes a JSON response into out. It reports
// every call to the observer.
func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	reqID := c.newID()
	status, err := c.roundTrip(ctx, method, path, query, reqID, body, out)
	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Path:      path,
		RequestID: reqID,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *httpClient) roundTrip(ctx context.Context, method, path string, query url.Values, reqID string, body, out any) (int, error) {
	target := c.cfg.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &HTTPError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return resp.StatusCode, nil
}
