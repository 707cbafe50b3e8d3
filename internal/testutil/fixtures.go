package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
)

var testRecordCounter atomic.Int64

// RecordOption customises a test status record.
type RecordOption func(*domain.StatusRecord)

func WithRecordID(id int64) RecordOption {
	return func(r *domain.StatusRecord) {
		r.ID = id
	}
}

func WithValidUntil(d time.Time) RecordOption {
	return func(r *domain.StatusRecord) {
		r.ValidUntilDate = &d
	}
}

func WithDocumentStatus(s domain.DocumentStatus) RecordOption {
	return func(r *domain.StatusRecord) {
		r.DocumentStatus = &s
	}
}

func WithDueDate(d time.Time) RecordOption {
	return func(r *domain.StatusRecord) {
		r.DueDate = &d
	}
}

func WithExecutor(company, authority string) RecordOption {
	return func(r *domain.StatusRecord) {
		r.ExecutorCompany = company
		r.ExecutorAuthority = authority
	}
}

func WithNote(note string) RecordOption {
	return func(r *domain.StatusRecord) {
		r.Note = note
	}
}

func WithFilesCount(n int) RecordOption {
	return func(r *domain.StatusRecord) {
		r.FilesCount = n
	}
}

// NewTestRecord builds a status record with a unique id.
func NewTestRecord(projectID int64, sectionCode string, status domain.ExecutionStatus, opts ...RecordOption) domain.StatusRecord {
	r := domain.StatusRecord{
		ID:              testRecordCounter.Add(1),
		ProjectID:       projectID,
		SectionCode:     sectionCode,
		ExecutionStatus: status,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RecordsBySection indexes records by section code.
func RecordsBySection(records ...domain.StatusRecord) map[string]domain.StatusRecord {
	out := make(map[string]domain.StatusRecord, len(records))
	for _, r := range records {
		out[r.SectionCode] = r
	}
	return out
}

// NewTestProject builds an opaque project.
func NewTestProject(id int64, name, code string) domain.Project {
	return domain.Project{ID: id, Name: name, Code: code}
}
