package backend

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
)

const dateLayout = "2006-01-02"

// dateLayouts are tried in order when decoding. The backend emits naive
// timestamps for upload times.
var dateLayouts = []string{dateLayout, time.RFC3339Nano, "2006-01-02T15:04:05.999999999"}

// Date is a calendar date as the backend serialises it. It also accepts
// timestamps.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return err
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// statusDTO is the wire shape of a roadmap status record.
type statusDTO struct {
	ID                int64   `json:"id"`
	ProjectID         int64   `json:"project_id"`
	SectionCode       string  `json:"section_code"`
	ExecutionStatus   string  `json:"execution_status"`
	DocumentStatus    *string `json:"document_status,omitempty"`
	RequestDate       *Date   `json:"request_date,omitempty"`
	DueDate           *Date   `json:"due_date,omitempty"`
	ValidUntilDate    *Date   `json:"valid_until_date,omitempty"`
	ExecutorCompany   *string `json:"executor_company,omitempty"`
	ExecutorAuthority *string `json:"executor_authority,omitempty"`
	Note              *string `json:"note,omitempty"`
	FilesCount        int     `json:"files_count"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (d statusDTO) toDomain() domain.StatusRecord {
	rec := domain.StatusRecord{
		ID:                d.ID,
		ProjectID:         d.ProjectID,
		SectionCode:       d.SectionCode,
		ExecutionStatus:   domain.ParseExecutionStatus(d.ExecutionStatus),
		RequestDate:       d.RequestDate.ptr(),
		DueDate:           d.DueDate.ptr(),
		ValidUntilDate:    d.ValidUntilDate.ptr(),
		ExecutorCompany:   deref(d.ExecutorCompany),
		ExecutorAuthority: deref(d.ExecutorAuthority),
		Note:              deref(d.Note),
		FilesCount:        max(d.FilesCount, 0),
	}
	if d.DocumentStatus != nil {
		switch ds := domain.DocumentStatus(*d.DocumentStatus); ds {
		case domain.DocValid, domain.DocExpiring, domain.DocExpired:
			rec.DocumentStatus = &ds
		}
	}
	return rec
}

// createStatusDTO is the body of POST /statuses/.
type createStatusDTO struct {
	ProjectID       int64  `json:"project_id"`
	SectionCode     string `json:"section_code"`
	ExecutionStatus string `json:"execution_status"`
}

type projectDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type fileDTO struct {
	ID          int64   `json:"id"`
	FileName    string  `json:"file_name"`
	FileSize    *int64  `json:"file_size,omitempty"`
	MimeType    string  `json:"mime_type"`
	UploadedAt  Date    `json:"uploaded_at"`
	Description *string `json:"description,omitempty"`
}

func (f fileDTO) toDomain() domain.FileInfo {
	return domain.FileInfo{
		ID:          f.ID,
		FileName:    f.FileName,
		FileSize:    f.FileSize,
		MimeType:    f.MimeType,
		UploadedAt:  f.UploadedAt.Time,
		Description: deref(f.Description),
	}
}
