package domain

import "time"

// StatusRecord is the backend-persisted status of one section of one project.
type StatusRecord struct {
	ID                int64
	ProjectID         int64
	SectionCode       string
	ExecutionStatus   ExecutionStatus
	DocumentStatus    *DocumentStatus
	RequestDate       *time.Time
	DueDate           *time.Time
	ValidUntilDate    *time.Time
	ExecutorCompany   string
	ExecutorAuthority string
	Note              string
	FilesCount        int
}

// Status returns the record's execution status in presentation terms.
func (r *StatusRecord) Status() Status {
	return ToPresentation(r.ExecutionStatus)
}

// expiringWindow is how close to expiry a document counts as expiring.
const expiringWindow = 30

// DocumentStatusAt classifies a validity date relative to today. A nil date
// has no document status.
func DocumentStatusAt(validUntil *time.Time, today time.Time) *DocumentStatus {
	if validUntil == nil {
		return nil
	}
	days := daysBetween(today, *validUntil)
	var s DocumentStatus
	switch {
	case days < 0:
		s = DocExpired
	case days <= expiringWindow:
		s = DocExpiring
	default:
		s = DocValid
	}
	return &s
}

func daysBetween(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// FileInfo describes one file attached to a status record.
type FileInfo struct {
	ID          int64
	FileName    string
	FileSize    *int64
	MimeType    string
	UploadedAt  time.Time
	Description string
}
