package domain

import "strconv"

// Project is the backend's project entity, opaque beyond these fields.
type Project struct {
	ID   int64
	Name string
	Code string
}

// DisplayID returns the best short identifier for display.
// It prefers Code; if empty it falls back to the numeric ID.
func (p *Project) DisplayID() string {
	if p.Code != "" {
		return p.Code
	}
	return "#" + strconv.FormatInt(p.ID, 10)
}
