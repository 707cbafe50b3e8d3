package formatter

import (
	"strconv"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// FormatProjectList renders the backend's projects inside a bordered box,
// marking the active one.
func FormatProjectList(projects []domain.Project, activeID int64) string {
	if len(projects) == 0 {
		return RenderBox("Projects", Dim("No projects."))
	}

	headers := []string{"", "ID", "CODE", "NAME"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		marker := " "
		name := p.Name
		if p.ID == activeID {
			marker = StylePurple.Render("▶")
			name = Bold(name)
		}
		code := p.Code
		if code == "" {
			code = Dim("--")
		}
		rows = append(rows, []string{marker, strconv.FormatInt(p.ID, 10), code, name})
	}
	return RenderBox("Projects", RenderTableAligned(headers, rows, 1))
}

// FormatFiles renders the files attached to a node's status record.
func FormatFiles(title string, files []domain.FileInfo) string {
	if len(files) == 0 {
		return Header(title) + "\n" + Dim("No files.") + "\n"
	}
	headers := []string{"NAME", "SIZE", "TYPE", "UPLOADED"}
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		uploaded := Dim("--")
		if !f.UploadedAt.IsZero() {
			uploaded = f.UploadedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{f.FileName, FileSize(f.FileSize), Dim(f.MimeType), uploaded})
	}
	return Header(title) + "\n" + RenderTableAligned(headers, rows, 1)
}
