package render

import (
	"strings"
	"time"

	"github.com/fyrsmithlabs/projectdeck/internal/format"
	"github.com/fyrsmithlabs/projectdeck/internal/project"
)

// Row is one shaped project. Text fields are raw; surfaces escape them for
// their medium (TableBodyHTML for markup).
type Row struct {
	ID          project.ID
	Name        string
	Command     string
	Status      project.Status
	StatusClass string
	Icon        format.Icon
	Created     string
	CodeURL     string // empty when the project has no code link
	CanEdit     bool
	CanDelete   bool
}

// Counters are the aggregate figures shown above the table.
type Counters struct {
	Total     int
	Completed int
	Failed    int
}

// View is the complete shaped state of the project list.
type View struct {
	Rows     []Row
	Counters Counters
}

// Empty reports whether there are no projects.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// TableVisible reports whether the table body is shown.
func (v View) TableVisible() bool {
	return !v.Empty()
}

// PlaceholderVisible reports whether the empty-state placeholder is shown.
func (v View) PlaceholderVisible() bool {
	return v.Empty()
}

// Shape builds the View for projects. Rows keep the input order and counters
// are recomputed from scratch. loc is used for timestamp display; nil means
// time.Local.
func Shape(projects []project.Project, loc *time.Location) View {
	v := View{Rows: make([]Row, 0, len(projects))}
	for _, p := range projects {
		v.Rows = append(v.Rows, shapeRow(p, loc))

		switch p.Status {
		case project.StatusCompleted:
			v.Counters.Completed++
		case project.StatusFailed:
			v.Counters.Failed++
		}
	}
	v.Counters.Total = len(projects)
	return v
}

func shapeRow(p project.Project, loc *time.Location) Row {
	r := Row{
		ID:          p.ID,
		Name:        p.Name,
		Command:     p.Command,
		Status:      p.Status,
		StatusClass: format.StatusClass(p.Status),
		Icon:        format.StatusIcon(p.Status),
		Created:     format.FormatTimestamp(p.CreatedAt, loc),
		CanEdit:     p.Status.Editable(),
		CanDelete:   true,
	}
	if p.HasCode() {
		r.CodeURL = p.GithubURL
	}
	return r
}

// SafeHref returns url when it is an absolute http(s) link and "#" otherwise.
// The result still has to be escaped for attribute position.
func SafeHref(url string) string {
	lower := strings.ToLower(strings.TrimSpace(url))
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return url
	}
	return "#"
}
