package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/bugscope/bugscope/pkg/tracker"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"severity": severityLabel,
}).ParseFS(templateFS, "templates/*.html"))

// severityLabel formats a project rank for display. Unranked projects
// show a dash instead of the sentinel.
func severityLabel(rank int) string {
	if rank == tracker.Unranked {
		return "-"
	}
	return fmt.Sprintf("%d", rank)
}

type htmlData struct {
	*tracker.Report
	GeneratedAt time.Time
}

// UnreachableHTML renders the list of bugs with no path to the root
// tracker as a standalone HTML page.
func UnreachableHTML(r *tracker.Report, now time.Time) ([]byte, error) {
	return execute("unreachable.html", r, now)
}

// ProjectsHTML renders the project summary table as a standalone HTML
// page. Projects appear in the report's severity order.
func ProjectsHTML(r *tracker.Report, now time.Time) ([]byte, error) {
	return execute("projects.html", r, now)
}

func execute(name string, r *tracker.Report, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, htmlData{Report: r, GeneratedAt: now}); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
