package tracker

import (
	"cmp"
	"slices"
	"strings"
)

// projectTag marks a bug summary as representing a sub-project.
const projectTag = "[project]"

// UnreachableBug is one bug that does not transitively block the root
// tracker. Read-only once produced.
type UnreachableBug struct {
	ID      BugID
	URL     string
	Summary string
}

// Report is the assembled triage result for one run.
type Report struct {
	// Unreachable lists bugs with no path to the root tracker, in
	// ascending id order.
	Unreachable []UnreachableBug

	// Projects lists the project summaries sorted ascending by severity.
	// Unranked projects carry severity -1 and sort first.
	Projects []*ProjectSummary

	// TotalProjectBugs is the sum of all project bug counts.
	TotalProjectBugs int
}

// UnreachableCount returns the number of unreachable bugs.
func (r *Report) UnreachableCount() int { return len(r.Unreachable) }

// ProjectCount returns the number of project bugs.
func (r *Report) ProjectCount() int { return len(r.Projects) }

// IsProject reports whether a bug summary carries the project tag.
func IsProject(summary string) bool {
	return strings.Contains(summary, projectTag)
}

// StripTags removes the leading bracketed tags from a summary, so that
// "[meta] [project] Foo" displays as "Foo". Tags after the first
// non-tag text are left alone.
func StripTags(summary string) string {
	s := strings.TrimSpace(summary)
	for strings.HasPrefix(s, "[") {
		end := strings.Index(s, "]")
		if end < 0 {
			break
		}
		s = strings.TrimSpace(s[end+1:])
	}
	return s
}

// Analyze classifies every bug in the graph as reachable or unreachable,
// attributes reachable bugs to the projects they transitively block, and
// assembles the [Report]. baseURL is the Bugzilla instance used for
// detail-page URLs.
//
// Every bug lands in exactly one bucket: either it appears in the
// unreachable list, or it contributed one count to each project it can
// reach. The root bug itself goes through the attribution pass like any
// other reachable bug.
func Analyze(g *Graph, baseURL string) *Report {
	projects := make(map[BugID]*ProjectSummary)
	for id, bug := range g.bugs {
		if IsProject(bug.Summary) {
			projects[id] = &ProjectSummary{
				ID:       id,
				Severity: bug.Rank,
				URL:      BugURL(baseURL, id),
				Summary:  StripTags(bug.Summary),
			}
		}
	}

	report := &Report{}
	for _, id := range g.IDs() {
		if !g.BlocksRoot(id) {
			bug, _ := g.Bug(id)
			report.Unreachable = append(report.Unreachable, UnreachableBug{
				ID:      id,
				URL:     BugURL(baseURL, id),
				Summary: bug.Summary,
			})
			continue
		}
		g.Propagate(id, projects)
	}

	report.Projects = make([]*ProjectSummary, 0, len(projects))
	for _, p := range projects {
		report.Projects = append(report.Projects, p)
	}
	// Map iteration order is random, so ties on severity break on id to
	// keep the report stable across runs.
	slices.SortStableFunc(report.Projects, func(a, b *ProjectSummary) int {
		if c := cmp.Compare(a.Severity, b.Severity); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	for _, p := range report.Projects {
		report.TotalProjectBugs += p.BugCount
	}

	return report
}
