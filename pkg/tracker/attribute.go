package tracker

// ProjectSummary accumulates the triage result for one project bug.
// Built by [Analyze] and mutated only during [Graph.Propagate] passes.
type ProjectSummary struct {
	ID       BugID
	Severity int    // rank of the project bug, Unranked if absent
	URL      string // detail-page URL
	Summary  string // summary with leading tags stripped
	BugCount int    // bugs attributed to this project so far
}

// Propagate walks the blocks edges reachable from start and increments
// the counter of every project it reaches, at most once per call. The
// projects map is keyed by the project bug id and mutated in place.
//
// Two per-call sets keep the walk honest: visited guards against cycles,
// counted guards against attributing the same project twice when several
// edge paths from start converge on it. A project therefore counts once
// per originating bug, never once per path. The start bug itself is never
// counted, even if a cycle wraps back into it.
func (g *Graph) Propagate(start BugID, projects map[BugID]*ProjectSummary) {
	visited := map[BugID]bool{start: true}
	counted := make(map[BugID]bool)

	bug, ok := g.bugs[start]
	if !ok {
		return
	}
	for _, target := range bug.Blocks {
		g.propagate(target, projects, visited, counted)
	}
}

func (g *Graph) propagate(id BugID, projects map[BugID]*ProjectSummary, visited, counted map[BugID]bool) {
	if visited[id] {
		return
	}
	visited[id] = true

	if p, ok := projects[id]; ok && !counted[id] {
		counted[id] = true
		p.BugCount++
	}

	bug, ok := g.bugs[id]
	if !ok {
		return
	}
	for _, target := range bug.Blocks {
		g.propagate(target, projects, visited, counted)
	}
}
