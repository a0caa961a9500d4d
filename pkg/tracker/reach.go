package tracker

// BlocksRoot reports whether the bug transitively blocks the root tracker.
// The root itself always reports true. Ids outside the fetched set are
// dead ends and report false.
//
// Blocks edges are user-entered and can form cycles, so the walk carries a
// per-call visited set: an id already seen in this call reports false
// without being re-explored, which leaves the boolean result unchanged and
// guarantees termination.
func (g *Graph) BlocksRoot(id BugID) bool {
	return g.blocksRoot(id, make(map[BugID]bool))
}

func (g *Graph) blocksRoot(id BugID, visited map[BugID]bool) bool {
	if id == g.rootID {
		return true
	}
	if visited[id] {
		return false
	}
	visited[id] = true

	bug, ok := g.bugs[id]
	if !ok {
		// Could reference a security bug or a bug outside the
		// queried component.
		return false
	}

	for _, target := range bug.Blocks {
		if g.blocksRoot(target, visited) {
			return true
		}
	}
	return false
}
