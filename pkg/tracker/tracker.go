package tracker

import (
	"fmt"
	"strings"
)

// DefaultRootAlias is the alias of the root tracker bug in the source
// Bugzilla instance. Overridable per run through the pipeline options.
const DefaultRootAlias = "wr-projects"

// Unranked is the rank sentinel for bugs without a rank field.
// It sorts before every real rank, so unranked projects surface first.
const Unranked = -1

// BugID identifies a bug. IDs are opaque integers assigned by the bug
// tracker and are globally unique within one instance.
type BugID int

// Record is one raw bug record as delivered by the input collaborator.
// Rank is kept as a string because the tracker serves it in several
// shapes; [Build] parses it and rejects non-integer values.
type Record struct {
	ID      int
	Alias   string
	Rank    string
	Summary string
	Blocks  []int
}

// Bug is one node of the blocks-graph. Bugs are created once by [Build]
// and never mutated afterwards.
type Bug struct {
	ID      BugID
	Alias   string
	Rank    int
	Summary string
	Blocks  []BugID // bugs this bug blocks, in input order
}

// BugURL returns the detail-page URL for a bug on the given Bugzilla
// instance.
func BugURL(baseURL string, id BugID) string {
	return fmt.Sprintf("%s/show_bug.cgi?id=%d", strings.TrimSuffix(baseURL, "/"), id)
}
