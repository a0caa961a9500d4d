package tracker

import (
	"slices"
	"strconv"

	"github.com/bugscope/bugscope/pkg/errors"
)

// Graph owns the full set of fetched bugs, keyed by id, together with the
// identity of the root tracker bug. The zero value is not usable - use
// [Build].
type Graph struct {
	bugs   map[BugID]*Bug
	rootID BugID
}

// Build constructs the blocks-graph from raw records.
//
// Exactly one record must carry rootAlias as its alias; zero or multiple
// matches mean the data source disagrees with the fixed-root model and
// Build fails with NO_ROOT_BUG or DUPLICATE_ROOT_BUG. A rank that is
// present but not an integer fails with INVALID_RANK; an absent rank
// becomes [Unranked].
//
// Duplicate record ids are not expected from the tracker; if they occur,
// the last record wins.
func Build(records []Record, rootAlias string) (*Graph, error) {
	if rootAlias == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "root alias must not be empty")
	}

	bugs := make(map[BugID]*Bug, len(records))
	var rootID BugID
	rootFound := false

	for _, rec := range records {
		id := BugID(rec.ID)

		rank := Unranked
		if rec.Rank != "" {
			n, err := strconv.Atoi(rec.Rank)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidRank, "bug %d: rank %q is not an integer", rec.ID, rec.Rank)
			}
			rank = n
		}

		if rec.Alias == rootAlias {
			if rootFound {
				return nil, errors.New(errors.ErrCodeDuplicateRootBug, "alias %q carried by bugs %d and %d", rootAlias, rootID, id)
			}
			rootFound = true
			rootID = id
		}

		blocks := make([]BugID, len(rec.Blocks))
		for i, b := range rec.Blocks {
			blocks[i] = BugID(b)
		}

		bugs[id] = &Bug{
			ID:      id,
			Alias:   rec.Alias,
			Rank:    rank,
			Summary: rec.Summary,
			Blocks:  blocks,
		}
	}

	if !rootFound {
		return nil, errors.New(errors.ErrCodeNoRootBug, "no bug carries the root alias %q", rootAlias)
	}

	return &Graph{bugs: bugs, rootID: rootID}, nil
}

// Root returns the id of the root tracker bug.
func (g *Graph) Root() BugID { return g.rootID }

// Bug returns the bug with the given id and true, or nil and false if the
// id is outside the fetched set.
func (g *Graph) Bug(id BugID) (*Bug, bool) {
	b, ok := g.bugs[id]
	return b, ok
}

// Size returns the number of bugs in the graph.
func (g *Graph) Size() int { return len(g.bugs) }

// EdgeCount returns the total number of blocks edges, including edges
// pointing outside the fetched set.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, b := range g.bugs {
		n += len(b.Blocks)
	}
	return n
}

// IDs returns all bug ids in ascending order for deterministic iteration.
func (g *Graph) IDs() []BugID {
	ids := make([]BugID, 0, len(g.bugs))
	for id := range g.bugs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
