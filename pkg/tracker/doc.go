// Package tracker builds the in-memory blocks-graph of a Bugzilla
// meta-tracker and derives the triage report from it.
//
// # Overview
//
// The input is a flat list of bug records (id, optional alias, optional
// rank, summary, outgoing "blocks" references) as returned by a Bugzilla
// search. [Build] turns the records into a [Graph] keyed by bug id and
// locates the single root tracker bug by its alias.
//
// Two traversals derive everything the report needs:
//
//   - [Graph.BlocksRoot] answers whether a bug transitively blocks the
//     root tracker. Bugs for which this is false are unreachable: nothing
//     links them into the umbrella initiative.
//   - [Graph.Propagate] walks the blocks edges of one reachable bug and
//     increments the counter of every project bug it can reach, at most
//     once per originating bug.
//
// [Analyze] runs both traversals over the whole graph and assembles the
// [Report]: the unreachable bugs and the per-project summaries sorted by
// severity.
//
// # Edges
//
// A blocks edge points from a bug to the bug it blocks: resolving the
// source helps resolve the target. Edges may reference ids outside the
// fetched set (security bugs, other components); these are valid dead
// ends, not errors. Edges are user-entered and may form cycles, so every
// traversal carries a per-call visited set.
//
// # Concurrency
//
// A Graph is immutable after Build and safe for concurrent reads.
// Propagate mutates the summaries passed to it and must not be called
// concurrently with itself on the same summary map.
package tracker
