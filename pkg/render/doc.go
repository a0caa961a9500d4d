// Package render turns a triage [tracker.Report] into output artifacts.
//
// Three formats are supported:
//   - HTML: embedded templates for the unreachable-bug list and the
//     project summary table
//   - DOT: Graphviz source for the full issue graph
//   - SVG: the DOT graph rendered through Graphviz
package render
