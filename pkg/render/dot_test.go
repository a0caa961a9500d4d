package render

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bugscope/bugscope/pkg/tracker"
)

func testGraph(t *testing.T) *tracker.Graph {
	t.Helper()
	g, err := tracker.Build([]tracker.Record{
		{ID: 1, Alias: "wr-projects", Summary: "[meta] tracker"},
		{ID: 2, Summary: "[project] caching", Blocks: []int{1}},
		{ID: 3, Summary: "cache eviction is slow", Blocks: []int{2, 99}},
		{ID: 4, Summary: "orphaned bug", Blocks: []int{99}},
	}, tracker.DefaultRootAlias)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(t))

	if !strings.HasPrefix(dot, "digraph bugs {") {
		t.Errorf("unexpected DOT prefix: %s", dot[:20])
	}
	if !strings.Contains(dot, "3 -> 2;") {
		t.Error("missing edge 3 -> 2")
	}
	// Edges to bugs outside the fetched set are dropped.
	if strings.Contains(dot, "-> 99") {
		t.Error("edge to missing bug 99 should be omitted")
	}
	// Root styling.
	if !strings.Contains(dot, "peripheries=2") {
		t.Error("root node missing double outline")
	}
	// Project styling.
	if !strings.Contains(dot, "fillcolor=lightblue") {
		t.Error("project node missing fill")
	}
	// Unreachable styling.
	if !strings.Contains(dot, "fillcolor=mistyrose") {
		t.Error("unreachable node missing fill")
	}
}

func TestToDOTLabels(t *testing.T) {
	dot := ToDOT(testGraph(t))

	// Leading tags are stripped from labels.
	if strings.Contains(dot, "[project]") {
		t.Error("project tag should be stripped from label")
	}
	if !strings.Contains(dot, "caching") {
		t.Error("missing project label text")
	}
}

func TestToDOTTruncatesLongSummary(t *testing.T) {
	long := strings.Repeat("x", 100)
	g, err := tracker.Build([]tracker.Record{
		{ID: 1, Alias: "wr-projects", Summary: long},
	}, tracker.DefaultRootAlias)
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(g)
	if strings.Contains(dot, long) {
		t.Error("long summary should be truncated")
	}
	if !strings.Contains(dot, "...") {
		t.Error("truncated summary missing ellipsis")
	}
}

func TestToDOTTruncatesOnRuneBoundary(t *testing.T) {
	// Three-byte runes put the old byte-based cutoff mid-rune.
	long := strings.Repeat("日", 50)
	g, err := tracker.Build([]tracker.Record{
		{ID: 1, Alias: "wr-projects", Summary: long},
	}, tracker.DefaultRootAlias)
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(g)
	if !utf8.ValidString(dot) {
		t.Fatal("DOT output is not valid UTF-8")
	}
	if !strings.Contains(dot, strings.Repeat("日", 40)+"...") {
		t.Error("summary should keep 40 runes before the ellipsis")
	}
	if strings.Contains(dot, strings.Repeat("日", 41)) {
		t.Error("summary should be truncated at 40 runes")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz render in short mode")
	}

	svg, err := RenderSVG(context.Background(), ToDOT(testGraph(t)))
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output missing svg element")
	}
	if !strings.Contains(string(svg), `viewBox="0 0 `) {
		t.Error("viewBox not normalized")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz render in short mode")
	}

	_, err := RenderSVG(context.Background(), "not a graph")
	if err == nil {
		t.Fatal("expected error for invalid DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00">`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not rewritten: %s", out)
	}
	if strings.Contains(out, "pt") {
		t.Errorf("point units survived: %s", out)
	}

	// SVG without a viewBox passes through untouched.
	plain := []byte(`<svg>`)
	if got := string(normalizeViewBox(plain)); got != `<svg>` {
		t.Errorf("plain svg modified: %s", got)
	}
}
