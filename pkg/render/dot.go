package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/bugscope/bugscope/pkg/tracker"
)

const maxLabelLen = 40

// ToDOT converts the issue graph to Graphviz DOT format. The root
// tracker gets a double outline, project bugs are filled blue, and
// unreachable bugs are dashed red. Edges follow the blocks direction,
// so arrows point toward the root.
func ToDOT(g *tracker.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph bugs {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range g.IDs() {
		bug, _ := g.Bug(id)
		fmt.Fprintf(&buf, "  %d [label=%q%s];\n", id, nodeLabel(bug), nodeStyle(g, bug))
	}

	buf.WriteString("\n")
	for _, id := range g.IDs() {
		bug, _ := g.Bug(id)
		for _, target := range bug.Blocks {
			if _, ok := g.Bug(target); !ok {
				continue
			}
			fmt.Fprintf(&buf, "  %d -> %d;\n", id, target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(b *tracker.Bug) string {
	summary := tracker.StripTags(b.Summary)
	// Truncate on rune boundaries so multi-byte summaries stay valid UTF-8.
	if runes := []rune(summary); len(runes) > maxLabelLen {
		summary = string(runes[:maxLabelLen]) + "..."
	}
	if summary == "" {
		return fmt.Sprintf("%d", b.ID)
	}
	return fmt.Sprintf("%d\n%s", b.ID, summary)
}

func nodeStyle(g *tracker.Graph, b *tracker.Bug) string {
	switch {
	case b.ID == g.Root():
		return `, peripheries=2, fillcolor=gold`
	case tracker.IsProject(b.Summary):
		return `, fillcolor=lightblue`
	case !g.BlocksRoot(b.ID):
		return `, style="rounded,filled,dashed", fillcolor=mistyrose, color=red`
	default:
		return ""
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg element so the image scales to its
// container instead of using Graphviz's point-based size attributes.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
