package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/blobscan/internal/graph"
)

// maxTableRows caps the component table in the summary panel.
const maxTableRows = 20

// Summary returns the headline figures of res in display order.
func Summary(res *Result) *orderedmap.OrderedMap[string, string] {
	m := orderedmap.NewOrderedMap[string, string]()
	if res.Image != "" {
		m.Set("Image", res.Image)
	}
	m.Set("Grid", fmt.Sprintf("%d x %d", res.Rows, res.Cols))
	m.Set("Foreground", fmt.Sprintf("%d px", res.Foreground))
	m.Set("Links", fmt.Sprintf("%d", res.Links))
	if res.Strategy != "" {
		m.Set("Strategy", res.Strategy)
	}
	m.Set("Objects", fmt.Sprintf("%d", len(res.Components)))

	if len(res.Components) > 0 {
		largest := res.Components[0]
		for _, c := range res.Components[1:] {
			if c.Area > largest.Area {
				largest = c
			}
		}
		m.Set("Largest", fmt.Sprintf("#%d (%d px)", largest.ID, largest.Area))
	}
	if res.Elapsed > 0 {
		m.Set("Elapsed", res.Elapsed.String())
	}
	return m
}

// ShapeCounts tallies components per shape, in first-seen order.
// Unclassified components are not counted.
func ShapeCounts(comps []graph.Component) *orderedmap.OrderedMap[string, string] {
	counts := orderedmap.NewOrderedMap[string, int]()
	for _, c := range comps {
		if c.Shape == "" {
			continue
		}
		n, _ := counts.Get(string(c.Shape))
		counts.Set(string(c.Shape), n+1)
	}

	out := orderedmap.NewOrderedMap[string, string]()
	for el := counts.Front(); el != nil; el = el.Next() {
		out.Set(el.Key, fmt.Sprintf("%d", el.Value))
	}
	return out
}

func writeSummary(w io.Writer, res *Result, opts Options) error {
	p := painter(opts.Color)

	right := section(p, "Summary", Summary(res))
	if shapes := ShapeCounts(res.Components); shapes.Len() > 0 {
		right = append(right, "")
		right = append(right, section(p, "Shapes", shapes)...)
	}

	bw := bufio.NewWriter(w)
	sideBySide(bw, componentTable(res.Components), right, 4)
	return bw.Flush()
}

// section renders an ordered key/value block under a bracketed title.
func section(p painter, title string, fields *orderedmap.OrderedMap[string, string]) []string {
	heading := fmt.Sprintf("[ %s ]", title)
	lines := []string{
		p.paint(headingStyle, heading),
		strings.Repeat("-", runewidth.StringWidth(heading)),
	}

	keyWidth := 0
	for el := fields.Front(); el != nil; el = el.Next() {
		keyWidth = max(keyWidth, runewidth.StringWidth(el.Key)+1)
	}
	for el := fields.Front(); el != nil; el = el.Next() {
		lines = append(lines, runewidth.FillRight(el.Key+":", keyWidth)+" "+el.Value)
	}
	return lines
}

// componentTable lays out one row per component with aligned columns.
func componentTable(comps []graph.Component) []string {
	header := []string{"ID", "AREA", "EDGE", "BOX", "SHAPE"}
	rows := [][]string{header}
	for i, c := range comps {
		if i == maxTableRows {
			rows = append(rows, []string{"...", "", "", "", ""})
			break
		}
		shape := string(c.Shape)
		if shape == "" {
			shape = "-"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.ID),
			fmt.Sprintf("%d", c.Area),
			fmt.Sprintf("%d", len(c.Boundary)),
			fmt.Sprintf("%dx%d@%s", c.Bounds.Height(), c.Bounds.Width(), graph.Coord{Row: c.Bounds.MinRow, Col: c.Bounds.MinCol}),
			shape,
		})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
	return lines
}

// sideBySide prints two blocks of lines next to each other.
// padding is the minimum number of spaces between the columns.
func sideBySide(w io.Writer, left, right []string, padding int) {
	leftWidth := 0
	for _, line := range left {
		leftWidth = max(leftWidth, visualWidth(line))
	}

	height := max(len(left), len(right))
	for i := 0; i < height; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		if r == "" {
			fmt.Fprintln(w, strings.TrimRight(l, " "))
			continue
		}
		fmt.Fprint(w, l)
		fmt.Fprint(w, strings.Repeat(" ", leftWidth-visualWidth(l)+padding))
		fmt.Fprintln(w, r)
	}
}

// visualWidth is the terminal column width of s, ignoring color escape codes.
func visualWidth(s string) int {
	return runewidth.StringWidth(color.ClearCode(s))
}
