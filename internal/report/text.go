package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/dbsmedya/blobscan/internal/graph"
)

var (
	headingStyle = color.New(color.FgCyan, color.OpBold)
	totalStyle   = color.New(color.OpBold)
	shapeStyles  = map[graph.Shape]color.Style{
		graph.ShapeRectangle: color.New(color.FgGreen),
		graph.ShapeCircle:    color.New(color.FgBlue),
		graph.ShapeUnknown:   color.New(color.FgYellow),
	}
)

// painter applies terminal styles only when color output is enabled.
type painter bool

func (p painter) paint(s color.Style, text string) string {
	if !p || s == nil {
		return text
	}
	return s.Sprint(text)
}

func writeText(w io.Writer, res *Result, opts Options) error {
	p := painter(opts.Color)
	bw := bufio.NewWriter(w)

	for _, c := range res.Components {
		heading := fmt.Sprintf("Object %d", c.ID)
		if c.Shape != "" {
			fmt.Fprintf(bw, "%s: %s\n", p.paint(headingStyle, heading), p.paint(shapeStyles[c.Shape], string(c.Shape)))
		} else {
			fmt.Fprintln(bw, p.paint(headingStyle, heading))
		}
		fmt.Fprintf(bw, "Area: %d\n\n", c.Area)

		if opts.ShowBoundary {
			fmt.Fprintf(bw, "Boundary pixels: %s\n\n", joinCoords(c.Boundary))
		}
	}

	fmt.Fprintln(bw, p.paint(totalStyle, fmt.Sprintf("Total objects detected = %d", len(res.Components))))
	return bw.Flush()
}

func joinCoords(coords []graph.Coord) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// WriteGrid prints matrix one row per line with '#' for foreground and '.' for background.
func WriteGrid(w io.Writer, matrix [][]uint8) error {
	bw := bufio.NewWriter(w)
	for _, row := range matrix {
		for _, v := range row {
			if v != 0 {
				bw.WriteByte('#')
			} else {
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
