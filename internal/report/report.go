// Package report renders component analysis results as a plain-text listing,
// a JSON document, or a side-by-side summary panel.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dbsmedya/blobscan/internal/graph"
)

// Format names an output renderer.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
)

// ParseFormat maps a config or flag value to a Format. Empty selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatSummary:
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json or summary)", s)
	}
}

// Result is the outcome of analyzing one image.
type Result struct {
	RunID      string
	Image      string
	Rows       int
	Cols       int
	Strategy   string
	Foreground int // graph node count
	Links      int // undirected edges
	Components []graph.Component
	Elapsed    time.Duration // omitted from output when zero
}

// Options tunes the human-readable renderers.
type Options struct {
	Color        bool
	ShowBoundary bool
}

// Write renders res to w in the given format.
func Write(w io.Writer, format Format, res *Result, opts Options) error {
	switch format {
	case FormatText, "":
		return writeText(w, res, opts)
	case FormatJSON:
		return writeJSON(w, res)
	case FormatSummary:
		return writeSummary(w, res, opts)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
