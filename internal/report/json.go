package report

import (
	"encoding/json"
	"io"

	"github.com/dbsmedya/blobscan/internal/graph"
)

type jsonReport struct {
	RunID      string          `json:"run_id,omitempty"`
	Image      string          `json:"image,omitempty"`
	Rows       int             `json:"rows"`
	Cols       int             `json:"cols"`
	Strategy   string          `json:"strategy,omitempty"`
	Foreground int             `json:"foreground"`
	Links      int             `json:"links"`
	Total      int             `json:"total"`
	ElapsedMS  float64         `json:"elapsed_ms,omitempty"`
	Components []jsonComponent `json:"components"`
}

type jsonComponent struct {
	ID       int        `json:"id"`
	Area     int        `json:"area"`
	Shape    string     `json:"shape,omitempty"`
	Bounds   jsonBounds `json:"bounds"`
	Boundary [][2]int   `json:"boundary"`
}

type jsonBounds struct {
	MinRow int `json:"min_row"`
	MaxRow int `json:"max_row"`
	MinCol int `json:"min_col"`
	MaxCol int `json:"max_col"`
}

func writeJSON(w io.Writer, res *Result) error {
	out := jsonReport{
		RunID:      res.RunID,
		Image:      res.Image,
		Rows:       res.Rows,
		Cols:       res.Cols,
		Strategy:   res.Strategy,
		Foreground: res.Foreground,
		Links:      res.Links,
		Total:      len(res.Components),
		ElapsedMS:  float64(res.Elapsed.Microseconds()) / 1000,
		Components: make([]jsonComponent, 0, len(res.Components)),
	}
	for _, c := range res.Components {
		out.Components = append(out.Components, toJSONComponent(c))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONComponent(c graph.Component) jsonComponent {
	boundary := make([][2]int, len(c.Boundary))
	for i, p := range c.Boundary {
		boundary[i] = [2]int{p.Row, p.Col}
	}
	return jsonComponent{
		ID:    c.ID,
		Area:  c.Area,
		Shape: string(c.Shape),
		Bounds: jsonBounds{
			MinRow: c.Bounds.MinRow,
			MaxRow: c.Bounds.MaxRow,
			MinCol: c.Bounds.MinCol,
			MaxCol: c.Bounds.MaxCol,
		},
		Boundary: boundary,
	}
}
