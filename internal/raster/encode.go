package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dbsmedya/blobscan/internal/graph"
)

var (
	overlayInk   = color.RGBA{A: 255}
	overlayFill  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	overlayBox   = color.RGBA{R: 255, A: 255}
	overlayPaper = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// inkGray maps a matrix cell to a gray level: foreground is black.
func inkGray(v uint8) uint8 {
	if v != 0 {
		return 0
	}
	return 255
}

func dims(matrix [][]uint8) (int, int, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return 0, 0, fmt.Errorf("cannot encode an empty matrix")
	}
	cols := len(matrix[0])
	for i, row := range matrix {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("cannot encode a jagged matrix: row %d has %d columns, expected %d", i, len(row), cols)
		}
	}
	return len(matrix), cols, nil
}

// MatrixImage renders a binary matrix as a grayscale image, one pixel per cell.
func MatrixImage(matrix [][]uint8) (*image.Gray, error) {
	rows, cols, err := dims(matrix)
	if err != nil {
		return nil, err
	}
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for r, row := range matrix {
		for c, v := range row {
			img.Pix[r*img.Stride+c] = inkGray(v)
		}
	}
	return img, nil
}

// EncodePNG writes a binary matrix as a grayscale PNG.
func EncodePNG(w io.Writer, matrix [][]uint8) error {
	img, err := MatrixImage(matrix)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteMatrix writes a binary matrix to path, choosing PGM or PNG from the extension.
func WriteMatrix(path string, matrix [][]uint8) error {
	var encode func(io.Writer, [][]uint8) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pgm":
		encode = EncodePGM
	case ".png":
		encode = EncodePNG
	default:
		return fmt.Errorf("%w: cannot write %q", ErrUnsupportedFormat, path)
	}

	return writeFile(path, func(w io.Writer) error {
		return encode(w, matrix)
	})
}

// BoundaryMask returns a rows×cols matrix with 1 at every boundary cell of comps.
func BoundaryMask(rows, cols int, comps []graph.Component) [][]uint8 {
	mask := make([][]uint8, rows)
	for r := range mask {
		mask[r] = make([]uint8, cols)
	}
	for _, c := range comps {
		for _, p := range c.Boundary {
			mask[p.Row][p.Col] = 1
		}
	}
	return mask
}

// RenderOverlay draws matrix at the given scale with foreground cells filled
// gray, boundary cells black, and each component's bounding box outlined in red.
func RenderOverlay(matrix [][]uint8, comps []graph.Component, scale int) (*image.RGBA, error) {
	rows, cols, err := dims(matrix)
	if err != nil {
		return nil, err
	}
	if scale < 1 {
		return nil, fmt.Errorf("overlay scale must be positive, got %d", scale)
	}

	img := image.NewRGBA(image.Rect(0, 0, cols*scale+1, rows*scale+1))
	fillRect(img, img.Bounds(), overlayPaper)

	cell := func(r, c int) image.Rectangle {
		return image.Rect(c*scale, r*scale, (c+1)*scale, (r+1)*scale)
	}
	for r, row := range matrix {
		for c, v := range row {
			if v != 0 {
				fillRect(img, cell(r, c), overlayFill)
			}
		}
	}

	for _, comp := range comps {
		for _, p := range comp.Boundary {
			fillRect(img, cell(p.Row, p.Col), overlayInk)
		}
		b := comp.Bounds
		strokeRect(img, b.MinCol*scale, b.MinRow*scale, (b.MaxCol+1)*scale, (b.MaxRow+1)*scale, overlayBox)
	}

	return img, nil
}

// WriteOverlay renders the overlay and writes it to path as PNG.
func WriteOverlay(path string, matrix [][]uint8, comps []graph.Component, scale int) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" {
		return fmt.Errorf("%w: overlay must be .png, got %q", ErrUnsupportedFormat, path)
	}
	img, err := RenderOverlay(matrix, comps, scale)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// strokeRect draws the outline of the inclusive rectangle (x0,y0)-(x1,y1).
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, c)
		img.SetRGBA(x, y1, c)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, c)
		img.SetRGBA(x1, y, c)
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %q: %w", path, err)
	}
	return nil
}
