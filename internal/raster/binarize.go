package raster

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ThresholdMode selects how the foreground cut-off is chosen.
type ThresholdMode string

const (
	// ThresholdFixed marks gray levels below a fixed value as foreground.
	ThresholdFixed ThresholdMode = "fixed"
	// ThresholdMean marks gray levels below the image mean minus a margin as foreground.
	ThresholdMean ThresholdMode = "mean"
)

// Threshold configures Binarize.
type Threshold struct {
	Mode   ThresholdMode
	Value  int // fixed cut-off; 128 is the midpoint of the 8-bit range
	Margin int // subtracted from the mean in ThresholdMean mode
}

// DefaultThreshold returns the midpoint cut-off.
func DefaultThreshold() Threshold {
	return Threshold{Mode: ThresholdFixed, Value: 128, Margin: 5}
}

// Binarize converts img to a rows×cols matrix with 1 for foreground (dark) pixels.
func Binarize(img image.Image, th Threshold) ([][]uint8, error) {
	gray := toGray(img)
	b := gray.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	cut, err := cutoff(gray, th)
	if err != nil {
		return nil, err
	}

	matrix := make([][]uint8, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := make([]uint8, b.Dx())
		for x := 0; x < b.Dx(); x++ {
			if float64(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y) < cut {
				row[x] = 1
			}
		}
		matrix[y] = row
	}
	return matrix, nil
}

// cutoff returns the gray level below which a pixel is foreground.
func cutoff(gray *image.Gray, th Threshold) (float64, error) {
	switch th.Mode {
	case ThresholdFixed, "":
		return float64(th.Value), nil
	case ThresholdMean:
		return Mean(gray) - float64(th.Margin), nil
	default:
		return 0, fmt.Errorf("unknown threshold mode %q", th.Mode)
	}
}

// Mean returns the average gray level of img.
func Mean(img *image.Gray) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += uint64(img.GrayAt(x, y).Y)
		}
	}
	return float64(sum) / float64(b.Dx()*b.Dy())
}

// Resize scales img to rows×cols with nearest-neighbour sampling.
func Resize(img image.Image, rows, cols int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, cols, rows))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.SetGray(x, y, color.GrayModel.Convert(img.At(x, y)).(color.Gray))
		}
	}
	return gray
}
