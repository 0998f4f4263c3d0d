package cmd

import (
	"fmt"

	"github.com/dbsmedya/blobscan/internal/config"
	"github.com/dbsmedya/blobscan/internal/raster"
)

// loadMatrix decodes the image at path and thresholds it into a binary
// matrix, resizing first when the config asks for a fixed grid.
func loadMatrix(path string, in config.InputConfig) ([][]uint8, string, error) {
	img, format, err := raster.Open(path)
	if err != nil {
		return nil, "", err
	}

	if in.Resize.Enabled() {
		img = raster.Resize(img, in.Resize.Rows, in.Resize.Cols)
	}

	matrix, err := raster.Binarize(img, in.Threshold.Threshold())
	if err != nil {
		return nil, "", fmt.Errorf("failed to threshold %s: %w", path, err)
	}
	return matrix, format, nil
}
