package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/blobscan/internal/config"
	"github.com/dbsmedya/blobscan/internal/graph"
	"github.com/dbsmedya/blobscan/internal/logger"
	"github.com/dbsmedya/blobscan/internal/raster"
	"github.com/dbsmedya/blobscan/internal/report"
)

// Analyze-specific flags
var (
	analyzeStrategy      string
	analyzeFormat        string
	analyzeThreshold     int
	analyzeThresholdMode string
	analyzeMask          string
	analyzeOverlay       string
	analyzeNoShapes      bool
	analyzeNoColor       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Find connected objects in an image",
	Long: `Analyze thresholds the image, builds the pixel graph and reports every
4-connected object in discovery order (row-major scan of the image).

Each object is listed with its area in pixels and its boundary pixels,
the ones touching the background or the image edge.

Example:
  blobscan analyze shapes.png
  blobscan analyze scan.pgm --format json --strategy queue
  blobscan analyze shapes.png --overlay out.png --mask edges.pgm`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeStrategy, "strategy", "",
		"Traversal worklist (stack, queue)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "",
		"Report format (text, json, summary)")
	analyzeCmd.Flags().IntVar(&analyzeThreshold, "threshold", 0,
		"Fixed threshold: gray levels below this value are foreground")
	analyzeCmd.Flags().StringVar(&analyzeThresholdMode, "threshold-mode", "",
		"Threshold mode (fixed, mean)")
	analyzeCmd.Flags().StringVar(&analyzeMask, "mask", "",
		"Write the boundary mask to this path (.pgm or .png)")
	analyzeCmd.Flags().StringVar(&analyzeOverlay, "overlay", "",
		"Write a bounding box overlay to this path (.png)")
	analyzeCmd.Flags().BoolVar(&analyzeNoShapes, "no-shapes", false,
		"Skip shape classification")
	analyzeCmd.Flags().BoolVar(&analyzeNoColor, "no-color", false,
		"Disable colored output")
}

func analyzeOverrides() config.Overrides {
	return config.Overrides{
		Strategy:      analyzeStrategy,
		Format:        analyzeFormat,
		ThresholdMode: analyzeThresholdMode,
		Threshold:     analyzeThreshold,
		MaskPath:      analyzeMask,
		OverlayPath:   analyzeOverlay,
		NoShapes:      analyzeNoShapes,
		NoColor:       analyzeNoColor,
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(cmd, analyzeOverrides())
	if err != nil {
		return err
	}

	strategy, err := graph.ParseStrategy(cfg.Analysis.Strategy)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	base, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer base.Sync()

	runID := uuid.NewString()
	log := base.WithRun(runID).WithImage(path)

	start := time.Now()
	matrix, imageFormat, err := loadMatrix(path, cfg.Input)
	if err != nil {
		log.Errorw("failed to load image", "error", err)
		return err
	}
	log.Debugw("image thresholded", "format", imageFormat, "rows", len(matrix), "cols", len(matrix[0]))

	g, err := graph.Build(matrix)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}

	comps := graph.NewAnalyzer(g,
		graph.WithStrategy(strategy),
		graph.WithShapes(cfg.Analysis.ClassifyShapes),
	).Run()
	elapsed := time.Since(start)

	for _, c := range comps {
		log.WithComponent(c.ID).WithFields(componentFields(c)).Debug("component found")
	}
	log.Infow("analysis complete",
		"components", len(comps),
		"foreground", g.Len(),
		"strategy", strategy.String(),
		"elapsed", elapsed,
	)

	if err := writeRasters(log, cfg.Output, matrix, comps); err != nil {
		return err
	}

	res := &report.Result{
		RunID:      runID,
		Image:      path,
		Rows:       g.Rows(),
		Cols:       g.Cols(),
		Strategy:   strategy.String(),
		Foreground: g.Len(),
		Links:      g.Links(),
		Components: comps,
		Elapsed:    elapsed,
	}
	return report.Write(cmd.OutOrStdout(), format, res, report.Options{
		Color:        cfg.Output.Color,
		ShowBoundary: cfg.Output.ShowBoundary,
	})
}

// componentFields lists the per-component values worth logging.
func componentFields(c graph.Component) map[string]interface{} {
	fields := map[string]interface{}{
		"area":     c.Area,
		"boundary": len(c.Boundary),
		"bounds":   fmt.Sprintf("%dx%d@%s", c.Bounds.Height(), c.Bounds.Width(), graph.Coord{Row: c.Bounds.MinRow, Col: c.Bounds.MinCol}),
	}
	if c.Shape != "" {
		fields["shape"] = string(c.Shape)
	}
	return fields
}

// writeRasters emits the optional boundary mask and overlay images.
func writeRasters(log *logger.Logger, out config.OutputConfig, matrix [][]uint8, comps []graph.Component) error {
	if out.MaskPath != "" {
		mask := raster.BoundaryMask(len(matrix), len(matrix[0]), comps)
		if err := raster.WriteMatrix(out.MaskPath, mask); err != nil {
			return fmt.Errorf("failed to write boundary mask: %w", err)
		}
		log.Infow("boundary mask written", "path", out.MaskPath)
	}

	if out.OverlayPath != "" {
		if err := raster.WriteOverlay(out.OverlayPath, matrix, comps, out.OverlayScale); err != nil {
			return fmt.Errorf("failed to write overlay: %w", err)
		}
		log.Infow("overlay written", "path", out.OverlayPath, "scale", out.OverlayScale)
	}
	return nil
}
