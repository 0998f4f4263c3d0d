package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/blobscan/internal/config"
	"github.com/dbsmedya/blobscan/internal/graph"
	"github.com/dbsmedya/blobscan/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <image>",
	Short: "Show the thresholded matrix and graph statistics",
	Long: `Inspect prints the binary matrix produced from the image ('#' for
foreground, '.' for background) followed by the size of the pixel graph.

Use it to tune the threshold settings before running analyze.

Example:
  blobscan inspect shapes.png`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(cmd, config.Overrides{})
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()
	log = log.WithImage(path)

	matrix, format, err := loadMatrix(path, cfg.Input)
	if err != nil {
		log.Errorw("failed to load image", "error", err)
		return err
	}

	g, err := graph.Build(matrix)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("graph is inconsistent: %w", err)
	}

	log.Debugw("graph built", "nodes", g.Len(), "links", g.Links())

	out := cmd.OutOrStdout()
	if err := report.WriteGrid(out, matrix); err != nil {
		return err
	}

	head := "none"
	if !g.Empty() {
		head = g.Node(g.Head()).Pos.String()
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Image:  %s (%s)\n", path, format)
	fmt.Fprintf(out, "Grid:   %d x %d\n", g.Rows(), g.Cols())
	fmt.Fprintf(out, "Nodes:  %d\n", g.Len())
	fmt.Fprintf(out, "Links:  %d\n", g.Links())
	fmt.Fprintf(out, "Head:   %s\n", head)
	return nil
}
