package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/blobscan/internal/config"
	"github.com/dbsmedya/blobscan/internal/graph"
)

var validateImage string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and optionally an input image",
	Long: `Validate checks the configuration file and, when --image is given,
that the image decodes and thresholds into a well-formed matrix.

Checks performed:
  - Configuration syntax and value ranges
  - Image decoding (with --image)
  - Matrix shape and graph link symmetry (with --image)

Example:
  blobscan validate --config blobscan.yaml
  blobscan validate --image shapes.png`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateImage, "image", "",
		"Also check that this image can be analyzed")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd, config.Overrides{})
	if err != nil {
		fmt.Fprintf(out, "❌ Configuration invalid: %v\n", err)
		return fmt.Errorf("validation failed: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()
	log.Info("Starting validation checks...")

	fmt.Fprintf(out, "=== Configuration Validation ===\n")
	fmt.Fprintf(out, "Config file: %s\n", GetConfigFile())
	fmt.Fprintf(out, "Threshold:   %s (value %d, margin %d)\n",
		cfg.Input.Threshold.Mode, cfg.Input.Threshold.Value, cfg.Input.Threshold.Margin)
	fmt.Fprintf(out, "Strategy:    %s\n", cfg.Analysis.Strategy)
	fmt.Fprintf(out, "✅ Configuration is valid\n")

	if validateImage == "" {
		return nil
	}

	fmt.Fprintf(out, "\n--- Image: %s ---\n", validateImage)
	log = log.WithImage(validateImage)
	matrix, format, err := loadMatrix(validateImage, cfg.Input)
	if err != nil {
		log.Errorw("image check failed", "error", err)
		fmt.Fprintf(out, "❌ Decode failed: %v\n", err)
		return fmt.Errorf("validation failed: %w", err)
	}

	g, err := graph.Build(matrix)
	if err != nil {
		fmt.Fprintf(out, "❌ Graph build failed: %v\n", err)
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := g.Validate(); err != nil {
		fmt.Fprintf(out, "❌ Graph inconsistent: %v\n", err)
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "Format:      %s\n", format)
	fmt.Fprintf(out, "Grid:        %d x %d\n", g.Rows(), g.Cols())
	fmt.Fprintf(out, "Foreground:  %d px\n", g.Len())
	log.Debugw("image check passed", "rows", g.Rows(), "cols", g.Cols(), "foreground", g.Len())
	fmt.Fprintf(out, "✅ Image can be analyzed\n")
	return nil
}
