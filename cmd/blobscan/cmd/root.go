package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/blobscan/internal/config"
	"github.com/dbsmedya/blobscan/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags shared by every command
var (
	cfgFile   string
	envFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "blobscan",
	Short: "Connected-component analysis for binary images",
	Long: `blobscan thresholds an image into foreground and background pixels,
builds a sparse 4-connected graph of the foreground, and reports every
connected object with its area and boundary pixels.

Features:
  - PNG, JPEG, GIF, BMP, TIFF, WebP and PGM (P2/P5) input
  - Fixed or mean-relative thresholding, optional resize
  - Stack or queue traversal with identical results
  - Bounding boxes and a coarse RECTANGLE/CIRCLE classification
  - Boundary mask and overlay image output`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "blobscan.yaml",
		"Path to configuration file (defaults apply when the default file is absent)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "",
		"Load environment variables from a .env file before reading the config")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// loadConfig reads the configuration, applies flag overrides and validates
// the result. A missing config file is only an error when --config was given.
func loadConfig(cmd *cobra.Command, o config.Overrides) (*config.Config, error) {
	if envFile != "" {
		if err := config.LoadEnvFile(envFile); err != nil {
			return nil, err
		}
	}

	load := config.LoadOptional
	if cmd.Flags().Changed("config") {
		load = config.Load
	}
	cfg, err := load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	o.LogLevel = logLevel
	o.LogFormat = logFormat
	cfg.ApplyOverrides(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the command logger from the validated config.
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
