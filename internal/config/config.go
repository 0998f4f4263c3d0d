// Package config provides configuration structures and loading for blobscan.
package config

import "github.com/dbsmedya/blobscan/internal/raster"

// Config represents the complete application configuration.
type Config struct {
	Input    InputConfig    `yaml:"input" mapstructure:"input"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// InputConfig controls how a source image becomes a binary matrix.
type InputConfig struct {
	Threshold ThresholdConfig `yaml:"threshold" mapstructure:"threshold"`
	Resize    ResizeConfig    `yaml:"resize" mapstructure:"resize"`
}

// ThresholdConfig selects which gray levels count as foreground.
type ThresholdConfig struct {
	Mode   string `yaml:"mode" mapstructure:"mode"`     // fixed or mean
	Value  int    `yaml:"value" mapstructure:"value"`   // fixed mode: gray < value is foreground
	Margin int    `yaml:"margin" mapstructure:"margin"` // mean mode: gray < mean-margin is foreground
}

// Threshold converts the settings to the form raster.Binarize takes.
func (t ThresholdConfig) Threshold() raster.Threshold {
	return raster.Threshold{
		Mode:   raster.ThresholdMode(t.Mode),
		Value:  t.Value,
		Margin: t.Margin,
	}
}

// ResizeConfig scales the image to a fixed grid before thresholding.
// Zero rows and cols keep the native size.
type ResizeConfig struct {
	Rows int `yaml:"rows" mapstructure:"rows"`
	Cols int `yaml:"cols" mapstructure:"cols"`
}

// Enabled reports whether a resize target is configured.
func (r ResizeConfig) Enabled() bool {
	return r.Rows > 0 && r.Cols > 0
}

// AnalysisConfig represents component analysis settings.
type AnalysisConfig struct {
	Strategy       string `yaml:"strategy" mapstructure:"strategy"` // stack or queue
	ClassifyShapes bool   `yaml:"classify_shapes" mapstructure:"classify_shapes"`
}

// OutputConfig represents report and derived raster settings.
type OutputConfig struct {
	Format       string `yaml:"format" mapstructure:"format"`             // text, json, or summary
	MaskPath     string `yaml:"mask_path" mapstructure:"mask_path"`       // boundary mask (.pgm or .png)
	OverlayPath  string `yaml:"overlay_path" mapstructure:"overlay_path"` // bounding box overlay (.png)
	OverlayScale int    `yaml:"overlay_scale" mapstructure:"overlay_scale"`
	ShowBoundary bool   `yaml:"show_boundary" mapstructure:"show_boundary"` // list boundary pixels in text output
	Color        bool   `yaml:"color" mapstructure:"color"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	th := raster.DefaultThreshold()
	return &Config{
		Input: InputConfig{
			Threshold: ThresholdConfig{
				Mode:   string(th.Mode),
				Value:  th.Value,
				Margin: th.Margin,
			},
		},
		Analysis: AnalysisConfig{
			Strategy:       "stack",
			ClassifyShapes: true,
		},
		Output: OutputConfig{
			Format:       "text",
			OverlayScale: 10,
			ShowBoundary: true,
			Color:        true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
