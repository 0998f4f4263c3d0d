package config

import (
	"testing"

	"github.com/dbsmedya/blobscan/internal/raster"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test input defaults
	if cfg.Input.Threshold.Mode != "fixed" {
		t.Errorf("expected threshold mode 'fixed', got %s", cfg.Input.Threshold.Mode)
	}
	if cfg.Input.Threshold.Value != 128 {
		t.Errorf("expected threshold value 128, got %d", cfg.Input.Threshold.Value)
	}
	if cfg.Input.Threshold.Margin != 5 {
		t.Errorf("expected threshold margin 5, got %d", cfg.Input.Threshold.Margin)
	}
	if cfg.Input.Resize.Enabled() {
		t.Errorf("expected resize disabled by default")
	}

	// Test analysis defaults
	if cfg.Analysis.Strategy != "stack" {
		t.Errorf("expected strategy 'stack', got %s", cfg.Analysis.Strategy)
	}
	if !cfg.Analysis.ClassifyShapes {
		t.Errorf("expected shape classification enabled by default")
	}

	// Test output defaults
	if cfg.Output.Format != "text" {
		t.Errorf("expected output format 'text', got %s", cfg.Output.Format)
	}
	if cfg.Output.OverlayScale != 10 {
		t.Errorf("expected overlay_scale 10, got %d", cfg.Output.OverlayScale)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("expected logging output 'stderr', got %s", cfg.Logging.Output)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestDefaultThresholdMatchesRaster(t *testing.T) {
	got := DefaultConfig().Input.Threshold.Threshold()
	if want := raster.DefaultThreshold(); got != want {
		t.Errorf("default threshold = %+v, expected %+v", got, want)
	}
}

func TestThresholdConversion(t *testing.T) {
	th := ThresholdConfig{Mode: "mean", Value: 90, Margin: 12}.Threshold()
	if th.Mode != raster.ThresholdMean || th.Value != 90 || th.Margin != 12 {
		t.Errorf("unexpected conversion: %+v", th)
	}
}

func TestResizeEnabled(t *testing.T) {
	tests := []struct {
		resize ResizeConfig
		want   bool
	}{
		{ResizeConfig{}, false},
		{ResizeConfig{Rows: 20}, false},
		{ResizeConfig{Cols: 20}, false},
		{ResizeConfig{Rows: 20, Cols: 20}, true},
	}

	for _, tt := range tests {
		if got := tt.resize.Enabled(); got != tt.want {
			t.Errorf("%+v.Enabled() = %v, want %v", tt.resize, got, tt.want)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides(Overrides{
		LogLevel:      "debug",
		LogFormat:     "json",
		Strategy:      "queue",
		Format:        "json",
		ThresholdMode: "mean",
		Threshold:     100,
		MaskPath:      "mask.pgm",
		OverlayPath:   "overlay.png",
		NoShapes:      true,
		NoColor:       true,
	})

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging overrides not applied: %+v", cfg.Logging)
	}
	if cfg.Analysis.Strategy != "queue" || cfg.Analysis.ClassifyShapes {
		t.Errorf("analysis overrides not applied: %+v", cfg.Analysis)
	}
	if cfg.Input.Threshold.Mode != "mean" || cfg.Input.Threshold.Value != 100 {
		t.Errorf("threshold overrides not applied: %+v", cfg.Input.Threshold)
	}
	if cfg.Output.Format != "json" || cfg.Output.MaskPath != "mask.pgm" ||
		cfg.Output.OverlayPath != "overlay.png" || cfg.Output.Color {
		t.Errorf("output overrides not applied: %+v", cfg.Output)
	}
}

func TestApplyOverrides_ZeroValuesKeepConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analysis.Strategy = "queue"
	cfg.Output.MaskPath = "keep.png"

	cfg.ApplyOverrides(Overrides{})

	if cfg.Analysis.Strategy != "queue" {
		t.Errorf("expected strategy to stay 'queue', got %s", cfg.Analysis.Strategy)
	}
	if cfg.Output.MaskPath != "keep.png" {
		t.Errorf("expected mask_path to stay 'keep.png', got %s", cfg.Output.MaskPath)
	}
	if !cfg.Analysis.ClassifyShapes || !cfg.Output.Color {
		t.Errorf("boolean settings should not be cleared by empty overrides")
	}
}
