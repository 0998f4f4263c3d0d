package config

import (
	"fmt"
	"strings"
)

// MaxResizeDim caps input.resize rows and cols.
const MaxResizeDim = 4096

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateInput()...)
	errors = append(errors, c.validateAnalysis()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateInput() ValidationErrors {
	var errors ValidationErrors
	th := c.Input.Threshold

	validModes := map[string]bool{"fixed": true, "mean": true, "": true}
	if !validModes[th.Mode] {
		errors = append(errors, ValidationError{
			Field:   "input.threshold.mode",
			Message: "mode must be 'fixed' or 'mean'",
		})
	}

	if th.Value < 1 || th.Value > 255 {
		errors = append(errors, ValidationError{
			Field:   "input.threshold.value",
			Message: "value must be between 1 and 255",
		})
	}

	if th.Margin < 0 {
		errors = append(errors, ValidationError{
			Field:   "input.threshold.margin",
			Message: "margin cannot be negative",
		})
	}

	rs := c.Input.Resize
	if rs.Rows < 0 || rs.Cols < 0 {
		errors = append(errors, ValidationError{
			Field:   "input.resize",
			Message: "rows and cols cannot be negative",
		})
	} else if (rs.Rows == 0) != (rs.Cols == 0) {
		errors = append(errors, ValidationError{
			Field:   "input.resize",
			Message: "rows and cols must be set together",
		})
	} else if rs.Rows > MaxResizeDim || rs.Cols > MaxResizeDim {
		errors = append(errors, ValidationError{
			Field:   "input.resize",
			Message: fmt.Sprintf("rows and cols cannot exceed %d", MaxResizeDim),
		})
	}

	return errors
}

func (c *Config) validateAnalysis() ValidationErrors {
	var errors ValidationErrors

	validStrategies := map[string]bool{"stack": true, "queue": true, "dfs": true, "bfs": true, "": true}
	if !validStrategies[c.Analysis.Strategy] {
		errors = append(errors, ValidationError{
			Field:   "analysis.strategy",
			Message: "strategy must be 'stack' or 'queue'",
		})
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"text": true, "json": true, "summary": true, "": true}
	if !validFormats[c.Output.Format] {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Message: "format must be 'text', 'json', or 'summary'",
		})
	}

	if c.Output.OverlayScale < 1 {
		errors = append(errors, ValidationError{
			Field:   "output.overlay_scale",
			Message: "overlay_scale must be positive",
		})
	}

	if p := c.Output.MaskPath; p != "" && !hasSuffix(p, ".pgm", ".png") {
		errors = append(errors, ValidationError{
			Field:   "output.mask_path",
			Message: "mask_path must end in .pgm or .png",
		})
	}

	if p := c.Output.OverlayPath; p != "" && !hasSuffix(p, ".png") {
		errors = append(errors, ValidationError{
			Field:   "output.overlay_path",
			Message: "overlay_path must end in .png",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}

func hasSuffix(path string, suffixes ...string) bool {
	lower := strings.ToLower(path)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
