package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOptional behaves like Load but returns the defaults when the file does not exist.
func LoadOptional(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(configPath)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)

	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables that are already set are left untouched.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
	return nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns in path fields with environment variable values.
func substituteEnvVars(cfg *Config) {
	cfg.Output.MaskPath = expandEnvVar(cfg.Output.MaskPath)
	cfg.Output.OverlayPath = expandEnvVar(cfg.Output.OverlayPath)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// Overrides holds CLI flag values that take precedence over the config file.
// Zero values leave the file setting in place.
type Overrides struct {
	LogLevel      string
	LogFormat     string
	Strategy      string
	Format        string
	ThresholdMode string
	Threshold     int
	MaskPath      string
	OverlayPath   string
	NoShapes      bool
	NoColor       bool
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.Strategy != "" {
		c.Analysis.Strategy = o.Strategy
	}
	if o.Format != "" {
		c.Output.Format = o.Format
	}
	if o.ThresholdMode != "" {
		c.Input.Threshold.Mode = o.ThresholdMode
	}
	if o.Threshold > 0 {
		c.Input.Threshold.Value = o.Threshold
	}
	if o.MaskPath != "" {
		c.Output.MaskPath = o.MaskPath
	}
	if o.OverlayPath != "" {
		c.Output.OverlayPath = o.OverlayPath
	}
	if o.NoShapes {
		c.Analysis.ClassifyShapes = false
	}
	if o.NoColor {
		c.Output.Color = false
	}
}
