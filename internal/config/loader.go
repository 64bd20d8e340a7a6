package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOptional is Load, except that a missing file yields DefaultConfig.
// Any other read or parse failure is still returned.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		substituteEnvVars(cfg)
		return cfg, nil
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

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) {
	cfg.Bank.Host = expandEnvVar(cfg.Bank.Host)
	cfg.Bank.User = expandEnvVar(cfg.Bank.User)
	cfg.Bank.Password = expandEnvVar(cfg.Bank.Password)
	cfg.Bank.Database = expandEnvVar(cfg.Bank.Database)

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

// Overrides holds CLI flag values that take precedence over the file.
// Zero values mean "not set".
type Overrides struct {
	LogLevel     string
	LogFormat    string
	OutputFormat string
	NoColor      bool
	ObjectCount  int
	MaxOps       int
	Trials       int
	Seed         int64
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
	if o.OutputFormat != "" {
		c.Output.Format = o.OutputFormat
	}
	if o.NoColor {
		c.Output.Color = false
	}
	if o.ObjectCount > 0 {
		c.Generation.ObjectCount = o.ObjectCount
	}
	if o.MaxOps > 0 {
		c.Generation.MaxOpsPerTransaction = o.MaxOps
	}
	if o.Trials > 0 {
		c.Generation.Trials = o.Trials
	}
	if o.Seed != 0 {
		c.Generation.Seed = o.Seed
	}
}
