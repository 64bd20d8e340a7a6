// Package config provides configuration structures and loading for goschedule.
package config

// Config represents the complete application configuration.
type Config struct {
	Generation GenerationConfig `yaml:"generation" mapstructure:"generation"`
	Bank       BankConfig       `yaml:"bank" mapstructure:"bank"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// GenerationConfig controls transaction generation and the problem search.
type GenerationConfig struct {
	ObjectCount          int   `yaml:"object_count" mapstructure:"object_count"`
	MaxOpsPerTransaction int   `yaml:"max_ops_per_transaction" mapstructure:"max_ops_per_transaction"`
	Trials               int   `yaml:"trials" mapstructure:"trials"`                 // random databases per equivalence check
	OuterAttempts        int   `yaml:"outer_attempts" mapstructure:"outer_attempts"` // transaction pairs per search
	InnerAttempts        int   `yaml:"inner_attempts" mapstructure:"inner_attempts"` // interleavings per pair
	Seed                 int64 `yaml:"seed" mapstructure:"seed"`                     // 0 = time-based
}

// BankConfig represents the optional MySQL problem bank.
type BankConfig struct {
	Enabled            bool   `yaml:"enabled" mapstructure:"enabled"`
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	Table              string `yaml:"table" mapstructure:"table"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// OutputConfig controls how problems are printed.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // text or yaml
	Color  bool   `yaml:"color" mapstructure:"color"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			ObjectCount:          2,
			MaxOpsPerTransaction: 5,
			Trials:               10,
			OuterAttempts:        70,
			InnerAttempts:        500,
		},
		Bank: BankConfig{
			Enabled:            false,
			Port:               3306,
			Database:           "goschedule",
			Table:              "problems",
			TLS:                "preferred",
			MaxConnections:     4,
			MaxIdleConnections: 2,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
