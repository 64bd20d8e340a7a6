package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Generation.ObjectCount)
	assert.Equal(t, 5, cfg.Generation.MaxOpsPerTransaction)
	assert.Equal(t, 10, cfg.Generation.Trials)
	assert.Equal(t, 70, cfg.Generation.OuterAttempts)
	assert.Equal(t, 500, cfg.Generation.InnerAttempts)
	assert.Zero(t, cfg.Generation.Seed)
	assert.False(t, cfg.Bank.Enabled)
	assert.Equal(t, "problems", cfg.Bank.Table)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "stderr", cfg.Logging.Output)

	assert.NoError(t, cfg.Validate(), "defaults must validate")
}

func TestLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "goschedule.yaml")
	configContent := `
generation:
  object_count: 3
  max_ops_per_transaction: 6
  trials: 25
  seed: 1234

bank:
  enabled: true
  host: bank-host
  port: 3307
  user: instructor
  password: secret
  database: exercises

output:
  format: yaml
  color: false

logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Generation.ObjectCount)
	assert.Equal(t, 6, cfg.Generation.MaxOpsPerTransaction)
	assert.Equal(t, 25, cfg.Generation.Trials)
	assert.Equal(t, int64(1234), cfg.Generation.Seed)
	assert.Equal(t, 70, cfg.Generation.OuterAttempts, "unset keys keep defaults")

	assert.True(t, cfg.Bank.Enabled)
	assert.Equal(t, "bank-host", cfg.Bank.Host)
	assert.Equal(t, 3307, cfg.Bank.Port)
	assert.Equal(t, "problems", cfg.Bank.Table)

	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	assert.NoError(t, cfg.Validate())
}

func TestLoadWithEnvVars(t *testing.T) {
	t.Setenv("TEST_BANK_USER", "env-user")
	t.Setenv("TEST_BANK_PASS", "env-pass")

	configPath := filepath.Join(t.TempDir(), "env.yaml")
	configContent := `
bank:
  user: ${TEST_BANK_USER}
  password: $TEST_BANK_PASS
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "env-user", cfg.Bank.User)
	assert.Equal(t, "env-pass", cfg.Bank.Password)
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Generation, cfg.Generation)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("generation: [unterminated"), 0644))
	_, err = LoadOptional(bad)
	assert.Error(t, err)
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("generation.object_count", 4)
	v.Set("output.format", "yaml")

	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Generation.ObjectCount)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 5, cfg.Generation.MaxOpsPerTransaction)
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_VAR}", "test-value"},
		{"$TEST_VAR", "test-value"},
		{"prefix-${TEST_VAR}-suffix", "prefix-test-value-suffix"},
		{"${NONEXISTENT}", "${NONEXISTENT}"}, // Unset vars remain unchanged
		{"no-vars-here", "no-vars-here"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, expandEnvVar(tt.input), "expandEnvVar(%q)", tt.input)
	}
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name   string
		o      Overrides
		verify func(t *testing.T, c *Config)
	}{
		{
			name: "empty overrides keep defaults",
			o:    Overrides{},
			verify: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultConfig(), c)
			},
		},
		{
			name: "all overrides",
			o: Overrides{
				LogLevel:     "debug",
				LogFormat:    "json",
				OutputFormat: "yaml",
				NoColor:      true,
				ObjectCount:  4,
				MaxOps:       7,
				Trials:       50,
				Seed:         99,
			},
			verify: func(t *testing.T, c *Config) {
				assert.Equal(t, "debug", c.Logging.Level)
				assert.Equal(t, "json", c.Logging.Format)
				assert.Equal(t, "yaml", c.Output.Format)
				assert.False(t, c.Output.Color)
				assert.Equal(t, 4, c.Generation.ObjectCount)
				assert.Equal(t, 7, c.Generation.MaxOpsPerTransaction)
				assert.Equal(t, 50, c.Generation.Trials)
				assert.Equal(t, int64(99), c.Generation.Seed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ApplyOverrides(tt.o)
			tt.verify(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		fields []string
	}{
		{"object count zero", func(c *Config) { c.Generation.ObjectCount = 0 }, []string{"generation.object_count"}},
		{"object count above alphabet", func(c *Config) { c.Generation.ObjectCount = 7 }, []string{"generation.object_count"}},
		{"negative max ops", func(c *Config) { c.Generation.MaxOpsPerTransaction = -1 }, []string{"generation.max_ops_per_transaction"}},
		{"zero trials", func(c *Config) { c.Generation.Trials = 0 }, []string{"generation.trials"}},
		{"zero attempts", func(c *Config) {
			c.Generation.OuterAttempts = 0
			c.Generation.InnerAttempts = 0
		}, []string{"generation.outer_attempts", "generation.inner_attempts"}},
		{"bad output format", func(c *Config) { c.Output.Format = "html" }, []string{"output.format"}},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, []string{"logging.level"}},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, []string{"logging.format"}},
		{"bank enabled without connection", func(c *Config) { c.Bank.Enabled = true }, []string{"bank.host", "bank.user"}},
		{"bank table injection", func(c *Config) {
			c.Bank.Enabled = true
			c.Bank.Host = "localhost"
			c.Bank.User = "root"
			c.Bank.Table = "problems; DROP TABLE x"
		}, []string{"bank.table"}},
		{"bank tls", func(c *Config) {
			c.Bank.Enabled = true
			c.Bank.Host = "localhost"
			c.Bank.User = "root"
			c.Bank.TLS = "maybe"
		}, []string{"bank.tls"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, len(tt.fields))
			for i, field := range tt.fields {
				assert.Equal(t, field, verrs[i].Field)
			}
			assert.True(t, strings.HasPrefix(err.Error(), "validation failed:"))
		})
	}
}

func TestValidate_BankDisabledSkipsBankChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bank.Table = "not valid!"
	assert.NoError(t, cfg.Validate())
}

func TestValidationErrors_Empty(t *testing.T) {
	assert.Equal(t, "", ValidationErrors{}.Error())
}
