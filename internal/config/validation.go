package config

import (
	"fmt"
	"regexp"
	"strings"
)

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

// maxObjectCount is the size of the object alphabet (A-F).
const maxObjectCount = 6

// tableNamePattern restricts the bank table name to alphanumerics and underscores.
var tableNamePattern = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateGeneration()...)

	if c.Bank.Enabled {
		errors = append(errors, c.validateBank()...)
	}

	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateGeneration() ValidationErrors {
	var errors ValidationErrors
	g := c.Generation

	if g.ObjectCount < 1 || g.ObjectCount > maxObjectCount {
		errors = append(errors, ValidationError{
			Field:   "generation.object_count",
			Message: fmt.Sprintf("object_count must be between 1 and %d", maxObjectCount),
		})
	}

	if g.MaxOpsPerTransaction < 0 {
		errors = append(errors, ValidationError{
			Field:   "generation.max_ops_per_transaction",
			Message: "max_ops_per_transaction cannot be negative",
		})
	}

	if g.Trials < 1 {
		errors = append(errors, ValidationError{
			Field:   "generation.trials",
			Message: "trials must be positive",
		})
	}

	if g.OuterAttempts < 1 {
		errors = append(errors, ValidationError{
			Field:   "generation.outer_attempts",
			Message: "outer_attempts must be positive",
		})
	}

	if g.InnerAttempts < 1 {
		errors = append(errors, ValidationError{
			Field:   "generation.inner_attempts",
			Message: "inner_attempts must be positive",
		})
	}

	return errors
}

func (c *Config) validateBank() ValidationErrors {
	var errors ValidationErrors
	b := c.Bank

	if b.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "bank.host",
			Message: "host is required when bank is enabled",
		})
	}

	if b.Port <= 0 || b.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "bank.port",
			Message: "port must be between 1 and 65535",
		})
	}

	if b.User == "" {
		errors = append(errors, ValidationError{
			Field:   "bank.user",
			Message: "user is required when bank is enabled",
		})
	}

	if b.Database == "" {
		errors = append(errors, ValidationError{
			Field:   "bank.database",
			Message: "database name is required",
		})
	}

	if !tableNamePattern.MatchString(b.Table) {
		errors = append(errors, ValidationError{
			Field:   "bank.table",
			Message: "table must contain only alphanumeric characters and underscores",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[b.TLS] {
		errors = append(errors, ValidationError{
			Field:   "bank.tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if b.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "bank.max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if b.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "bank.max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"text": true, "yaml": true, "": true}
	if !validFormats[c.Output.Format] {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Message: "format must be 'text' or 'yaml'",
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
