package config

import "fmt"

// Issue describes one configuration problem with a hint for fixing it.
type Issue struct {
	Field   string
	Message string
	Hint    string
}

// ValidationResult collects configuration errors and warnings. Errors stop
// startup; warnings are logged and startup continues.
type ValidationResult struct {
	Errors   []Issue
	Warnings []Issue
}

// HasErrors reports whether startup should abort.
func (r ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Validate checks the loaded configuration for values that would make the
// server unusable or surprising.
func (c *Config) Validate() ValidationResult {
	var result ValidationResult

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		result.Errors = append(result.Errors, Issue{
			Field:   "server.port",
			Message: fmt.Sprintf("port %d is out of range", c.Server.Port),
			Hint:    "set server.port to a value between 1 and 65535",
		})
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		result.Errors = append(result.Errors, Issue{
			Field:   "database.port",
			Message: fmt.Sprintf("port %d is out of range", c.Database.Port),
			Hint:    "set database.port to a value between 1 and 65535 (MySQL default is 3306)",
		})
	}
	if c.Database.Database == "" {
		result.Errors = append(result.Errors, Issue{
			Field:   "database.database",
			Message: "database name is empty",
			Hint:    "set database.database or the MYSQL_DB environment variable",
		})
	}
	if c.Database.User == "" {
		result.Errors = append(result.Errors, Issue{
			Field:   "database.user",
			Message: "database user is empty",
			Hint:    "set database.user or the MYSQL_USER environment variable",
		})
	}

	if c.Database.Password == "" && !c.Database.PasswordPrompt {
		result.Warnings = append(result.Warnings, Issue{
			Field:   "database.password",
			Message: "database password is empty",
			Hint:    "set database.password, database.password_file, or --db-password-prompt",
		})
	}
	if c.Database.Pool.MaxIdle > c.Database.Pool.MaxOpen {
		result.Warnings = append(result.Warnings, Issue{
			Field:   "database.pool.max_idle",
			Message: fmt.Sprintf("max_idle (%d) exceeds max_open (%d)", c.Database.Pool.MaxIdle, c.Database.Pool.MaxOpen),
			Hint:    "idle connections above max_open are closed immediately",
		})
	}

	switch c.Observability.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		result.Warnings = append(result.Warnings, Issue{
			Field:   "observability.logging.level",
			Message: fmt.Sprintf("unknown log level %q", c.Observability.Logging.Level),
			Hint:    "use one of debug, info, warn, error; falling back to info",
		})
	}

	return result
}
