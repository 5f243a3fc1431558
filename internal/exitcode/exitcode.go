// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, failed validation, task not found).
	UserError = 1

	// ConfigError indicates an unreadable or invalid configuration.
	ConfigError = 2

	// BackendError indicates a server, transport or download error.
	BackendError = 3
)
