// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, bad reference, unreadable import).
	UserError = 1

	// ConfigError indicates an invalid config file or an unusable storage backend.
	ConfigError = 2

	// HostError indicates the host process could not be reached or started.
	HostError = 3
)
