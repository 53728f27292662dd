package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultTimeout is the default bound on one HTTP exchange.
	DefaultTimeout = 60 * time.Second

	// ShortTimeout is used for quick operations.
	ShortTimeout = 10 * time.Second
)

// Job polling.
const (
	// DefaultPollInterval is the delay between job status fetches.
	DefaultPollInterval = 2 * time.Second

	// DefaultPollTimeout bounds a full job poll loop.
	DefaultPollTimeout = 10 * time.Minute
)

// UserAgent identifies this client on the wire.
const UserAgent = "Ganeti RAPI Client (Go)"

// File and directory permissions for CLI configuration.
const (
	ConfigDirPerm  = 0750
	ConfigFilePerm = 0600
)
