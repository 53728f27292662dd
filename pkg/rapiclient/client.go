// Package rapiclient provides the main entry point for creating Ganeti RAPI
// clients.
package rapiclient

import (
	"context"
	"fmt"

	"github.com/gnt-io/rapi/internal/client"
	"github.com/gnt-io/rapi/pkg/rapi"
)

// New creates a RAPI client from config and performs the version/feature
// handshake against the cluster master. The returned client is ready for
// endpoint calls.
func New(ctx context.Context, config *rapi.Config) (rapi.Client, error) {
	if config == nil {
		return nil, rapi.ErrConfigRequired
	}

	cli, err := client.New(config)
	if err != nil {
		return nil, err
	}

	if err := cli.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting client: %w", err)
	}

	return cli, nil
}

// NewUnstarted creates a RAPI client without touching the network. The
// caller must run Start before issuing endpoint calls; this exists for
// callers who construct clients eagerly and connect lazily.
func NewUnstarted(config *rapi.Config) (rapi.Client, error) {
	return client.New(config)
}

// NewWithEndpoint creates a client for an unauthenticated endpoint.
func NewWithEndpoint(ctx context.Context, host string, port int) (rapi.Client, error) {
	return New(ctx, &rapi.Config{
		Host: host,
		Port: port,
	})
}

// NewWithBasicAuth creates a client using HTTP Basic authentication.
func NewWithBasicAuth(ctx context.Context, host string, port int, username, password string) (rapi.Client, error) {
	return New(ctx, &rapi.Config{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	})
}
