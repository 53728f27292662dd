package client

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gnt-io/rapi/pkg/rapi"
)

// ErrVersionChanged is returned when a repeated handshake sees a different
// API version than the one already negotiated.
var ErrVersionChanged = errors.New("negotiated API version cannot change")

// capabilityCell is the write-once store for the negotiated version and
// feature set. Only the handshake writes it; every endpoint call-site reads
// it. The version, once set, is never reset: a repeated handshake against an
// unchanged server is a no-op, while a version change fails.
type capabilityCell struct {
	mu       sync.RWMutex
	set      bool
	version  int
	features map[string]struct{}
}

var _ rapi.Capabilities = (*capabilityCell)(nil)

func (c *capabilityCell) setVersion(version int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.set && c.version != version {
		return fmt.Errorf("%w: had %d, server now reports %d", ErrVersionChanged, c.version, version)
	}

	c.version = version
	c.set = true

	return nil
}

func (c *capabilityCell) setFeatures(features []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.features = make(map[string]struct{}, len(features))
	for _, feature := range features {
		c.features[feature] = struct{}{}
	}
}

// Version implements rapi.Capabilities.Version.
func (c *capabilityCell) Version() (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.version, c.set
}

// Has implements rapi.Capabilities.Has.
func (c *capabilityCell) Has(feature string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.features[feature]

	return ok
}

// Features implements rapi.Capabilities.Features.
func (c *capabilityCell) Features() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.features))
	for feature := range c.features {
		out = append(out, feature)
	}

	sort.Strings(out)

	return out
}
