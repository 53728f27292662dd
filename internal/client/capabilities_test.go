package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnt-io/rapi/pkg/rapi"
)

func TestCapabilityCell(t *testing.T) {
	t.Parallel()

	t.Run("unset cell reports no version", func(t *testing.T) {
		t.Parallel()

		cell := &capabilityCell{}

		version, set := cell.Version()
		assert.False(t, set)
		assert.Zero(t, version)
		assert.False(t, cell.Has(rapi.FeatureInstanceCreateReqV1))
		assert.Empty(t, cell.Features())
	})

	t.Run("setting the same version twice is a no-op", func(t *testing.T) {
		t.Parallel()

		cell := &capabilityCell{}

		require.NoError(t, cell.setVersion(2))
		require.NoError(t, cell.setVersion(2))

		version, set := cell.Version()
		assert.True(t, set)
		assert.Equal(t, 2, version)
	})

	t.Run("changing the version fails", func(t *testing.T) {
		t.Parallel()

		cell := &capabilityCell{}

		require.NoError(t, cell.setVersion(2))
		assert.ErrorIs(t, cell.setVersion(3), ErrVersionChanged)

		// The original version survives the failed write.
		version, set := cell.Version()
		assert.True(t, set)
		assert.Equal(t, 2, version)
	})

	t.Run("features are sorted", func(t *testing.T) {
		t.Parallel()

		cell := &capabilityCell{}
		cell.setFeatures([]string{"zzz", "aaa", "mmm"})

		assert.Equal(t, []string{"aaa", "mmm", "zzz"}, cell.Features())
		assert.True(t, cell.Has("mmm"))
		assert.False(t, cell.Has("nope"))
	})
}

func TestClient_RequestPathValidation(t *testing.T) {
	t.Parallel()

	// A relative path is a programming error; it must fail before the
	// transport is ever consulted. The zero Client carries no transport at
	// all, so reaching dispatch would panic instead of returning an error.
	c := &Client{}

	for _, path := range []string{"version", "2/info"} {
		err := c.request(context.Background(), http.MethodGet, path, nil, nil, nil)

		configErr := &rapi.ConfigError{}
		assert.ErrorAs(t, err, &configErr)
	}
}
