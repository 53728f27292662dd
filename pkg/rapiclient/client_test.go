package rapiclient_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnt-io/rapi/pkg/rapi"
	"github.com/gnt-io/rapi/pkg/rapiclient"
)

func startRAPIServer(t *testing.T, features []string) (host string, port int) {
	t.Helper()

	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/version":
			_, _ = writer.Write([]byte("2"))
		case "/2/features":
			_ = json.NewEncoder(writer).Encode(features)
		default:
			http.NotFound(writer, request)
		}
	}))
	t.Cleanup(server.Close)

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)

	host, portStr, err := net.SplitHostPort(parsed.Host)
	require.NoError(t, err)

	port, err = strconv.Atoi(portStr)
	require.NoError(t, err)

	return host, port
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("returns a started client", func(t *testing.T) {
		t.Parallel()

		host, port := startRAPIServer(t, []string{rapi.FeatureInstanceCreateReqV1})

		client, err := rapiclient.New(context.Background(), &rapi.Config{
			Host:          host,
			Port:          port,
			SkipTLSVerify: true,
		})
		require.NoError(t, err)

		version, set := client.Capabilities().Version()
		assert.True(t, set)
		assert.Equal(t, 2, version)
		assert.True(t, client.Capabilities().Has(rapi.FeatureInstanceCreateReqV1))
	})

	t.Run("nil config is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := rapiclient.New(context.Background(), nil)
		assert.ErrorIs(t, err, rapi.ErrConfigRequired)
	})

	t.Run("handshake failure surfaces", func(t *testing.T) {
		t.Parallel()

		_, err := rapiclient.New(context.Background(), &rapi.Config{
			Host: "127.0.0.1",
			Port: 1,
		})
		assert.True(t, rapi.IsUnreachable(err))
	})
}

func TestNewUnstarted(t *testing.T) {
	t.Parallel()

	// No server at all: construction must still succeed.
	client, err := rapiclient.NewUnstarted(&rapi.Config{Host: "master.invalid"})
	require.NoError(t, err)

	_, set := client.Capabilities().Version()
	assert.False(t, set)
}

func TestNewWithBasicAuth(t *testing.T) {
	t.Parallel()

	host, port := startRAPIServer(t, nil)

	// The handshake endpoints ignore credentials; this exercises the
	// constructor path only.
	_, err := rapiclient.NewWithBasicAuth(context.Background(), host, port, "user", "secret")

	// Self-signed test certificate: the default config verifies TLS.
	assert.Error(t, err)
	assert.True(t, rapi.IsUnreachable(err))
}
