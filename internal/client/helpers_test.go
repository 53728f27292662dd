package client_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gnt-io/rapi/internal/client"
	"github.com/gnt-io/rapi/pkg/rapi"
)

// newTestClient spins up a TLS server backed by handler and returns a client
// pointed at it. The RAPI speaks HTTPS only, so tests do too.
func newTestClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()

	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)

	host, portStr, err := net.SplitHostPort(parsed.Host)
	require.NoError(t, err)

	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cli, err := client.New(&rapi.Config{
		Host:          host,
		Port:          port,
		SkipTLSVerify: true,
	})
	require.NoError(t, err)

	return cli
}

// withHandshake wraps handler with the version and feature endpoints so that
// Start succeeds against it.
func withHandshake(features []string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/version":
			_, _ = writer.Write([]byte("2"))
		case "/2/features":
			_ = json.NewEncoder(writer).Encode(features)
		default:
			if handler == nil {
				http.NotFound(writer, request)

				return
			}

			handler.ServeHTTP(writer, request)
		}
	})
}

// newStartedClient returns a client that already completed the handshake,
// advertising the given features.
func newStartedClient(t *testing.T, features []string, handler http.Handler) *client.Client {
	t.Helper()

	cli := newTestClient(t, withHandshake(features, handler))
	require.NoError(t, cli.Start(context.Background()))

	return cli
}

// writeJSON encodes value onto the response, failing the test on error.
func writeJSON(t *testing.T, writer http.ResponseWriter, value interface{}) {
	t.Helper()

	require.NoError(t, json.NewEncoder(writer).Encode(value))
}

// decodeBody parses the request body into a generic map.
func decodeBody(t *testing.T, request *http.Request) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	decodeInto(t, request, &body)

	return body
}

// decodeInto parses the request body into out.
func decodeInto(t *testing.T, request *http.Request, out interface{}) {
	t.Helper()

	require.NoError(t, json.NewDecoder(request.Body).Decode(out))
}
