package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rapihttp "github.com/gnt-io/rapi/internal/http"
	"github.com/gnt-io/rapi/pkg/rapi"
)

func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/2/info", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
			assert.NotEmpty(t, request.Header.Get("User-Agent"))

			_ = json.NewEncoder(writer).Encode(map[string]string{"name": "cluster1"})
		}))
		defer server.Close()

		client := rapihttp.NewClient(server.URL)

		resp, err := client.Do(context.Background(), &rapihttp.Request{
			Method: "GET",
			Path:   "/2/info",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		require.NoError(t, resp.JSON(&result))
		assert.Equal(t, "cluster1", result["name"])
	})

	t.Run("query parameters are encoded", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "1", request.URL.Query().Get("bulk"))
			assert.Equal(t, []string{"a", "b"}, request.URL.Query()["tag"])

			_, _ = writer.Write([]byte("[]"))
		}))
		defer server.Close()

		client := rapihttp.NewClient(server.URL)

		_, err := client.Do(context.Background(), &rapihttp.Request{
			Method: "GET",
			Path:   "/2/instances",
			Query:  url.Values{"bulk": []string{"1"}, "tag": []string{"a", "b"}},
		})
		require.NoError(t, err)
	})

	t.Run("body is sent as JSON", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]interface{}

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "instance1", body["name"])

			_, _ = writer.Write([]byte("17"))
		}))
		defer server.Close()

		client := rapihttp.NewClient(server.URL)

		resp, err := client.Do(context.Background(), &rapihttp.Request{
			Method: "POST",
			Path:   "/2/instances",
			Body:   map[string]interface{}{"name": "instance1"},
		})
		require.NoError(t, err)

		var jobID int

		require.NoError(t, resp.JSON(&jobID))
		assert.Equal(t, 17, jobID)
	})

	t.Run("basic auth header", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			username, password, ok := request.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "rapi-user", username)
			assert.Equal(t, "secret", password)

			_, _ = writer.Write([]byte("2"))
		}))
		defer server.Close()

		client := rapihttp.NewClient(server.URL, rapihttp.WithBasicAuth("rapi-user", "secret"))

		_, err := client.Do(context.Background(), &rapihttp.Request{Method: "GET", Path: "/version"})
		require.NoError(t, err)
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-agent/1.0", request.Header.Get("User-Agent"))

			_, _ = writer.Write([]byte("2"))
		}))
		defer server.Close()

		client := rapihttp.NewClient(server.URL, rapihttp.WithUserAgent("custom-agent/1.0"))

		_, err := client.Do(context.Background(), &rapihttp.Request{Method: "GET", Path: "/version"})
		require.NoError(t, err)
	})

	t.Run("404 returns status error with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			http.Error(writer, "instance not found", http.StatusNotFound)
		}))
		defer server.Close()

		client := rapihttp.NewClient(server.URL)

		resp, err := client.Do(context.Background(), &rapihttp.Request{
			Method: "GET",
			Path:   "/2/instances/missing",
		})
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 404, resp.StatusCode)

		statusErr := &rapi.StatusError{}
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 404, statusErr.StatusCode)
		assert.Equal(t, "instance not found", statusErr.Body)
	})

	t.Run("500 returns status error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := rapihttp.NewClient(server.URL)

		_, err := client.Do(context.Background(), &rapihttp.Request{Method: "GET", Path: "/2/info"})
		assert.True(t, rapi.IsStatus(err, http.StatusInternalServerError))
	})

	t.Run("connection refused is unreachable", func(t *testing.T) {
		t.Parallel()

		// Bind and immediately close to get a port nothing listens on.
		server := httptest.NewServer(http.NotFoundHandler())
		addr := server.URL
		server.Close()

		client := rapihttp.NewClient(addr)

		_, err := client.Do(context.Background(), &rapihttp.Request{Method: "GET", Path: "/version"})
		assert.True(t, rapi.IsUnreachable(err))
	})

	t.Run("slow server times out", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client := rapihttp.NewClient(server.URL, rapihttp.WithTimeout(20*time.Millisecond))

		_, err := client.Do(context.Background(), &rapihttp.Request{Method: "GET", Path: "/version"})
		assert.True(t, rapi.IsTimeout(err))
	})

	t.Run("unencodable body fails before dispatch", func(t *testing.T) {
		t.Parallel()

		client := rapihttp.NewClient("http://127.0.0.1:0")

		_, err := client.Do(context.Background(), &rapihttp.Request{
			Method: "POST",
			Path:   "/2/instances",
			Body:   map[string]interface{}{"fn": func() {}},
		})
		require.Error(t, err)
		assert.False(t, rapi.IsUnreachable(err))
	})
}
