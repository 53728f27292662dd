package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rapihttp "github.com/gnt-io/rapi/internal/http"
	"github.com/gnt-io/rapi/pkg/rapi"
)

func TestAsyncClient_Call(t *testing.T) {
	t.Parallel()

	t.Run("resolves with the completed body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			_, _ = writer.Write([]byte(`{"name":"cluster1"}`))
		}))
		defer server.Close()

		client := rapihttp.NewAsyncClient(server.URL)

		pending := client.Call(context.Background(), &rapihttp.Request{Method: "GET", Path: "/2/info"})

		resp, err := pending.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.JSONEq(t, `{"name":"cluster1"}`, string(resp.Body))
	})

	t.Run("chunked body is accumulated before resolution", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			flusher, ok := writer.(http.Flusher)
			require.True(t, ok)

			_, _ = writer.Write([]byte(`["node1",`))
			flusher.Flush()
			time.Sleep(10 * time.Millisecond)
			_, _ = writer.Write([]byte(`"node2"]`))
		}))
		defer server.Close()

		client := rapihttp.NewAsyncClient(server.URL)

		resp, err := client.Do(context.Background(), &rapihttp.Request{Method: "GET", Path: "/2/nodes"})
		require.NoError(t, err)

		var names []string

		require.NoError(t, resp.JSON(&names))
		assert.Equal(t, []string{"node1", "node2"}, names)
	})

	t.Run("non-200 rejects without reading the body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Length", "19")
			writer.WriteHeader(http.StatusBadGateway)

			flusher, ok := writer.(http.Flusher)
			require.True(t, ok)
			flusher.Flush()

			// The rejection must not wait for this payload.
			time.Sleep(100 * time.Millisecond)
			_, _ = writer.Write([]byte("gateway unavailable"))
		}))
		defer server.Close()

		client := rapihttp.NewAsyncClient(server.URL)

		start := time.Now()

		_, err := client.Do(context.Background(), &rapihttp.Request{Method: "GET", Path: "/2/info"})
		require.Error(t, err)
		assert.Less(t, time.Since(start), 100*time.Millisecond)

		statusErr := &rapi.StatusError{}
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
		assert.Empty(t, statusErr.Body)
	})

	t.Run("invalid body rejects with a decode error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`{"broken":`))
		}))
		defer server.Close()

		client := rapihttp.NewAsyncClient(server.URL)

		_, err := client.Do(context.Background(), &rapihttp.Request{Method: "GET", Path: "/2/info"})

		decodeErr := &rapi.DecodeError{}
		assert.ErrorAs(t, err, &decodeErr)
	})

	t.Run("empty 200 body resolves", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := rapihttp.NewAsyncClient(server.URL)

		resp, err := client.Do(context.Background(), &rapihttp.Request{Method: "GET", Path: "/2/info"})
		require.NoError(t, err)
		assert.Empty(t, resp.Body)
	})

	t.Run("connection refused rejects as unreachable", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		addr := server.URL
		server.Close()

		client := rapihttp.NewAsyncClient(addr)

		_, err := client.Do(context.Background(), &rapihttp.Request{Method: "GET", Path: "/version"})
		assert.True(t, rapi.IsUnreachable(err))
	})

	t.Run("many exchanges complete independently", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/fail" {
				writer.WriteHeader(http.StatusInternalServerError)

				return
			}

			_, _ = writer.Write([]byte("2"))
		}))
		defer server.Close()

		client := rapihttp.NewAsyncClient(server.URL)

		pendings := make([]*rapihttp.Pending, 0, 20)
		for i := 0; i < 20; i++ {
			path := "/version"
			if i%5 == 0 {
				path = "/fail"
			}

			pendings = append(pendings, client.Call(context.Background(), &rapihttp.Request{Method: "GET", Path: path}))
		}

		var failures int

		for _, pending := range pendings {
			if _, err := pending.Wait(context.Background()); err != nil {
				failures++
			}
		}

		assert.Equal(t, 4, failures)
	})
}

func TestPending_Wait(t *testing.T) {
	t.Parallel()

	t.Run("expired context abandons the wait only", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			<-release
			_, _ = writer.Write([]byte("2"))
		}))
		defer server.Close()

		client := rapihttp.NewAsyncClient(server.URL)

		pending := client.Call(context.Background(), &rapihttp.Request{Method: "GET", Path: "/version"})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := pending.Wait(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		// The exchange keeps running and still resolves for later waiters.
		close(release)

		resp, err := pending.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), resp.Body)
	})

	t.Run("concurrent waiters all observe the same resolution", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte("2"))
		}))
		defer server.Close()

		client := rapihttp.NewAsyncClient(server.URL)

		pending := client.Call(context.Background(), &rapihttp.Request{Method: "GET", Path: "/version"})

		var wg sync.WaitGroup

		for i := 0; i < 8; i++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				resp, err := pending.Wait(context.Background())
				assert.NoError(t, err)
				assert.Equal(t, []byte("2"), resp.Body)
			}()
		}

		wg.Wait()

		<-pending.Done()
	})
}
