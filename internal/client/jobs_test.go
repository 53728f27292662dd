package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnt-io/rapi/pkg/rapi"
)

func TestJobsClient_List(t *testing.T) {
	t.Parallel()

	t.Run("parses job IDs", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/2/jobs", request.URL.Path)

			writeJSON(t, writer, []rapi.ResourceRef{
				{ID: "17", URI: "/2/jobs/17"},
				{ID: "42", URI: "/2/jobs/42"},
			})
		})

		cli := newTestClient(t, handler)

		ids, err := cli.Jobs().List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int{17, 42}, ids)
	})

	t.Run("rejects non-numeric job IDs", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, []rapi.ResourceRef{{ID: "not-a-number"}})
		})

		cli := newTestClient(t, handler)

		_, err := cli.Jobs().List(context.Background())
		assert.Error(t, err)
	})
}

func TestJobsClient_Get(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/2/jobs/17", request.URL.Path)

		writeJSON(t, writer, rapi.Job{
			ID:      "17",
			Status:  rapi.JobStatusRunning,
			Summary: []string{"INSTANCE_REBOOT(web1)"},
		})
	})

	cli := newTestClient(t, handler)

	job, err := cli.Jobs().Get(context.Background(), 17)
	require.NoError(t, err)
	assert.Equal(t, "17", job.ID)
	assert.False(t, job.Finalized())
}

func TestJobsClient_WaitForChange(t *testing.T) {
	t.Parallel()

	// The wait endpoint takes its parameters in the body of a GET.
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodGet, request.Method)
		assert.Equal(t, "/2/jobs/17/wait", request.URL.Path)

		body := decodeBody(t, request)
		assert.Equal(t, []interface{}{"status"}, body["fields"])
		assert.InDelta(t, 3, body["previous_log_serial"], 0)

		writeJSON(t, writer, rapi.JobChange{
			JobInfo: []interface{}{"running"},
		})
	})

	cli := newTestClient(t, handler)

	change, err := cli.Jobs().WaitForChange(context.Background(), 17, []string{"status"}, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"running"}, change.JobInfo)
}

func TestJobsClient_Cancel(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		assert.Equal(t, "/2/jobs/17", request.URL.Path)
		assert.Equal(t, "1", request.URL.Query().Get("dry-run"))

		writer.WriteHeader(http.StatusOK)
	})

	cli := newTestClient(t, handler)

	require.NoError(t, cli.Jobs().Cancel(context.Background(), 17, true))
}

func TestJobsClient_WaitFinished(t *testing.T) {
	t.Parallel()

	t.Run("successful job returns immediately", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, rapi.Job{ID: "17", Status: rapi.JobStatusSuccess})
		})

		cli := newTestClient(t, handler)

		job, err := cli.Jobs().WaitFinished(context.Background(), 17)
		require.NoError(t, err)
		assert.Equal(t, rapi.JobStatusSuccess, job.Status)
	})

	t.Run("failed job is reported with the job attached", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, rapi.Job{ID: "17", Status: rapi.JobStatusError})
		})

		cli := newTestClient(t, handler)

		job, err := cli.Jobs().WaitFinished(context.Background(), 17)
		require.ErrorIs(t, err, rapi.ErrJobFailed)
		require.NotNil(t, job)
		assert.Equal(t, rapi.JobStatusError, job.Status)
	})

	t.Run("canceled job is a failure", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, rapi.Job{ID: "17", Status: rapi.JobStatusCanceled})
		})

		cli := newTestClient(t, handler)

		_, err := cli.Jobs().WaitFinished(context.Background(), 17)
		assert.ErrorIs(t, err, rapi.ErrJobFailed)
	})
}
