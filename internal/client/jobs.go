package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gnt-io/rapi/internal/constants"
	"github.com/gnt-io/rapi/pkg/rapi"
)

// JobsClient implements rapi.JobsClient.
type JobsClient struct {
	c            *Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewJobsClient creates a new jobs client with default polling parameters.
func NewJobsClient(c *Client) *JobsClient {
	return &JobsClient{
		c:            c,
		pollInterval: constants.DefaultPollInterval,
		pollTimeout:  constants.DefaultPollTimeout,
	}
}

// List returns the IDs of all jobs known to the cluster.
func (jc *JobsClient) List(ctx context.Context) ([]int, error) {
	var refs []rapi.ResourceRef
	if err := jc.c.request(ctx, http.MethodGet, "/2/jobs", nil, nil, &refs); err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}

	ids := make([]int, len(refs))

	for i, ref := range refs {
		id, err := strconv.Atoi(ref.ID)
		if err != nil {
			return nil, fmt.Errorf("parsing job id %q: %w", ref.ID, err)
		}

		ids[i] = id
	}

	return ids, nil
}

// Get implements rapi.JobsClient.Get.
func (jc *JobsClient) Get(ctx context.Context, id int) (*rapi.Job, error) {
	var job rapi.Job
	if err := jc.c.request(ctx, http.MethodGet, "/2/jobs/"+strconv.Itoa(id), nil, nil, &job); err != nil {
		return nil, fmt.Errorf("getting job %d: %w", id, err)
	}

	return &job, nil
}

// WaitForChange blocks server-side until the watched job fields change from
// their previous values. The parameters travel in the body of a GET request;
// that is how the remote API defines this endpoint.
func (jc *JobsClient) WaitForChange(ctx context.Context, id int, fields []string, prevInfo interface{}, prevLogSerial int) (*rapi.JobChange, error) {
	body := map[string]interface{}{
		"fields":              fields,
		"previous_job_info":   prevInfo,
		"previous_log_serial": prevLogSerial,
	}

	var change rapi.JobChange
	if err := jc.c.request(ctx, http.MethodGet, "/2/jobs/"+strconv.Itoa(id)+"/wait", nil, body, &change); err != nil {
		return nil, fmt.Errorf("waiting for job %d: %w", id, err)
	}

	return &change, nil
}

// Cancel implements rapi.JobsClient.Cancel.
func (jc *JobsClient) Cancel(ctx context.Context, id int, dryRun bool) error {
	query := withDryRun(rapi.Query{}, dryRun)

	if err := jc.c.request(ctx, http.MethodDelete, "/2/jobs/"+strconv.Itoa(id), query, nil, nil); err != nil {
		return fmt.Errorf("canceling job %d: %w", id, err)
	}

	return nil
}

// WaitFinished polls the job until it reaches a terminal state. A job that
// finalizes as anything but success is reported as rapi.ErrJobFailed with
// the job attached by message.
func (jc *JobsClient) WaitFinished(ctx context.Context, id int) (*rapi.Job, error) {
	pollCtx, cancel := context.WithTimeout(ctx, jc.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(jc.pollInterval)
	defer ticker.Stop()

	for {
		job, err := jc.Get(pollCtx, id)
		if err != nil {
			return nil, err
		}

		if job.Finalized() {
			if job.Status != rapi.JobStatusSuccess {
				return job, fmt.Errorf("%w: job %d finalized as %s", rapi.ErrJobFailed, id, job.Status)
			}

			return job, nil
		}

		select {
		case <-pollCtx.Done():
			return nil, fmt.Errorf("waiting for job %d: %w", id, pollCtx.Err())
		case <-ticker.C:
		}
	}
}
