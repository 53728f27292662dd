// Package client implements the rapi.Client interface: the request façade,
// the version/feature handshake, and one file per resource group.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/gnt-io/rapi/internal/constants"
	internalhttp "github.com/gnt-io/rapi/internal/http"
	"github.com/gnt-io/rapi/pkg/rapi"
)

// Client implements the rapi.Client interface.
type Client struct {
	doer    internalhttp.Doer
	baseURL string
	caps    *capabilityCell
	logger  rapi.Logger

	cluster   *ClusterClient
	instances *InstancesClient
	nodes     *NodesClient
	groups    *GroupsClient
	jobs      *JobsClient
}

// New creates a new RAPI client from config. It validates the construction
// invariants and builds the selected transport; it does not touch the
// network. Run Start before issuing endpoint calls.
func New(config *rapi.Config) (*Client, error) {
	if config == nil {
		return nil, rapi.ErrConfigRequired
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	port := config.Port
	if port == 0 {
		port = rapi.DefaultPort
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = constants.DefaultTimeout
	}

	// JoinHostPort brackets IPv6 literals, so both "master.example.com"
	// and "2001:db8::1" produce a valid base URL.
	baseURL := "https://" + net.JoinHostPort(config.Host, strconv.Itoa(port))

	opts := []internalhttp.Option{
		internalhttp.WithTimeout(timeout),
		internalhttp.WithTLSVerification(!config.SkipTLSVerify),
		internalhttp.WithDebug(config.Debug),
	}

	if config.Username != "" {
		opts = append(opts, internalhttp.WithBasicAuth(config.Username, config.Password))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	var doer internalhttp.Doer
	if config.NonBlocking {
		doer = internalhttp.NewAsyncClient(baseURL, opts...)
	} else {
		doer = internalhttp.NewClient(baseURL, opts...)
	}

	client := &Client{
		doer:    doer,
		baseURL: baseURL,
		caps:    &capabilityCell{},
		logger:  config.Logger,
	}

	client.cluster = &ClusterClient{c: client}
	client.instances = &InstancesClient{c: client}
	client.nodes = &NodesClient{c: client}
	client.groups = &GroupsClient{c: client}
	client.jobs = NewJobsClient(client)

	return client, nil
}

// request dispatches one exchange: it validates the path invariant, coerces
// the query, and decodes the response body into out when out is non-nil. An
// empty body on success is not an error; out is left untouched.
func (c *Client) request(ctx context.Context, method, path string, query rapi.Query, body, out interface{}) error {
	if !strings.HasPrefix(path, "/") {
		return &rapi.ConfigError{Reason: fmt.Sprintf("called with bad path %q", path)}
	}

	req := &internalhttp.Request{
		Method: method,
		Path:   path,
		Body:   body,
	}

	if query != nil {
		values, err := query.Values()
		if err != nil {
			return err
		}

		req.Query = values
	}

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := resp.JSON(out); err != nil {
		if errors.Is(err, rapi.ErrNoContent) {
			return nil
		}

		return err
	}

	return nil
}

// submit dispatches a job-submitting exchange and decodes the returned job
// ID.
func (c *Client) submit(ctx context.Context, method, path string, query rapi.Query, body interface{}) (int, error) {
	var jobID int
	if err := c.request(ctx, method, path, query, body, &jobID); err != nil {
		return 0, err
	}

	return jobID, nil
}

// Start performs the one-time handshake: it fetches the server API version,
// rejects anything but version 2, then fetches the optional feature list. A
// 404 on the feature endpoint is expected from older servers and yields an
// empty feature set; every other failure propagates.
func (c *Client) Start(ctx context.Context) error {
	var version int
	if err := c.request(ctx, nethttp.MethodGet, "/version", nil, nil, &version); err != nil {
		return fmt.Errorf("fetching remote API version: %w", err)
	}

	if version != rapi.SupportedAPIVersion {
		return &rapi.UnsupportedVersionError{Version: version}
	}

	if err := c.caps.setVersion(version); err != nil {
		return err
	}

	var features []string

	err := c.request(ctx, nethttp.MethodGet, "/2/features", nil, nil, &features)
	if err != nil {
		if !rapi.IsStatus(err, nethttp.StatusNotFound) {
			return fmt.Errorf("fetching remote API features: %w", err)
		}

		// Older servers have no feature list. Totally reasonable.
		features = nil
	}

	c.caps.setFeatures(features)

	if c.logger != nil {
		c.logger.Info("remote API handshake complete", map[string]interface{}{
			"version":  version,
			"features": features,
		})
	}

	return nil
}

// Capabilities implements rapi.Client.Capabilities.
func (c *Client) Capabilities() rapi.Capabilities {
	return c.caps
}

// Cluster implements rapi.Client.Cluster.
func (c *Client) Cluster() rapi.ClusterClient {
	return c.cluster
}

// Instances implements rapi.Client.Instances.
func (c *Client) Instances() rapi.InstancesClient {
	return c.instances
}

// Nodes implements rapi.Client.Nodes.
func (c *Client) Nodes() rapi.NodesClient {
	return c.nodes
}

// Groups implements rapi.Client.Groups.
func (c *Client) Groups() rapi.GroupsClient {
	return c.groups
}

// Jobs implements rapi.Client.Jobs.
func (c *Client) Jobs() rapi.JobsClient {
	return c.jobs
}

// names projects a list of {id, uri} references down to the identifiers.
func names(refs []rapi.ResourceRef) []string {
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = ref.ID
	}

	return out
}

// tagQuery builds the query mapping shared by every tag mutation.
func tagQuery(tags []string, dryRun bool) rapi.Query {
	return withDryRun(rapi.Query{"tag": tags}, dryRun)
}

// withDryRun marks the query for a trial run. The server treats an absent
// flag as false, so it is appended only when requested.
func withDryRun(query rapi.Query, dryRun bool) rapi.Query {
	if dryRun {
		query["dry-run"] = 1
	}

	return query
}
