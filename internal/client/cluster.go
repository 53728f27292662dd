package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gnt-io/rapi/pkg/rapi"
)

// ClusterClient implements rapi.ClusterClient.
type ClusterClient struct {
	c *Client
}

// Info implements rapi.ClusterClient.Info.
func (cc *ClusterClient) Info(ctx context.Context) (*rapi.ClusterInfo, error) {
	var info rapi.ClusterInfo
	if err := cc.c.request(ctx, http.MethodGet, "/2/info", nil, nil, &info); err != nil {
		return nil, fmt.Errorf("getting cluster info: %w", err)
	}

	return &info, nil
}

// OperatingSystems implements rapi.ClusterClient.OperatingSystems.
func (cc *ClusterClient) OperatingSystems(ctx context.Context) ([]string, error) {
	var oses []string
	if err := cc.c.request(ctx, http.MethodGet, "/2/os", nil, nil, &oses); err != nil {
		return nil, fmt.Errorf("getting operating systems: %w", err)
	}

	return oses, nil
}

// RedistributeConfig tells the cluster to redistribute its configuration
// files. Returns a job ID.
func (cc *ClusterClient) RedistributeConfig(ctx context.Context) (int, error) {
	jobID, err := cc.c.submit(ctx, http.MethodPut, "/2/redistribute-config", nil, nil)
	if err != nil {
		return 0, fmt.Errorf("redistributing cluster config: %w", err)
	}

	return jobID, nil
}

// Modify implements rapi.ClusterClient.Modify.
func (cc *ClusterClient) Modify(ctx context.Context, opts *rapi.ClusterModifyOpts) (int, error) {
	jobID, err := cc.c.submit(ctx, http.MethodPut, "/2/modify", nil, opts)
	if err != nil {
		return 0, fmt.Errorf("modifying cluster: %w", err)
	}

	return jobID, nil
}

// Tags implements rapi.ClusterClient.Tags.
func (cc *ClusterClient) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := cc.c.request(ctx, http.MethodGet, "/2/tags", nil, nil, &tags); err != nil {
		return nil, fmt.Errorf("getting cluster tags: %w", err)
	}

	return tags, nil
}

// AddTags implements rapi.ClusterClient.AddTags.
func (cc *ClusterClient) AddTags(ctx context.Context, tags []string, dryRun bool) (int, error) {
	jobID, err := cc.c.submit(ctx, http.MethodPut, "/2/tags", tagQuery(tags, dryRun), nil)
	if err != nil {
		return 0, fmt.Errorf("adding cluster tags: %w", err)
	}

	return jobID, nil
}

// DeleteTags implements rapi.ClusterClient.DeleteTags.
func (cc *ClusterClient) DeleteTags(ctx context.Context, tags []string, dryRun bool) (int, error) {
	jobID, err := cc.c.submit(ctx, http.MethodDelete, "/2/tags", tagQuery(tags, dryRun), nil)
	if err != nil {
		return 0, fmt.Errorf("deleting cluster tags: %w", err)
	}

	return jobID, nil
}

// Query runs a resource query against /2/query/<what>.
func (cc *ClusterClient) Query(ctx context.Context, what string, fields []string, filter interface{}) (*rapi.QueryResponse, error) {
	body := map[string]interface{}{
		"fields": fields,
	}

	if filter != nil {
		// Both spellings are sent for compatibility across server
		// versions.
		body["qfilter"] = filter
		body["filter"] = filter
	}

	var result rapi.QueryResponse
	if err := cc.c.request(ctx, http.MethodPut, "/2/query/"+what, nil, body, &result); err != nil {
		return nil, fmt.Errorf("querying %s: %w", what, err)
	}

	return &result, nil
}

// QueryFields fetches the available fields for a query resource.
func (cc *ClusterClient) QueryFields(ctx context.Context, what string, fields []string) (*rapi.QueryFieldsResponse, error) {
	var query rapi.Query
	if fields != nil {
		query = rapi.Query{"fields": strings.Join(fields, ",")}
	}

	var result rapi.QueryFieldsResponse
	if err := cc.c.request(ctx, http.MethodGet, "/2/query/"+what+"/fields", query, nil, &result); err != nil {
		return nil, fmt.Errorf("querying %s fields: %w", what, err)
	}

	return &result, nil
}
