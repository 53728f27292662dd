package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gnt-io/rapi/pkg/rapi"
)

// GroupsClient implements rapi.GroupsClient.
type GroupsClient struct {
	c *Client
}

// List returns the names of all node groups.
func (gc *GroupsClient) List(ctx context.Context) ([]string, error) {
	var refs []rapi.ResourceRef
	if err := gc.c.request(ctx, http.MethodGet, "/2/groups", nil, nil, &refs); err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	return names(refs), nil
}

// ListDetails returns full information about all node groups.
func (gc *GroupsClient) ListDetails(ctx context.Context) ([]rapi.Group, error) {
	var groups []rapi.Group

	query := rapi.Query{"bulk": 1}
	if err := gc.c.request(ctx, http.MethodGet, "/2/groups", query, nil, &groups); err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	return groups, nil
}

// Get implements rapi.GroupsClient.Get.
func (gc *GroupsClient) Get(ctx context.Context, name string) (*rapi.Group, error) {
	var group rapi.Group
	if err := gc.c.request(ctx, http.MethodGet, "/2/groups/"+name, nil, nil, &group); err != nil {
		return nil, fmt.Errorf("getting group %s: %w", name, err)
	}

	return &group, nil
}

// Create implements rapi.GroupsClient.Create.
func (gc *GroupsClient) Create(ctx context.Context, name, allocPolicy string, dryRun bool) (int, error) {
	query := withDryRun(rapi.Query{}, dryRun)

	body := map[string]interface{}{
		"name":         name,
		"alloc_policy": allocPolicy,
	}

	jobID, err := gc.c.submit(ctx, http.MethodPost, "/2/groups", query, body)
	if err != nil {
		return 0, fmt.Errorf("creating group %s: %w", name, err)
	}

	return jobID, nil
}

// Modify implements rapi.GroupsClient.Modify.
func (gc *GroupsClient) Modify(ctx context.Context, name string, opts *rapi.GroupModifyOpts) (int, error) {
	jobID, err := gc.c.submit(ctx, http.MethodPut, "/2/groups/"+name+"/modify", nil, opts)
	if err != nil {
		return 0, fmt.Errorf("modifying group %s: %w", name, err)
	}

	return jobID, nil
}

// Delete implements rapi.GroupsClient.Delete.
func (gc *GroupsClient) Delete(ctx context.Context, name string, dryRun bool) (int, error) {
	query := withDryRun(rapi.Query{}, dryRun)

	jobID, err := gc.c.submit(ctx, http.MethodDelete, "/2/groups/"+name, query, nil)
	if err != nil {
		return 0, fmt.Errorf("deleting group %s: %w", name, err)
	}

	return jobID, nil
}

// Rename implements rapi.GroupsClient.Rename.
func (gc *GroupsClient) Rename(ctx context.Context, name, newName string) (int, error) {
	body := map[string]interface{}{
		"new_name": newName,
	}

	jobID, err := gc.c.submit(ctx, http.MethodPut, "/2/groups/"+name+"/rename", nil, body)
	if err != nil {
		return 0, fmt.Errorf("renaming group %s: %w", name, err)
	}

	return jobID, nil
}

// AssignNodes implements rapi.GroupsClient.AssignNodes.
func (gc *GroupsClient) AssignNodes(ctx context.Context, name string, nodes []string, force, dryRun bool) (int, error) {
	query := withDryRun(rapi.Query{"force": force}, dryRun)

	body := map[string]interface{}{
		"nodes": nodes,
	}

	jobID, err := gc.c.submit(ctx, http.MethodPut, "/2/groups/"+name+"/assign-nodes", query, body)
	if err != nil {
		return 0, fmt.Errorf("assigning nodes to group %s: %w", name, err)
	}

	return jobID, nil
}

// Tags implements rapi.GroupsClient.Tags.
func (gc *GroupsClient) Tags(ctx context.Context, name string) ([]string, error) {
	var tags []string
	if err := gc.c.request(ctx, http.MethodGet, "/2/groups/"+name+"/tags", nil, nil, &tags); err != nil {
		return nil, fmt.Errorf("getting tags of group %s: %w", name, err)
	}

	return tags, nil
}

// AddTags implements rapi.GroupsClient.AddTags.
func (gc *GroupsClient) AddTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error) {
	jobID, err := gc.c.submit(ctx, http.MethodPut, "/2/groups/"+name+"/tags", tagQuery(tags, dryRun), nil)
	if err != nil {
		return 0, fmt.Errorf("adding tags to group %s: %w", name, err)
	}

	return jobID, nil
}

// DeleteTags implements rapi.GroupsClient.DeleteTags.
func (gc *GroupsClient) DeleteTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error) {
	jobID, err := gc.c.submit(ctx, http.MethodDelete, "/2/groups/"+name+"/tags", tagQuery(tags, dryRun), nil)
	if err != nil {
		return 0, fmt.Errorf("deleting tags from group %s: %w", name, err)
	}

	return jobID, nil
}
