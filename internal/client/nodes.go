package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gnt-io/rapi/pkg/rapi"
)

// Static errors for node operations.
var (
	ErrEvacuationUnsupported = errors.New("server is too old to evacuate nodes with this client")
	ErrTargetNodeUnsupported = errors.New("server does not support specifying target node for node migration")
)

// NodesClient implements rapi.NodesClient.
type NodesClient struct {
	c *Client
}

// List returns the names of all nodes.
func (nc *NodesClient) List(ctx context.Context) ([]string, error) {
	var refs []rapi.ResourceRef
	if err := nc.c.request(ctx, http.MethodGet, "/2/nodes", nil, nil, &refs); err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}

	return names(refs), nil
}

// ListDetails returns full information about all nodes.
func (nc *NodesClient) ListDetails(ctx context.Context) ([]rapi.Node, error) {
	var nodes []rapi.Node

	query := rapi.Query{"bulk": 1}
	if err := nc.c.request(ctx, http.MethodGet, "/2/nodes", query, nil, &nodes); err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}

	return nodes, nil
}

// Get implements rapi.NodesClient.Get.
func (nc *NodesClient) Get(ctx context.Context, name string) (*rapi.Node, error) {
	var node rapi.Node
	if err := nc.c.request(ctx, http.MethodGet, "/2/nodes/"+name, nil, nil, &node); err != nil {
		return nil, fmt.Errorf("getting node %s: %w", name, err)
	}

	return &node, nil
}

// Role implements rapi.NodesClient.Role.
func (nc *NodesClient) Role(ctx context.Context, name string) (string, error) {
	var role string
	if err := nc.c.request(ctx, http.MethodGet, "/2/nodes/"+name+"/role", nil, nil, &role); err != nil {
		return "", fmt.Errorf("getting role of node %s: %w", name, err)
	}

	return role, nil
}

// SetRole implements rapi.NodesClient.SetRole. The new role is the request
// body; force and auto-promote travel as query flags.
func (nc *NodesClient) SetRole(ctx context.Context, name, role string, force, autoPromote bool) (int, error) {
	query := rapi.Query{
		"force":        force,
		"auto_promote": autoPromote,
	}

	jobID, err := nc.c.submit(ctx, http.MethodPut, "/2/nodes/"+name+"/role", query, role)
	if err != nil {
		return 0, fmt.Errorf("setting role of node %s: %w", name, err)
	}

	return jobID, nil
}

// Evacuate moves instances off a node. It requires the node-evac-res1 server
// feature; the pre-2.5 request format returned a different result shape and
// is not spoken by this client.
func (nc *NodesClient) Evacuate(ctx context.Context, name string, opts *rapi.NodeEvacuateOpts) (int, error) {
	if opts == nil {
		opts = &rapi.NodeEvacuateOpts{}
	}

	if opts.IAllocator != "" && opts.RemoteNode != "" {
		return 0, rapi.ErrEvacuationTargets
	}

	if !nc.c.caps.Has(rapi.FeatureNodeEvacRes1) {
		return 0, fmt.Errorf("%w: %s not advertised", ErrEvacuationUnsupported, rapi.FeatureNodeEvacRes1)
	}

	query := withDryRun(rapi.Query{}, opts.DryRun)

	body := map[string]interface{}{
		"early_release": opts.EarlyRelease,
	}

	if opts.IAllocator != "" {
		body["iallocator"] = opts.IAllocator
	}

	if opts.RemoteNode != "" {
		body["remote_node"] = opts.RemoteNode
	}

	if opts.Mode != "" {
		body["mode"] = opts.Mode
	}

	jobID, err := nc.c.submit(ctx, http.MethodPost, "/2/nodes/"+name+"/evacuate", query, body)
	if err != nil {
		return 0, fmt.Errorf("evacuating node %s: %w", name, err)
	}

	return jobID, nil
}

// Migrate moves all primary instances off a node. Servers advertising
// node-migrate-reqv1 take a body request; on older servers only the
// migration mode can be passed, as a query parameter.
func (nc *NodesClient) Migrate(ctx context.Context, name string, opts *rapi.NodeMigrateOpts) (int, error) {
	if opts == nil {
		opts = &rapi.NodeMigrateOpts{}
	}

	query := withDryRun(rapi.Query{}, opts.DryRun)

	var body map[string]interface{}

	if nc.c.caps.Has(rapi.FeatureNodeMigrateReqV1) {
		body = map[string]interface{}{}

		if opts.Mode != "" {
			body["mode"] = opts.Mode
		}

		if opts.IAllocator != "" {
			body["iallocator"] = opts.IAllocator
		}

		if opts.TargetNode != "" {
			body["target_node"] = opts.TargetNode
		}
	} else {
		if opts.TargetNode != "" {
			return 0, fmt.Errorf("%w: %s not advertised", ErrTargetNodeUnsupported, rapi.FeatureNodeMigrateReqV1)
		}

		if opts.Mode != "" {
			query["mode"] = opts.Mode
		}
	}

	var bodyArg interface{}
	if body != nil {
		bodyArg = body
	}

	jobID, err := nc.c.submit(ctx, http.MethodPost, "/2/nodes/"+name+"/migrate", query, bodyArg)
	if err != nil {
		return 0, fmt.Errorf("migrating node %s: %w", name, err)
	}

	return jobID, nil
}

// Powercycle implements rapi.NodesClient.Powercycle.
func (nc *NodesClient) Powercycle(ctx context.Context, name string, force bool) (int, error) {
	query := rapi.Query{"force": force}

	jobID, err := nc.c.submit(ctx, http.MethodPost, "/2/nodes/"+name+"/powercycle", query, nil)
	if err != nil {
		return 0, fmt.Errorf("powercycling node %s: %w", name, err)
	}

	return jobID, nil
}

// Modify implements rapi.NodesClient.Modify.
func (nc *NodesClient) Modify(ctx context.Context, name string, opts *rapi.NodeModifyOpts) (int, error) {
	jobID, err := nc.c.submit(ctx, http.MethodPost, "/2/nodes/"+name+"/modify", nil, opts)
	if err != nil {
		return 0, fmt.Errorf("modifying node %s: %w", name, err)
	}

	return jobID, nil
}

// StorageUnits requests the node's storage units of the given type; the
// server gathers them in a job whose ID is returned.
func (nc *NodesClient) StorageUnits(ctx context.Context, name, storageType string, outputFields []string) (int, error) {
	query := rapi.Query{
		"storage_type":  storageType,
		"output_fields": strings.Join(outputFields, ","),
	}

	jobID, err := nc.c.submit(ctx, http.MethodGet, "/2/nodes/"+name+"/storage", query, nil)
	if err != nil {
		return 0, fmt.Errorf("getting storage units of node %s: %w", name, err)
	}

	return jobID, nil
}

// ModifyStorageUnit implements rapi.NodesClient.ModifyStorageUnit.
func (nc *NodesClient) ModifyStorageUnit(ctx context.Context, name, storageType, unit string, allocatable *bool) (int, error) {
	query := rapi.Query{
		"storage_type": storageType,
		"name":         unit,
	}

	if allocatable != nil {
		query["allocatable"] = *allocatable
	}

	jobID, err := nc.c.submit(ctx, http.MethodPut, "/2/nodes/"+name+"/storage/modify", query, nil)
	if err != nil {
		return 0, fmt.Errorf("modifying storage unit %s of node %s: %w", unit, name, err)
	}

	return jobID, nil
}

// RepairStorageUnit implements rapi.NodesClient.RepairStorageUnit.
func (nc *NodesClient) RepairStorageUnit(ctx context.Context, name, storageType, unit string) (int, error) {
	query := rapi.Query{
		"storage_type": storageType,
		"name":         unit,
	}

	jobID, err := nc.c.submit(ctx, http.MethodPut, "/2/nodes/"+name+"/storage/repair", query, nil)
	if err != nil {
		return 0, fmt.Errorf("repairing storage unit %s of node %s: %w", unit, name, err)
	}

	return jobID, nil
}

// Tags implements rapi.NodesClient.Tags.
func (nc *NodesClient) Tags(ctx context.Context, name string) ([]string, error) {
	var tags []string
	if err := nc.c.request(ctx, http.MethodGet, "/2/nodes/"+name+"/tags", nil, nil, &tags); err != nil {
		return nil, fmt.Errorf("getting tags of node %s: %w", name, err)
	}

	return tags, nil
}

// AddTags implements rapi.NodesClient.AddTags.
func (nc *NodesClient) AddTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error) {
	jobID, err := nc.c.submit(ctx, http.MethodPut, "/2/nodes/"+name+"/tags", tagQuery(tags, dryRun), nil)
	if err != nil {
		return 0, fmt.Errorf("adding tags to node %s: %w", name, err)
	}

	return jobID, nil
}

// DeleteTags implements rapi.NodesClient.DeleteTags.
func (nc *NodesClient) DeleteTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error) {
	jobID, err := nc.c.submit(ctx, http.MethodDelete, "/2/nodes/"+name+"/tags", tagQuery(tags, dryRun), nil)
	if err != nil {
		return 0, fmt.Errorf("deleting tags from node %s: %w", name, err)
	}

	return jobID, nil
}
