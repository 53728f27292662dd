package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gnt-io/rapi/pkg/rapi"
)

// Static errors for instance operations.
var (
	ErrCreateUnsupported   = errors.New("server cannot create version-1 instances")
	ErrInvalidRebootType   = errors.New("reboot type must be one of hard, soft or full")
	ErrInvalidReplaceMode  = errors.New("invalid disk replacement mode")
	ErrOSParamsUnsupported = errors.New("server does not support OS parameters for instance reinstallation")
)

// defaultShutdownTimeout is the grace period the server gives an instance
// before it is forced off, in seconds.
const defaultShutdownTimeout = 120

// InstancesClient implements rapi.InstancesClient.
type InstancesClient struct {
	c *Client
}

// List returns the names of all instances.
func (ic *InstancesClient) List(ctx context.Context) ([]string, error) {
	var refs []rapi.ResourceRef
	if err := ic.c.request(ctx, http.MethodGet, "/2/instances", nil, nil, &refs); err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}

	return names(refs), nil
}

// ListDetails returns full information about all instances.
func (ic *InstancesClient) ListDetails(ctx context.Context) ([]rapi.Instance, error) {
	var instances []rapi.Instance

	query := rapi.Query{"bulk": 1}
	if err := ic.c.request(ctx, http.MethodGet, "/2/instances", query, nil, &instances); err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}

	return instances, nil
}

// Get implements rapi.InstancesClient.Get.
func (ic *InstancesClient) Get(ctx context.Context, name string) (*rapi.Instance, error) {
	var instance rapi.Instance
	if err := ic.c.request(ctx, http.MethodGet, "/2/instances/"+name, nil, nil, &instance); err != nil {
		return nil, fmt.Errorf("getting instance %s: %w", name, err)
	}

	return &instance, nil
}

// Info requests detailed instance information; the server gathers it in a
// job whose ID is returned.
func (ic *InstancesClient) Info(ctx context.Context, name string, static bool) (int, error) {
	var query rapi.Query
	if static {
		query = rapi.Query{"static": static}
	}

	jobID, err := ic.c.submit(ctx, http.MethodGet, "/2/instances/"+name+"/info", query, nil)
	if err != nil {
		return 0, fmt.Errorf("getting instance %s info: %w", name, err)
	}

	return jobID, nil
}

// Create submits a version-1 instance creation. The server must advertise
// the instance-create-reqv1 feature; older request formats are not spoken by
// this client.
func (ic *InstancesClient) Create(ctx context.Context, req *rapi.InstanceCreateRequest) (int, error) {
	if !ic.c.caps.Has(rapi.FeatureInstanceCreateReqV1) {
		return 0, fmt.Errorf("%w: %s not advertised", ErrCreateUnsupported, rapi.FeatureInstanceCreateReqV1)
	}

	query := withDryRun(rapi.Query{}, req.DryRun)

	if req.NoInstall {
		query["no-install"] = 1
	}

	body := map[string]interface{}{
		rapi.ReqDataVersionField: 1,
		"mode":                   req.Mode,
		"name":                   req.Name,
		"disk_template":          req.DiskTemplate,
		"disks":                  req.Disks,
		"nics":                   req.NICs,
	}

	if req.OSType != "" {
		body["os"] = req.OSType
	}

	if req.PrimaryNode != "" {
		body["pnode"] = req.PrimaryNode
	}

	if req.SecondaryNode != "" {
		body["snode"] = req.SecondaryNode
	}

	if req.IAllocator != "" {
		body["iallocator"] = req.IAllocator
	}

	if req.Hypervisor != "" {
		body["hypervisor"] = req.Hypervisor
	}

	if req.BEParams != nil {
		body["beparams"] = req.BEParams
	}

	if req.HVParams != nil {
		body["hvparams"] = req.HVParams
	}

	if req.OSParams != nil {
		body["osparams"] = req.OSParams
	}

	if req.Tags != nil {
		body["tags"] = req.Tags
	}

	if req.StartInstance != nil {
		body["start"] = *req.StartInstance
	}

	if req.IPCheck != nil {
		body["ip_check"] = *req.IPCheck
	}

	if req.NameCheck != nil {
		body["name_check"] = *req.NameCheck
	}

	jobID, err := ic.c.submit(ctx, http.MethodPost, "/2/instances", query, body)
	if err != nil {
		return 0, fmt.Errorf("creating instance %s: %w", req.Name, err)
	}

	return jobID, nil
}

// Delete implements rapi.InstancesClient.Delete.
func (ic *InstancesClient) Delete(ctx context.Context, name string, dryRun bool) (int, error) {
	query := withDryRun(rapi.Query{}, dryRun)

	jobID, err := ic.c.submit(ctx, http.MethodDelete, "/2/instances/"+name, query, nil)
	if err != nil {
		return 0, fmt.Errorf("deleting instance %s: %w", name, err)
	}

	return jobID, nil
}

// Modify implements rapi.InstancesClient.Modify.
func (ic *InstancesClient) Modify(ctx context.Context, name string, opts *rapi.InstanceModifyOpts) (int, error) {
	jobID, err := ic.c.submit(ctx, http.MethodPut, "/2/instances/"+name+"/modify", nil, opts)
	if err != nil {
		return 0, fmt.Errorf("modifying instance %s: %w", name, err)
	}

	return jobID, nil
}

// Startup implements rapi.InstancesClient.Startup.
func (ic *InstancesClient) Startup(ctx context.Context, name string, dryRun, noRemember bool) (int, error) {
	query := withDryRun(rapi.Query{"no-remember": noRemember}, dryRun)

	jobID, err := ic.c.submit(ctx, http.MethodPut, "/2/instances/"+name+"/startup", query, nil)
	if err != nil {
		return 0, fmt.Errorf("starting instance %s: %w", name, err)
	}

	return jobID, nil
}

// Shutdown implements rapi.InstancesClient.Shutdown.
func (ic *InstancesClient) Shutdown(ctx context.Context, name string, dryRun, noRemember bool) (int, error) {
	query := withDryRun(rapi.Query{"no-remember": noRemember}, dryRun)

	body := map[string]interface{}{
		"timeout": defaultShutdownTimeout,
	}

	jobID, err := ic.c.submit(ctx, http.MethodPut, "/2/instances/"+name+"/shutdown", query, body)
	if err != nil {
		return 0, fmt.Errorf("shutting down instance %s: %w", name, err)
	}

	return jobID, nil
}

// Reboot implements rapi.InstancesClient.Reboot.
func (ic *InstancesClient) Reboot(ctx context.Context, name, rebootType string, ignoreSecondaries, dryRun bool) (int, error) {
	query := withDryRun(rapi.Query{"ignore_secondaries": ignoreSecondaries}, dryRun)

	if rebootType != "" {
		switch rebootType {
		case rapi.RebootTypeHard, rapi.RebootTypeSoft, rapi.RebootTypeFull:
			query["type"] = rebootType
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidRebootType, rebootType)
		}
	}

	jobID, err := ic.c.submit(ctx, http.MethodPost, "/2/instances/"+name+"/reboot", query, nil)
	if err != nil {
		return 0, fmt.Errorf("rebooting instance %s: %w", name, err)
	}

	return jobID, nil
}

// Reinstall reinstalls an instance's operating system. Servers advertising
// instance-reinstall-reqv1 take a body request; older servers take query
// parameters and cannot accept OS parameters.
func (ic *InstancesClient) Reinstall(ctx context.Context, name string, opts *rapi.InstanceReinstallOpts) (int, error) {
	if opts == nil {
		opts = &rapi.InstanceReinstallOpts{}
	}

	path := "/2/instances/" + name + "/reinstall"

	if ic.c.caps.Has(rapi.FeatureInstanceReinstallReqV1) {
		body := map[string]interface{}{
			"start": !opts.NoStartup,
		}

		if opts.OS != "" {
			body["os"] = opts.OS
		}

		if opts.OSParams != nil {
			body["osparams"] = opts.OSParams
		}

		jobID, err := ic.c.submit(ctx, http.MethodPost, path, nil, body)
		if err != nil {
			return 0, fmt.Errorf("reinstalling instance %s: %w", name, err)
		}

		return jobID, nil
	}

	// Old request format.
	if opts.OSParams != nil {
		return 0, ErrOSParamsUnsupported
	}

	query := rapi.Query{"nostartup": opts.NoStartup}
	if opts.OS != "" {
		query["os"] = opts.OS
	}

	jobID, err := ic.c.submit(ctx, http.MethodPost, path, query, nil)
	if err != nil {
		return 0, fmt.Errorf("reinstalling instance %s: %w", name, err)
	}

	return jobID, nil
}

// Rename implements rapi.InstancesClient.Rename.
func (ic *InstancesClient) Rename(ctx context.Context, name, newName string, ipCheck, nameCheck bool) (int, error) {
	body := map[string]interface{}{
		"new_name":   newName,
		"ip_check":   ipCheck,
		"name_check": nameCheck,
	}

	jobID, err := ic.c.submit(ctx, http.MethodPut, "/2/instances/"+name+"/rename", nil, body)
	if err != nil {
		return 0, fmt.Errorf("renaming instance %s: %w", name, err)
	}

	return jobID, nil
}

// Migrate implements rapi.InstancesClient.Migrate.
func (ic *InstancesClient) Migrate(ctx context.Context, name, mode string, cleanup bool) (int, error) {
	body := map[string]interface{}{
		"cleanup": cleanup,
	}

	if mode != "" {
		body["mode"] = mode
	}

	jobID, err := ic.c.submit(ctx, http.MethodPut, "/2/instances/"+name+"/migrate", nil, body)
	if err != nil {
		return 0, fmt.Errorf("migrating instance %s: %w", name, err)
	}

	return jobID, nil
}

// Failover implements rapi.InstancesClient.Failover.
func (ic *InstancesClient) Failover(ctx context.Context, name, iallocator string, ignoreConsistency bool, targetNode string) (int, error) {
	body := map[string]interface{}{
		"ignore_consistency": ignoreConsistency,
	}

	if iallocator != "" {
		body["iallocator"] = iallocator
	}

	if targetNode != "" {
		body["target_node"] = targetNode
	}

	jobID, err := ic.c.submit(ctx, http.MethodPut, "/2/instances/"+name+"/failover", nil, body)
	if err != nil {
		return 0, fmt.Errorf("failing over instance %s: %w", name, err)
	}

	return jobID, nil
}

// Console implements rapi.InstancesClient.Console.
func (ic *InstancesClient) Console(ctx context.Context, name string) (*rapi.InstanceConsole, error) {
	var console rapi.InstanceConsole
	if err := ic.c.request(ctx, http.MethodGet, "/2/instances/"+name+"/console", nil, nil, &console); err != nil {
		return nil, fmt.Errorf("getting console for instance %s: %w", name, err)
	}

	return &console, nil
}

// ActivateDisks implements rapi.InstancesClient.ActivateDisks.
func (ic *InstancesClient) ActivateDisks(ctx context.Context, name string, ignoreSize bool) (int, error) {
	query := rapi.Query{"ignore_size": ignoreSize}

	jobID, err := ic.c.submit(ctx, http.MethodPut, "/2/instances/"+name+"/activate-disks", query, nil)
	if err != nil {
		return 0, fmt.Errorf("activating disks of instance %s: %w", name, err)
	}

	return jobID, nil
}

// DeactivateDisks implements rapi.InstancesClient.DeactivateDisks.
func (ic *InstancesClient) DeactivateDisks(ctx context.Context, name string) (int, error) {
	jobID, err := ic.c.submit(ctx, http.MethodPut, "/2/instances/"+name+"/deactivate-disks", nil, nil)
	if err != nil {
		return 0, fmt.Errorf("deactivating disks of instance %s: %w", name, err)
	}

	return jobID, nil
}

// RecreateDisks implements rapi.InstancesClient.RecreateDisks.
func (ic *InstancesClient) RecreateDisks(ctx context.Context, name string, disks []int, nodes []string) (int, error) {
	body := map[string]interface{}{}

	if disks != nil {
		body["disks"] = disks
	}

	if nodes != nil {
		body["nodes"] = nodes
	}

	jobID, err := ic.c.submit(ctx, http.MethodPost, "/2/instances/"+name+"/recreate-disks", nil, body)
	if err != nil {
		return 0, fmt.Errorf("recreating disks of instance %s: %w", name, err)
	}

	return jobID, nil
}

// GrowDisk implements rapi.InstancesClient.GrowDisk.
func (ic *InstancesClient) GrowDisk(ctx context.Context, name string, disk, amount int, waitForSync bool) (int, error) {
	body := map[string]interface{}{
		"amount":        amount,
		"wait_for_sync": waitForSync,
	}

	path := "/2/instances/" + name + "/disk/" + strconv.Itoa(disk) + "/grow"

	jobID, err := ic.c.submit(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return 0, fmt.Errorf("growing disk %d of instance %s: %w", disk, name, err)
	}

	return jobID, nil
}

// ReplaceDisks implements rapi.InstancesClient.ReplaceDisks.
func (ic *InstancesClient) ReplaceDisks(ctx context.Context, name string, opts *rapi.ReplaceDisksOpts) (int, error) {
	if opts == nil {
		opts = &rapi.ReplaceDisksOpts{}
	}

	mode := opts.Mode
	if mode == "" {
		mode = rapi.ReplaceDiskAuto
	}

	switch mode {
	case rapi.ReplaceDiskPrimary, rapi.ReplaceDiskSecondary, rapi.ReplaceDiskNewSecondary, rapi.ReplaceDiskAuto:
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidReplaceMode, mode)
	}

	query := rapi.Query{"mode": mode}

	if len(opts.Disks) > 0 {
		indexes := make([]string, len(opts.Disks))
		for i, idx := range opts.Disks {
			indexes[i] = strconv.Itoa(idx)
		}

		query["disks"] = strings.Join(indexes, ",")
	}

	if opts.RemoteNode != "" {
		query["remote_node"] = opts.RemoteNode
	}

	if opts.IAllocator != "" {
		query["iallocator"] = opts.IAllocator
	}

	jobID, err := ic.c.submit(ctx, http.MethodPost, "/2/instances/"+name+"/replace-disks", query, nil)
	if err != nil {
		return 0, fmt.Errorf("replacing disks of instance %s: %w", name, err)
	}

	return jobID, nil
}

// PrepareExport implements rapi.InstancesClient.PrepareExport.
func (ic *InstancesClient) PrepareExport(ctx context.Context, name, mode string) (int, error) {
	query := rapi.Query{"mode": mode}

	jobID, err := ic.c.submit(ctx, http.MethodPut, "/2/instances/"+name+"/prepare-export", query, nil)
	if err != nil {
		return 0, fmt.Errorf("preparing export of instance %s: %w", name, err)
	}

	return jobID, nil
}

// Export implements rapi.InstancesClient.Export.
func (ic *InstancesClient) Export(ctx context.Context, name, mode, destination string, shutdown bool) (int, error) {
	body := map[string]interface{}{
		"destination": destination,
		"mode":        mode,
		"shutdown":    shutdown,
	}

	jobID, err := ic.c.submit(ctx, http.MethodPut, "/2/instances/"+name+"/export", nil, body)
	if err != nil {
		return 0, fmt.Errorf("exporting instance %s: %w", name, err)
	}

	return jobID, nil
}

// Tags implements rapi.InstancesClient.Tags.
func (ic *InstancesClient) Tags(ctx context.Context, name string) ([]string, error) {
	var tags []string
	if err := ic.c.request(ctx, http.MethodGet, "/2/instances/"+name+"/tags", nil, nil, &tags); err != nil {
		return nil, fmt.Errorf("getting tags of instance %s: %w", name, err)
	}

	return tags, nil
}

// AddTags implements rapi.InstancesClient.AddTags.
func (ic *InstancesClient) AddTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error) {
	jobID, err := ic.c.submit(ctx, http.MethodPut, "/2/instances/"+name+"/tags", tagQuery(tags, dryRun), nil)
	if err != nil {
		return 0, fmt.Errorf("adding tags to instance %s: %w", name, err)
	}

	return jobID, nil
}

// DeleteTags implements rapi.InstancesClient.DeleteTags.
func (ic *InstancesClient) DeleteTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error) {
	jobID, err := ic.c.submit(ctx, http.MethodDelete, "/2/instances/"+name+"/tags", tagQuery(tags, dryRun), nil)
	if err != nil {
		return 0, fmt.Errorf("deleting tags from instance %s: %w", name, err)
	}

	return jobID, nil
}
