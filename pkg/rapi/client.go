package rapi

import (
	"context"
	"time"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a rapi.Client.
//
// Host is required. Username and Password must be given together or not at
// all; the constructor fails fast on a lone credential. All other fields are
// optional and default sensibly.
type Config struct {
	// Host is the cluster master to interact with. IPv6 literals are
	// accepted and bracketed automatically when the base URL is built.
	Host string

	// Port is the port the RAPI daemon listens on. Defaults to 5080.
	Port int

	// Username and Password configure HTTP Basic authentication. The
	// RAPI has no other authentication scheme.
	Username string
	Password string

	// Timeout bounds each HTTP exchange. Defaults to 60 seconds.
	Timeout time.Duration

	// NonBlocking selects the concurrent transport: requests are driven
	// by background goroutines and many exchanges can be in flight on one
	// client. The external contract is identical to the default blocking
	// transport.
	NonBlocking bool

	// SkipTLSVerify disables certificate verification. RAPI deployments
	// commonly serve self-signed certificates.
	SkipTLSVerify bool

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables verbose request logging when a Logger is provided.
	Debug bool

	// Logger is an optional structured logger used by the transport and
	// the handshake. Logging is observational only; it never influences
	// error handling.
	Logger Logger
}

// Validate checks the construction invariants.
func (c *Config) Validate() error {
	if c.Host == "" {
		return &ConfigError{Reason: "host is required"}
	}

	if c.Username != "" && c.Password == "" {
		return &ConfigError{Reason: "password not specified"}
	}

	if c.Password != "" && c.Username == "" {
		return &ConfigError{Reason: "specified password without username"}
	}

	return nil
}

// Capabilities exposes the server capabilities discovered by the handshake.
// Both fields are write-once for the lifetime of the client: they are set by
// a successful Start and never reset.
type Capabilities interface {
	// Version returns the negotiated API version. The boolean is false
	// until the handshake has completed.
	Version() (int, bool)

	// Has reports whether the server advertises the given feature token.
	Has(feature string) bool

	// Features returns the advertised feature tokens, sorted.
	Features() []string
}

// ClusterClient provides access to cluster-level operations.
type ClusterClient interface {
	Info(ctx context.Context) (*ClusterInfo, error)
	OperatingSystems(ctx context.Context) ([]string, error)
	RedistributeConfig(ctx context.Context) (int, error)
	Modify(ctx context.Context, opts *ClusterModifyOpts) (int, error)
	Tags(ctx context.Context) ([]string, error)
	AddTags(ctx context.Context, tags []string, dryRun bool) (int, error)
	DeleteTags(ctx context.Context, tags []string, dryRun bool) (int, error)
	Query(ctx context.Context, what string, fields []string, filter interface{}) (*QueryResponse, error)
	QueryFields(ctx context.Context, what string, fields []string) (*QueryFieldsResponse, error)
}

// InstancesClient provides access to instance lifecycle operations.
type InstancesClient interface {
	List(ctx context.Context) ([]string, error)
	ListDetails(ctx context.Context) ([]Instance, error)
	Get(ctx context.Context, name string) (*Instance, error)
	Info(ctx context.Context, name string, static bool) (int, error)
	Create(ctx context.Context, req *InstanceCreateRequest) (int, error)
	Delete(ctx context.Context, name string, dryRun bool) (int, error)
	Modify(ctx context.Context, name string, opts *InstanceModifyOpts) (int, error)
	Startup(ctx context.Context, name string, dryRun, noRemember bool) (int, error)
	Shutdown(ctx context.Context, name string, dryRun, noRemember bool) (int, error)
	Reboot(ctx context.Context, name, rebootType string, ignoreSecondaries, dryRun bool) (int, error)
	Reinstall(ctx context.Context, name string, opts *InstanceReinstallOpts) (int, error)
	Rename(ctx context.Context, name, newName string, ipCheck, nameCheck bool) (int, error)
	Migrate(ctx context.Context, name, mode string, cleanup bool) (int, error)
	Failover(ctx context.Context, name, iallocator string, ignoreConsistency bool, targetNode string) (int, error)
	Console(ctx context.Context, name string) (*InstanceConsole, error)
	ActivateDisks(ctx context.Context, name string, ignoreSize bool) (int, error)
	DeactivateDisks(ctx context.Context, name string) (int, error)
	RecreateDisks(ctx context.Context, name string, disks []int, nodes []string) (int, error)
	GrowDisk(ctx context.Context, name string, disk, amount int, waitForSync bool) (int, error)
	ReplaceDisks(ctx context.Context, name string, opts *ReplaceDisksOpts) (int, error)
	PrepareExport(ctx context.Context, name, mode string) (int, error)
	Export(ctx context.Context, name, mode, destination string, shutdown bool) (int, error)
	Tags(ctx context.Context, name string) ([]string, error)
	AddTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error)
	DeleteTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error)
}

// NodesClient provides access to node role and membership operations.
type NodesClient interface {
	List(ctx context.Context) ([]string, error)
	ListDetails(ctx context.Context) ([]Node, error)
	Get(ctx context.Context, name string) (*Node, error)
	Role(ctx context.Context, name string) (string, error)
	SetRole(ctx context.Context, name, role string, force, autoPromote bool) (int, error)
	Evacuate(ctx context.Context, name string, opts *NodeEvacuateOpts) (int, error)
	Migrate(ctx context.Context, name string, opts *NodeMigrateOpts) (int, error)
	Powercycle(ctx context.Context, name string, force bool) (int, error)
	Modify(ctx context.Context, name string, opts *NodeModifyOpts) (int, error)
	StorageUnits(ctx context.Context, name, storageType string, outputFields []string) (int, error)
	ModifyStorageUnit(ctx context.Context, name, storageType, unit string, allocatable *bool) (int, error)
	RepairStorageUnit(ctx context.Context, name, storageType, unit string) (int, error)
	Tags(ctx context.Context, name string) ([]string, error)
	AddTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error)
	DeleteTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error)
}

// GroupsClient provides access to node-group membership operations.
type GroupsClient interface {
	List(ctx context.Context) ([]string, error)
	ListDetails(ctx context.Context) ([]Group, error)
	Get(ctx context.Context, name string) (*Group, error)
	Create(ctx context.Context, name, allocPolicy string, dryRun bool) (int, error)
	Modify(ctx context.Context, name string, opts *GroupModifyOpts) (int, error)
	Delete(ctx context.Context, name string, dryRun bool) (int, error)
	Rename(ctx context.Context, name, newName string) (int, error)
	AssignNodes(ctx context.Context, name string, nodes []string, force, dryRun bool) (int, error)
	Tags(ctx context.Context, name string) ([]string, error)
	AddTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error)
	DeleteTags(ctx context.Context, name string, tags []string, dryRun bool) (int, error)
}

// JobsClient provides access to job polling operations.
type JobsClient interface {
	List(ctx context.Context) ([]int, error)
	Get(ctx context.Context, id int) (*Job, error)
	WaitForChange(ctx context.Context, id int, fields []string, prevInfo interface{}, prevLogSerial int) (*JobChange, error)
	Cancel(ctx context.Context, id int, dryRun bool) error
	WaitFinished(ctx context.Context, id int) (*Job, error)
}

// Client is the full RAPI client surface: the one-time handshake, the
// negotiated capabilities, and the per-resource clients.
type Client interface {
	// Start performs the version/feature handshake. It must complete
	// before endpoint calls are issued; re-invocation against an
	// unchanged server is idempotent.
	Start(ctx context.Context) error

	Capabilities() Capabilities

	Cluster() ClusterClient
	Instances() InstancesClient
	Nodes() NodesClient
	Groups() GroupsClient
	Jobs() JobsClient
}
