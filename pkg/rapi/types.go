package rapi

// ResourceRef is the short form returned by collection endpoints when bulk
// output is not requested: a resource identifier plus its URI.
type ResourceRef struct {
	ID  string `json:"id"  yaml:"id"`
	URI string `json:"uri" yaml:"uri"`
}

// ClusterInfo represents the /2/info response.
type ClusterInfo struct {
	Name               string                 `json:"name"                 yaml:"name"`
	Master             string                 `json:"master"               yaml:"master"`
	SoftwareVersion    string                 `json:"software_version"     yaml:"software_version"`
	ProtocolVersion    int                    `json:"protocol_version"     yaml:"protocol_version"`
	ExportVersion      int                    `json:"export_version"       yaml:"export_version"`
	OSAPIVersion       int                    `json:"os_api_version"       yaml:"os_api_version"`
	Architecture       []string               `json:"architecture"         yaml:"architecture"`
	DefaultHypervisor  string                 `json:"default_hypervisor"   yaml:"default_hypervisor"`
	EnabledHypervisors []string               `json:"enabled_hypervisors"  yaml:"enabled_hypervisors"`
	CandidatePoolSize  int                    `json:"candidate_pool_size"  yaml:"candidate_pool_size"`
	VolumeGroupName    string                 `json:"volume_group_name"    yaml:"volume_group_name"`
	DRBDUsermodeHelper string                 `json:"drbd_usermode_helper" yaml:"drbd_usermode_helper"`
	MasterNetdev       string                 `json:"master_netdev"        yaml:"master_netdev"`
	BEParams           map[string]interface{} `json:"beparams"             yaml:"beparams"`
	HVParams           map[string]interface{} `json:"hvparams"             yaml:"hvparams"`
	OSParams           map[string]interface{} `json:"osparams"             yaml:"osparams"`
	Tags               []string               `json:"tags"                 yaml:"tags"`
	UUID               string                 `json:"uuid"                 yaml:"uuid"`
}

// Instance represents one instance in bulk output or a single-instance
// response.
type Instance struct {
	Name           string   `json:"name"          yaml:"name"`
	AdminState     string   `json:"admin_state"   yaml:"admin_state"`
	OperState      bool     `json:"oper_state"    yaml:"oper_state"`
	Status         string   `json:"status"        yaml:"status"`
	PrimaryNode    string   `json:"pnode"         yaml:"pnode"`
	SecondaryNodes []string `json:"snodes"        yaml:"snodes"`
	DiskTemplate   string   `json:"disk_template" yaml:"disk_template"`
	DiskSizes      []int    `json:"disk.sizes"    yaml:"disk_sizes"`
	NICIPs         []string `json:"nic.ips"       yaml:"nic_ips"`
	NICMACs        []string `json:"nic.macs"      yaml:"nic_macs"`
	OperRAM        int      `json:"oper_ram"      yaml:"oper_ram"`
	OperVCPUs      int      `json:"oper_vcpus"    yaml:"oper_vcpus"`
	OSType         string   `json:"os"            yaml:"os"`
	NetworkPort    int      `json:"network_port"  yaml:"network_port"`
	CTime          float64  `json:"ctime"         yaml:"ctime"`
	MTime          float64  `json:"mtime"         yaml:"mtime"`
	Tags           []string `json:"tags"          yaml:"tags"`
	UUID           string   `json:"uuid"          yaml:"uuid"`
}

// InstanceConsole represents console access information for an instance.
type InstanceConsole struct {
	Instance string   `json:"instance" yaml:"instance"`
	Kind     string   `json:"kind"     yaml:"kind"`
	Host     string   `json:"host"     yaml:"host"`
	Port     int      `json:"port"     yaml:"port"`
	User     string   `json:"user"     yaml:"user"`
	Command  []string `json:"command"  yaml:"command"`
	Display  string   `json:"display"  yaml:"display"`
}

// DiskSpec describes one disk of an instance being created.
type DiskSpec struct {
	Size int    `json:"size"           yaml:"size"`
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// NICSpec describes one network interface of an instance being created.
type NICSpec struct {
	MAC  string `json:"mac,omitempty"  yaml:"mac,omitempty"`
	IP   string `json:"ip,omitempty"   yaml:"ip,omitempty"`
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// InstanceCreateRequest describes a version-1 instance creation. The server
// must advertise the instance-create-reqv1 feature.
type InstanceCreateRequest struct {
	Mode         string
	Name         string
	DiskTemplate string
	Disks        []DiskSpec
	NICs         []NICSpec

	// Optional parameters merged into the request body when set.
	OSType       string
	PrimaryNode  string
	SecondaryNode string
	IAllocator   string
	Hypervisor   string
	BEParams     map[string]interface{}
	HVParams     map[string]interface{}
	OSParams     map[string]interface{}
	Tags         []string
	StartInstance *bool
	IPCheck      *bool
	NameCheck    *bool

	// Query flags.
	DryRun    bool
	NoInstall bool
}

// InstanceModifyOpts lists the recognized instance modification parameters.
// Only non-zero fields are sent.
type InstanceModifyOpts struct {
	OSName   string                 `json:"os_name,omitempty"`
	BEParams map[string]interface{} `json:"beparams,omitempty"`
	HVParams map[string]interface{} `json:"hvparams,omitempty"`
	OSParams map[string]interface{} `json:"osparams,omitempty"`
}

// InstanceReinstallOpts describes an instance reinstallation.
type InstanceReinstallOpts struct {
	// OS selects the operating system to install; when empty the
	// instance's current OS is installed again.
	OS        string
	NoStartup bool
	// OSParams requires the instance-reinstall-reqv1 server feature.
	OSParams map[string]interface{}
}

// ReplaceDisksOpts describes a disk replacement.
type ReplaceDisksOpts struct {
	Disks      []int
	Mode       string
	RemoteNode string
	IAllocator string
}

// Node represents one node in bulk output or a single-node response.
type Node struct {
	Name            string   `json:"name"             yaml:"name"`
	Role            string   `json:"role"             yaml:"role"`
	Offline         bool     `json:"offline"          yaml:"offline"`
	Drained         bool     `json:"drained"          yaml:"drained"`
	MasterCandidate bool     `json:"master_candidate" yaml:"master_candidate"`
	MasterCapable   bool     `json:"master_capable"   yaml:"master_capable"`
	VMCapable       bool     `json:"vm_capable"       yaml:"vm_capable"`
	DTotal          int      `json:"dtotal"           yaml:"dtotal"`
	DFree           int      `json:"dfree"            yaml:"dfree"`
	MTotal          int      `json:"mtotal"           yaml:"mtotal"`
	MNode           int      `json:"mnode"            yaml:"mnode"`
	MFree           int      `json:"mfree"            yaml:"mfree"`
	CTotal          int      `json:"ctotal"           yaml:"ctotal"`
	PInstCount      int      `json:"pinst_cnt"        yaml:"pinst_cnt"`
	SInstCount      int      `json:"sinst_cnt"        yaml:"sinst_cnt"`
	PIP             string   `json:"pip"              yaml:"pip"`
	SIP             string   `json:"sip"              yaml:"sip"`
	GroupUUID       string   `json:"group.uuid"       yaml:"group_uuid"`
	Tags            []string `json:"tags"             yaml:"tags"`
	UUID            string   `json:"uuid"             yaml:"uuid"`
}

// NodeEvacuateOpts describes a node evacuation. RemoteNode and IAllocator
// are mutually exclusive.
type NodeEvacuateOpts struct {
	IAllocator   string
	RemoteNode   string
	Mode         string
	EarlyRelease bool
	DryRun       bool
}

// NodeMigrateOpts describes a node migration.
type NodeMigrateOpts struct {
	// Mode overrides the live migration type; when empty the hypervisor
	// default is used.
	Mode string
	// IAllocator and TargetNode require the node-migrate-reqv1 server
	// feature.
	IAllocator string
	TargetNode string
	DryRun     bool
}

// NodeModifyOpts lists the recognized node modification parameters. Only
// non-nil fields are sent.
type NodeModifyOpts struct {
	MasterCandidate *bool   `json:"master_candidate,omitempty"`
	Offline         *bool   `json:"offline,omitempty"`
	Drained         *bool   `json:"drained,omitempty"`
	MasterCapable   *bool   `json:"master_capable,omitempty"`
	VMCapable       *bool   `json:"vm_capable,omitempty"`
	AutoPromote     *bool   `json:"auto_promote,omitempty"`
	SecondaryIP     *string `json:"secondary_ip,omitempty"`
}

// Group represents one node group.
type Group struct {
	Name        string   `json:"name"         yaml:"name"`
	AllocPolicy string   `json:"alloc_policy" yaml:"alloc_policy"`
	NodeCount   int      `json:"node_cnt"     yaml:"node_cnt"`
	Nodes       []string `json:"node_list"    yaml:"node_list"`
	Tags        []string `json:"tags"         yaml:"tags"`
	UUID        string   `json:"uuid"         yaml:"uuid"`
}

// GroupModifyOpts lists the recognized group modification parameters.
type GroupModifyOpts struct {
	AllocPolicy *string `json:"alloc_policy,omitempty"`
}

// ClusterModifyOpts lists the recognized cluster modification parameters.
// Only non-nil fields are sent.
type ClusterModifyOpts struct {
	CandidatePoolSize  *int                   `json:"candidate_pool_size,omitempty"`
	EnabledHypervisors []string               `json:"enabled_hypervisors,omitempty"`
	BEParams           map[string]interface{} `json:"beparams,omitempty"`
	HVParams           map[string]interface{} `json:"hvparams,omitempty"`
	OSParams           map[string]interface{} `json:"osparams,omitempty"`
	VolumeGroupName    *string                `json:"vg_name,omitempty"`
	MasterNetdev       *string                `json:"master_netdev,omitempty"`
}

// Job represents one job as returned by /2/jobs/<id>.
type Job struct {
	ID         string                   `json:"id"          yaml:"id"`
	Status     string                   `json:"status"      yaml:"status"`
	Ops        []map[string]interface{} `json:"ops"         yaml:"ops"`
	OpStatus   []string                 `json:"opstatus"    yaml:"opstatus"`
	OpResult   []interface{}            `json:"opresult"    yaml:"opresult"`
	Summary    []string                 `json:"summary"     yaml:"summary"`
	ReceivedTS []int64                  `json:"received_ts" yaml:"received_ts"`
	StartTS    []int64                  `json:"start_ts"    yaml:"start_ts"`
	EndTS      []int64                  `json:"end_ts"      yaml:"end_ts"`
}

// Finalized reports whether the job has reached a terminal state.
func (j *Job) Finalized() bool {
	return JobStatusFinalized(j.Status)
}

// JobChange represents the /2/jobs/<id>/wait response.
type JobChange struct {
	JobInfo    []interface{} `json:"job_info"    yaml:"job_info"`
	LogEntries []interface{} `json:"log_entries" yaml:"log_entries"`
}

// QueryCell is one [status, value] pair of a query result row.
type QueryCell [2]interface{}

// QueryFieldDef describes one field of a query result.
type QueryFieldDef struct {
	Name  string `json:"name"  yaml:"name"`
	Title string `json:"title" yaml:"title"`
	Kind  string `json:"kind"  yaml:"kind"`
	Doc   string `json:"doc"   yaml:"doc"`
}

// QueryResponse represents the /2/query/<resource> response.
type QueryResponse struct {
	Fields []QueryFieldDef `json:"fields" yaml:"fields"`
	Data   [][]QueryCell   `json:"data"   yaml:"data"`
}

// QueryFieldsResponse represents the /2/query/<resource>/fields response.
type QueryFieldsResponse struct {
	Fields []QueryFieldDef `json:"fields" yaml:"fields"`
}
