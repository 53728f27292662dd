package rapi

// SupportedAPIVersion is the remote API major version this client speaks.
const SupportedAPIVersion = 2

// DefaultPort is the port the RAPI daemon listens on by default.
const DefaultPort = 5080

// Disk replacement modes.
const (
	ReplaceDiskPrimary      = "replace_on_primary"
	ReplaceDiskSecondary    = "replace_on_secondary"
	ReplaceDiskNewSecondary = "replace_new_secondary"
	ReplaceDiskAuto         = "replace_auto"
)

// Reboot types.
const (
	RebootTypeHard = "hard"
	RebootTypeSoft = "soft"
	RebootTypeFull = "full"
)

// Node evacuation modes.
const (
	NodeEvacPrimary   = "primary-only"
	NodeEvacSecondary = "secondary-only"
	NodeEvacAll       = "all"
)

// Node roles.
const (
	NodeRoleDrained         = "drained"
	NodeRoleMasterCandidate = "master-candidate"
	NodeRoleMaster          = "master"
	NodeRoleOffline         = "offline"
	NodeRoleRegular         = "regular"
)

// Job statuses.
const (
	JobStatusQueued    = "queued"
	JobStatusWaiting   = "waiting"
	JobStatusCanceling = "canceling"
	JobStatusRunning   = "running"
	JobStatusCanceled  = "canceled"
	JobStatusSuccess   = "success"
	JobStatusError     = "error"
)

// JobStatusFinalized reports whether a job status is terminal.
func JobStatusFinalized(status string) bool {
	switch status {
	case JobStatusCanceled, JobStatusSuccess, JobStatusError:
		return true
	default:
		return false
	}
}

// Feature tokens advertised by the server and negotiated during the
// handshake. Call-sites use these to select request formats.
const (
	FeatureInstanceCreateReqV1    = "instance-create-reqv1"
	FeatureInstanceReinstallReqV1 = "instance-reinstall-reqv1"
	FeatureNodeMigrateReqV1       = "node-migrate-reqv1"
	FeatureNodeEvacRes1           = "node-evac-res1"
)

// ReqDataVersionField marks version-1 instance creation request bodies.
const ReqDataVersionField = "__version__"
