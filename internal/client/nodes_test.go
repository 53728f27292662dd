package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnt-io/rapi/internal/client"
	"github.com/gnt-io/rapi/pkg/rapi"
)

func TestNodesClient_List(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/2/nodes", request.URL.Path)

		if request.URL.Query().Get("bulk") == "1" {
			writeJSON(t, writer, []rapi.Node{{Name: "node1", Role: rapi.NodeRoleMaster}})

			return
		}

		writeJSON(t, writer, []rapi.ResourceRef{{ID: "node1"}, {ID: "node2"}})
	})

	cli := newTestClient(t, handler)

	names, err := cli.Nodes().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"node1", "node2"}, names)

	nodes, err := cli.Nodes().ListDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, rapi.NodeRoleMaster, nodes[0].Role)
}

func TestNodesClient_Role(t *testing.T) {
	t.Parallel()

	t.Run("get role", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/2/nodes/node2/role", request.URL.Path)

			writeJSON(t, writer, rapi.NodeRoleMasterCandidate)
		})

		cli := newTestClient(t, handler)

		role, err := cli.Nodes().Role(context.Background(), "node2")
		require.NoError(t, err)
		assert.Equal(t, rapi.NodeRoleMasterCandidate, role)
	})

	t.Run("set role sends the role as body", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPut, request.Method)
			assert.Equal(t, "/2/nodes/node2/role", request.URL.Path)
			assert.Equal(t, "1", request.URL.Query().Get("force"))
			assert.Equal(t, "0", request.URL.Query().Get("auto_promote"))

			var role string

			decodeInto(t, request, &role)
			assert.Equal(t, rapi.NodeRoleDrained, role)

			writeJSON(t, writer, 21)
		})

		cli := newTestClient(t, handler)

		jobID, err := cli.Nodes().SetRole(context.Background(), "node2", rapi.NodeRoleDrained, true, false)
		require.NoError(t, err)
		assert.Equal(t, 21, jobID)
	})
}

func TestNodesClient_Evacuate(t *testing.T) {
	t.Parallel()

	t.Run("iallocator and remote node are mutually exclusive", func(t *testing.T) {
		t.Parallel()

		cli := newStartedClient(t, []string{rapi.FeatureNodeEvacRes1}, nil)

		_, err := cli.Nodes().Evacuate(context.Background(), "node1", &rapi.NodeEvacuateOpts{
			IAllocator: "hail",
			RemoteNode: "node2",
		})
		assert.ErrorIs(t, err, rapi.ErrEvacuationTargets)
	})

	t.Run("requires the evacuation result feature", func(t *testing.T) {
		t.Parallel()

		cli := newStartedClient(t, nil, nil)

		_, err := cli.Nodes().Evacuate(context.Background(), "node1", nil)
		assert.ErrorIs(t, err, client.ErrEvacuationUnsupported)
	})

	t.Run("sends the evacuation body", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/2/nodes/node1/evacuate", request.URL.Path)

			body := decodeBody(t, request)
			assert.Equal(t, true, body["early_release"])
			assert.Equal(t, "hail", body["iallocator"])
			assert.Equal(t, rapi.NodeEvacAll, body["mode"])
			assert.NotContains(t, body, "remote_node")

			writeJSON(t, writer, 22)
		})

		cli := newStartedClient(t, []string{rapi.FeatureNodeEvacRes1}, handler)

		jobID, err := cli.Nodes().Evacuate(context.Background(), "node1", &rapi.NodeEvacuateOpts{
			IAllocator:   "hail",
			Mode:         rapi.NodeEvacAll,
			EarlyRelease: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 22, jobID)
	})
}

func TestNodesClient_Migrate(t *testing.T) {
	t.Parallel()

	t.Run("body format when the feature is advertised", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/2/nodes/node1/migrate", request.URL.Path)
			assert.NotContains(t, request.URL.Query(), "mode")

			body := decodeBody(t, request)
			assert.Equal(t, "live", body["mode"])
			assert.Equal(t, "node2", body["target_node"])

			writeJSON(t, writer, 23)
		})

		cli := newStartedClient(t, []string{rapi.FeatureNodeMigrateReqV1}, handler)

		_, err := cli.Nodes().Migrate(context.Background(), "node1", &rapi.NodeMigrateOpts{
			Mode:       "live",
			TargetNode: "node2",
		})
		require.NoError(t, err)
	})

	t.Run("query format on older servers", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "non-live", request.URL.Query().Get("mode"))

			writeJSON(t, writer, 24)
		})

		cli := newStartedClient(t, nil, handler)

		_, err := cli.Nodes().Migrate(context.Background(), "node1", &rapi.NodeMigrateOpts{Mode: "non-live"})
		require.NoError(t, err)
	})

	t.Run("target node needs the feature", func(t *testing.T) {
		t.Parallel()

		cli := newStartedClient(t, nil, nil)

		_, err := cli.Nodes().Migrate(context.Background(), "node1", &rapi.NodeMigrateOpts{TargetNode: "node2"})
		assert.ErrorIs(t, err, client.ErrTargetNodeUnsupported)
	})
}

func TestNodesClient_Storage(t *testing.T) {
	t.Parallel()

	t.Run("storage units query", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/2/nodes/node1/storage", request.URL.Path)
			assert.Equal(t, "lvm-vg", request.URL.Query().Get("storage_type"))
			assert.Equal(t, "name,size,free", request.URL.Query().Get("output_fields"))

			writeJSON(t, writer, 25)
		})

		cli := newTestClient(t, handler)

		jobID, err := cli.Nodes().StorageUnits(context.Background(), "node1", "lvm-vg", []string{"name", "size", "free"})
		require.NoError(t, err)
		assert.Equal(t, 25, jobID)
	})

	t.Run("modify storage unit with allocatable flag", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/2/nodes/node1/storage/modify", request.URL.Path)
			assert.Equal(t, "xenvg", request.URL.Query().Get("name"))
			assert.Equal(t, "1", request.URL.Query().Get("allocatable"))

			writeJSON(t, writer, 26)
		})

		cli := newTestClient(t, handler)

		allocatable := true

		_, err := cli.Nodes().ModifyStorageUnit(context.Background(), "node1", "lvm-vg", "xenvg", &allocatable)
		require.NoError(t, err)
	})

	t.Run("repair storage unit", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/2/nodes/node1/storage/repair", request.URL.Path)
			assert.Equal(t, "lvm-vg", request.URL.Query().Get("storage_type"))

			writeJSON(t, writer, 27)
		})

		cli := newTestClient(t, handler)

		_, err := cli.Nodes().RepairStorageUnit(context.Background(), "node1", "lvm-vg", "xenvg")
		require.NoError(t, err)
	})
}
