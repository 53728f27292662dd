package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gnt-io/rapi/pkg/rapi"
)

// NewNodesCommand creates the nodes command group.
func NewNodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nodes",
		Aliases: []string{"node"},
		Short:   "Manage cluster nodes",
		Long:    "Node operations: list, inspect, role changes, evacuation, migration",
	}

	cmd.AddCommand(newNodesListCommand())
	cmd.AddCommand(newNodesGetCommand())
	cmd.AddCommand(newNodesRoleCommand())
	cmd.AddCommand(newNodesSetRoleCommand())
	cmd.AddCommand(newNodesEvacuateCommand())
	cmd.AddCommand(newNodesMigrateCommand())
	cmd.AddCommand(newNodesPowercycleCommand())
	cmd.AddCommand(newTagsCommand("node tags", func(ctx context.Context, nameArgs []string) (tagOps, error) {
		client, err := createClient(ctx)
		if err != nil {
			return tagOps{}, err
		}

		name := nameArgs[0]

		return tagOps{
			get: func(ctx context.Context) ([]string, error) {
				return client.Nodes().Tags(ctx, name)
			},
			add: func(ctx context.Context, tags []string, dryRun bool) (int, error) {
				return client.Nodes().AddTags(ctx, name, tags, dryRun)
			},
			del: func(ctx context.Context, tags []string, dryRun bool) (int, error) {
				return client.Nodes().DeleteTags(ctx, name, tags, dryRun)
			},
		}, nil
	}, 1))

	return cmd
}

func newNodesListCommand() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cluster nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if !details {
				names, err := client.Nodes().List(ctx)
				if err != nil {
					return fmt.Errorf("failed to list nodes: %w", err)
				}

				return renderNameList("Node", names)
			}

			nodes, err := client.Nodes().ListDetails(ctx)
			if err != nil {
				return fmt.Errorf("failed to list nodes: %w", err)
			}

			if structuredOutput() {
				return renderValue(nodes)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Role", "Instances", "Free Memory", "Free Disk")

			for _, node := range nodes {
				_ = table.Append(
					node.Name,
					node.Role,
					fmt.Sprintf("%d/%d", node.PInstCount, node.SInstCount),
					fmt.Sprintf("%d MiB", node.MFree),
					fmt.Sprintf("%d MiB", node.DFree),
				)
			}

			return table.Render()
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "show full node information")

	return cmd
}

func newNodesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show one node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			node, err := client.Nodes().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get node: %w", err)
			}

			if structuredOutput() {
				return renderValue(node)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("Name", node.Name)
			_ = table.Append("Role", node.Role)
			_ = table.Append("Offline", yesNo(node.Offline))
			_ = table.Append("Drained", yesNo(node.Drained))
			_ = table.Append("Master candidate", yesNo(node.MasterCandidate))
			_ = table.Append("VM capable", yesNo(node.VMCapable))
			_ = table.Append("Primary instances", fmt.Sprint(node.PInstCount))
			_ = table.Append("Secondary instances", fmt.Sprint(node.SInstCount))
			_ = table.Append("Memory total", fmt.Sprintf("%d MiB", node.MTotal))
			_ = table.Append("Memory free", fmt.Sprintf("%d MiB", node.MFree))
			_ = table.Append("Disk total", fmt.Sprintf("%d MiB", node.DTotal))
			_ = table.Append("Disk free", fmt.Sprintf("%d MiB", node.DFree))
			_ = table.Append("Tags", joinOrDash(node.Tags))
			_ = table.Append("UUID", node.UUID)

			return table.Render()
		},
	}
}

func newNodesRoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "role NAME",
		Short: "Show the role of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			role, err := client.Nodes().Role(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get node role: %w", err)
			}

			if structuredOutput() {
				return renderValue(map[string]string{"role": role})
			}

			fmt.Println(role)

			return nil
		},
	}
}

func newNodesSetRoleCommand() *cobra.Command {
	var force, autoPromote bool

	cmd := &cobra.Command{
		Use:   "set-role NAME ROLE",
		Short: "Change the role of a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Nodes().SetRole(ctx, args[0], args[1], force, autoPromote)
			if err != nil {
				return fmt.Errorf("failed to set node role: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "force the role change")
	cmd.Flags().BoolVar(&autoPromote, "auto-promote", false, "promote other nodes to satisfy the candidate pool")

	return cmd
}

func newNodesEvacuateCommand() *cobra.Command {
	var (
		iallocator   string
		remoteNode   string
		mode         string
		earlyRelease bool
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "evacuate NAME",
		Short: "Evacuate instances off a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Nodes().Evacuate(ctx, args[0], &rapi.NodeEvacuateOpts{
				IAllocator:   iallocator,
				RemoteNode:   remoteNode,
				Mode:         mode,
				EarlyRelease: earlyRelease,
				DryRun:       dryRun,
			})
			if err != nil {
				return fmt.Errorf("failed to evacuate node: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().StringVar(&iallocator, "iallocator", "", "instance allocator to pick target nodes")
	cmd.Flags().StringVar(&remoteNode, "remote-node", "", "explicit target node")
	cmd.Flags().StringVar(&mode, "mode", "", "evacuation mode (primary-only, secondary-only, all)")
	cmd.Flags().BoolVar(&earlyRelease, "early-release", false, "release locks as soon as possible")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not actually evacuate the node")

	return cmd
}

func newNodesMigrateCommand() *cobra.Command {
	var (
		mode       string
		targetNode string
	)

	cmd := &cobra.Command{
		Use:   "migrate NAME",
		Short: "Migrate all primary instances off a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Nodes().Migrate(ctx, args[0], &rapi.NodeMigrateOpts{
				Mode:       mode,
				TargetNode: targetNode,
			})
			if err != nil {
				return fmt.Errorf("failed to migrate node: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "migration mode (live, non-live)")
	cmd.Flags().StringVar(&targetNode, "target-node", "", "explicit target node")

	return cmd
}

func newNodesPowercycleCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "powercycle NAME",
		Short: "Hard-reboot a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Nodes().Powercycle(ctx, args[0], force)
			if err != nil {
				return fmt.Errorf("failed to powercycle node: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "powercycle even the master node")

	return cmd
}
