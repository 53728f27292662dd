package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewGroupsCommand creates the groups command group.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "Manage node groups",
	}

	cmd.AddCommand(newGroupsListCommand())
	cmd.AddCommand(newGroupsGetCommand())
	cmd.AddCommand(newGroupsCreateCommand())
	cmd.AddCommand(newGroupsDeleteCommand())
	cmd.AddCommand(newGroupsRenameCommand())
	cmd.AddCommand(newGroupsAssignNodesCommand())
	cmd.AddCommand(newTagsCommand("group tags", func(ctx context.Context, nameArgs []string) (tagOps, error) {
		client, err := createClient(ctx)
		if err != nil {
			return tagOps{}, err
		}

		name := nameArgs[0]

		return tagOps{
			get: func(ctx context.Context) ([]string, error) {
				return client.Groups().Tags(ctx, name)
			},
			add: func(ctx context.Context, tags []string, dryRun bool) (int, error) {
				return client.Groups().AddTags(ctx, name, tags, dryRun)
			},
			del: func(ctx context.Context, tags []string, dryRun bool) (int, error) {
				return client.Groups().DeleteTags(ctx, name, tags, dryRun)
			},
		}, nil
	}, 1))

	return cmd
}

func newGroupsListCommand() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List node groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if !details {
				names, err := client.Groups().List(ctx)
				if err != nil {
					return fmt.Errorf("failed to list groups: %w", err)
				}

				return renderNameList("Group", names)
			}

			groups, err := client.Groups().ListDetails(ctx)
			if err != nil {
				return fmt.Errorf("failed to list groups: %w", err)
			}

			if structuredOutput() {
				return renderValue(groups)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Allocation Policy", "Nodes")

			for _, group := range groups {
				_ = table.Append(group.Name, group.AllocPolicy, fmt.Sprint(group.NodeCount))
			}

			return table.Render()
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "show full group information")

	return cmd
}

func newGroupsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show one node group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			group, err := client.Groups().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get group: %w", err)
			}

			if structuredOutput() {
				return renderValue(group)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("Name", group.Name)
			_ = table.Append("Allocation policy", group.AllocPolicy)
			_ = table.Append("Nodes", joinOrDash(group.Nodes))
			_ = table.Append("Tags", joinOrDash(group.Tags))
			_ = table.Append("UUID", group.UUID)

			return table.Render()
		},
	}
}

func newGroupsCreateCommand() *cobra.Command {
	var (
		allocPolicy string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a node group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Groups().Create(ctx, args[0], allocPolicy, dryRun)
			if err != nil {
				return fmt.Errorf("failed to create group: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().StringVar(&allocPolicy, "alloc-policy", "", "allocation policy (preferred, last_resort, unallocable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not actually create the group")

	return cmd
}

func newGroupsDeleteCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete an empty node group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Groups().Delete(ctx, args[0], dryRun)
			if err != nil {
				return fmt.Errorf("failed to delete group: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not actually delete the group")

	return cmd
}

func newGroupsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename NAME NEW_NAME",
		Short: "Rename a node group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Groups().Rename(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to rename group: %w", err)
			}

			return printJobID(jobID)
		},
	}
}

func newGroupsAssignNodesCommand() *cobra.Command {
	var (
		force  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "assign-nodes NAME NODE...",
		Short: "Assign nodes to a node group",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Groups().AssignNodes(ctx, args[0], args[1:], force, dryRun)
			if err != nil {
				return fmt.Errorf("failed to assign nodes: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "assign nodes that are already in another group")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not actually assign the nodes")

	return cmd
}
