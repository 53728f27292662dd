package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewInstancesCommand creates the instances command group.
func NewInstancesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instances",
		Aliases: []string{"instance"},
		Short:   "Manage instances",
		Long:    "Instance lifecycle: list, inspect, start, stop, reboot, migrate, remove",
	}

	cmd.AddCommand(newInstancesListCommand())
	cmd.AddCommand(newInstancesGetCommand())
	cmd.AddCommand(newInstancesStartCommand())
	cmd.AddCommand(newInstancesStopCommand())
	cmd.AddCommand(newInstancesRebootCommand())
	cmd.AddCommand(newInstancesMigrateCommand())
	cmd.AddCommand(newInstancesRemoveCommand())
	cmd.AddCommand(newInstancesConsoleCommand())
	cmd.AddCommand(newTagsCommand("instance tags", func(ctx context.Context, nameArgs []string) (tagOps, error) {
		client, err := createClient(ctx)
		if err != nil {
			return tagOps{}, err
		}

		name := nameArgs[0]

		return tagOps{
			get: func(ctx context.Context) ([]string, error) {
				return client.Instances().Tags(ctx, name)
			},
			add: func(ctx context.Context, tags []string, dryRun bool) (int, error) {
				return client.Instances().AddTags(ctx, name, tags, dryRun)
			},
			del: func(ctx context.Context, tags []string, dryRun bool) (int, error) {
				return client.Instances().DeleteTags(ctx, name, tags, dryRun)
			},
		}, nil
	}, 1))

	return cmd
}

func newInstancesListCommand() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if !details {
				names, err := client.Instances().List(ctx)
				if err != nil {
					return fmt.Errorf("failed to list instances: %w", err)
				}

				return renderNameList("Instance", names)
			}

			instances, err := client.Instances().ListDetails(ctx)
			if err != nil {
				return fmt.Errorf("failed to list instances: %w", err)
			}

			if structuredOutput() {
				return renderValue(instances)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Status", "Primary Node", "OS", "Memory")

			for _, instance := range instances {
				_ = table.Append(
					instance.Name,
					instance.Status,
					instance.PrimaryNode,
					instance.OSType,
					fmt.Sprintf("%d MiB", instance.OperRAM),
				)
			}

			return table.Render()
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "show full instance information")

	return cmd
}

func newInstancesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show one instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			instance, err := client.Instances().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get instance: %w", err)
			}

			if structuredOutput() {
				return renderValue(instance)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("Name", instance.Name)
			_ = table.Append("Status", instance.Status)
			_ = table.Append("Running", yesNo(instance.OperState))
			_ = table.Append("Primary node", instance.PrimaryNode)
			_ = table.Append("Secondary nodes", joinOrDash(instance.SecondaryNodes))
			_ = table.Append("Disk template", instance.DiskTemplate)
			_ = table.Append("OS", instance.OSType)
			_ = table.Append("Memory", fmt.Sprintf("%d MiB", instance.OperRAM))
			_ = table.Append("VCPUs", fmt.Sprint(instance.OperVCPUs))
			_ = table.Append("Tags", joinOrDash(instance.Tags))
			_ = table.Append("UUID", instance.UUID)

			return table.Render()
		},
	}
}

func newInstancesStartCommand() *cobra.Command {
	var dryRun, noRemember bool

	cmd := &cobra.Command{
		Use:   "start NAME",
		Short: "Start an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Instances().Startup(ctx, args[0], dryRun, noRemember)
			if err != nil {
				return fmt.Errorf("failed to start instance: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not actually start the instance")
	cmd.Flags().BoolVar(&noRemember, "no-remember", false, "do not record the state change")

	return cmd
}

func newInstancesStopCommand() *cobra.Command {
	var dryRun, noRemember bool

	cmd := &cobra.Command{
		Use:   "stop NAME",
		Short: "Shut down an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Instances().Shutdown(ctx, args[0], dryRun, noRemember)
			if err != nil {
				return fmt.Errorf("failed to stop instance: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not actually stop the instance")
	cmd.Flags().BoolVar(&noRemember, "no-remember", false, "do not record the state change")

	return cmd
}

func newInstancesRebootCommand() *cobra.Command {
	var (
		rebootType        string
		ignoreSecondaries bool
		dryRun            bool
	)

	cmd := &cobra.Command{
		Use:   "reboot NAME",
		Short: "Reboot an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Instances().Reboot(ctx, args[0], rebootType, ignoreSecondaries, dryRun)
			if err != nil {
				return fmt.Errorf("failed to reboot instance: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().StringVar(&rebootType, "type", "", "reboot type (hard, soft, full)")
	cmd.Flags().BoolVar(&ignoreSecondaries, "ignore-secondaries", false, "ignore secondary node errors during hard reboot")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not actually reboot the instance")

	return cmd
}

func newInstancesMigrateCommand() *cobra.Command {
	var (
		mode    string
		cleanup bool
	)

	cmd := &cobra.Command{
		Use:   "migrate NAME",
		Short: "Migrate an instance to its secondary node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Instances().Migrate(ctx, args[0], mode, cleanup)
			if err != nil {
				return fmt.Errorf("failed to migrate instance: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "migration mode (overrides hypervisor default)")
	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "clean up a previously failed migration")

	return cmd
}

func newInstancesRemoveCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Delete an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Instances().Delete(ctx, args[0], dryRun)
			if err != nil {
				return fmt.Errorf("failed to remove instance: %w", err)
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not actually remove the instance")

	return cmd
}

func newInstancesConsoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "console NAME",
		Short: "Show console access information for an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			console, err := client.Instances().Console(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get console info: %w", err)
			}

			if structuredOutput() {
				return renderValue(console)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("Instance", console.Instance)
			_ = table.Append("Kind", console.Kind)
			_ = table.Append("Host", console.Host)
			_ = table.Append("Port", fmt.Sprint(console.Port))
			_ = table.Append("User", console.User)
			_ = table.Append("Command", joinOrDash(console.Command))

			return table.Render()
		},
	}
}
