package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewClusterCommand creates the cluster command group.
func NewClusterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Inspect and manage the cluster",
		Long:  "Cluster-level information, configuration redistribution, and tags",
	}

	cmd.AddCommand(newClusterInfoCommand())
	cmd.AddCommand(newClusterOSesCommand())
	cmd.AddCommand(newClusterRedistributeCommand())
	cmd.AddCommand(newTagsCommand("cluster tags", func(ctx context.Context, _ []string) (tagOps, error) {
		client, err := createClient(ctx)
		if err != nil {
			return tagOps{}, err
		}

		return tagOps{
			get: func(ctx context.Context) ([]string, error) {
				return client.Cluster().Tags(ctx)
			},
			add: func(ctx context.Context, tags []string, dryRun bool) (int, error) {
				return client.Cluster().AddTags(ctx, tags, dryRun)
			},
			del: func(ctx context.Context, tags []string, dryRun bool) (int, error) {
				return client.Cluster().DeleteTags(ctx, tags, dryRun)
			},
		}, nil
	}, 0))

	return cmd
}

func newClusterInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cluster information",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			info, err := client.Cluster().Info(ctx)
			if err != nil {
				return fmt.Errorf("failed to get cluster info: %w", err)
			}

			if structuredOutput() {
				return renderValue(info)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("Name", info.Name)
			_ = table.Append("Master", info.Master)
			_ = table.Append("Software version", info.SoftwareVersion)
			_ = table.Append("Architecture", strings.Join(info.Architecture, " "))
			_ = table.Append("Default hypervisor", info.DefaultHypervisor)
			_ = table.Append("Enabled hypervisors", joinOrDash(info.EnabledHypervisors))
			_ = table.Append("Candidate pool size", fmt.Sprint(info.CandidatePoolSize))
			_ = table.Append("Volume group", info.VolumeGroupName)
			_ = table.Append("Tags", joinOrDash(info.Tags))
			_ = table.Append("UUID", info.UUID)

			return table.Render()
		},
	}
}

func newClusterOSesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "oses",
		Aliases: []string{"os"},
		Short:   "List operating systems available on the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			oses, err := client.Cluster().OperatingSystems(ctx)
			if err != nil {
				return fmt.Errorf("failed to list operating systems: %w", err)
			}

			return renderNameList("Operating System", oses)
		},
	}
}

func newClusterRedistributeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "redistribute-config",
		Short: "Redistribute the cluster configuration to all nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			jobID, err := client.Cluster().RedistributeConfig(ctx)
			if err != nil {
				return fmt.Errorf("failed to redistribute config: %w", err)
			}

			return printJobID(jobID)
		},
	}
}
