package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewJobsCommand creates the jobs command group.
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "Inspect and manage cluster jobs",
	}

	cmd.AddCommand(newJobsListCommand())
	cmd.AddCommand(newJobsGetCommand())
	cmd.AddCommand(newJobsWatchCommand())
	cmd.AddCommand(newJobsCancelCommand())

	return cmd
}

func parseJobID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid job ID %q: %w", arg, err)
	}

	return id, nil
}

func newJobsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List job IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			ids, err := client.Jobs().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			if structuredOutput() {
				return renderValue(ids)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Job ID")

			for _, id := range ids {
				_ = table.Append(strconv.Itoa(id))
			}

			return table.Render()
		},
	}
}

func newJobsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get JOB_ID",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := parseJobID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			job, err := client.Jobs().Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			if structuredOutput() {
				return renderValue(job)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("ID", job.ID)
			_ = table.Append("Status", job.Status)
			_ = table.Append("Summary", joinOrDash(job.Summary))
			_ = table.Append("Received", formatTimestamp(job.ReceivedTS))
			_ = table.Append("Started", formatTimestamp(job.StartTS))
			_ = table.Append("Ended", formatTimestamp(job.EndTS))
			_ = table.Append("Finalized", yesNo(job.Finalized()))

			return table.Render()
		},
	}
}

func newJobsWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch JOB_ID",
		Short: "Wait until a job finishes and show its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := parseJobID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			job, err := client.Jobs().WaitFinished(ctx, id)
			if err != nil {
				return fmt.Errorf("failed while waiting for job %d: %w", id, err)
			}

			if structuredOutput() {
				return renderValue(job)
			}

			fmt.Printf("Job %s finished with status %s\n", job.ID, job.Status)

			return nil
		},
	}
}

func newJobsCancelCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "cancel JOB_ID",
		Short: "Cancel a queued or waiting job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := parseJobID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Jobs().Cancel(ctx, id, dryRun); err != nil {
				return fmt.Errorf("failed to cancel job: %w", err)
			}

			fmt.Printf("Cancelled job %d\n", id)

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not actually cancel the job")

	return cmd
}
