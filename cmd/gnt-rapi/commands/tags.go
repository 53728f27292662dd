package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// tagOps binds the tag operations of one taggable resource. Every RAPI
// level (cluster, instance, node, group) exposes the same three calls.
type tagOps struct {
	get func(ctx context.Context) ([]string, error)
	add func(ctx context.Context, tags []string, dryRun bool) (int, error)
	del func(ctx context.Context, tags []string, dryRun bool) (int, error)
}

// newTagsCommand builds a tags command group for one resource kind.
// bind resolves the leading name arguments (nameArgs of them) into the
// resource's tag operations; the cluster passes nameArgs == 0.
func newTagsCommand(what string, bind func(ctx context.Context, nameArgs []string) (tagOps, error), nameArgs int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage " + what,
	}

	cmd.AddCommand(newTagsListCommand(what, bind, nameArgs))
	cmd.AddCommand(newTagsMutateCommand(what, bind, nameArgs, true))
	cmd.AddCommand(newTagsMutateCommand(what, bind, nameArgs, false))

	return cmd
}

func newTagsListCommand(what string, bind func(ctx context.Context, nameArgs []string) (tagOps, error), nameArgs int) *cobra.Command {
	use := "list"
	if nameArgs > 0 {
		use = "list NAME"
	}

	return &cobra.Command{
		Use:   use,
		Short: "List " + what,
		Args:  cobra.ExactArgs(nameArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ops, err := bind(ctx, args)
			if err != nil {
				return err
			}

			tags, err := ops.get(ctx)
			if err != nil {
				return err
			}

			return renderNameList("Tag", tags)
		},
	}
}

func newTagsMutateCommand(what string, bind func(ctx context.Context, nameArgs []string) (tagOps, error), nameArgs int, add bool) *cobra.Command {
	var dryRun bool

	verb := "remove"
	if add {
		verb = "add"
	}

	use := verb + " TAG..."
	if nameArgs > 0 {
		use = verb + " NAME TAG..."
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: verb + " " + what,
		Args:  cobra.MinimumNArgs(nameArgs + 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ops, err := bind(ctx, args[:nameArgs])
			if err != nil {
				return err
			}

			tags := args[nameArgs:]

			var jobID int
			if add {
				jobID, err = ops.add(ctx, tags, dryRun)
			} else {
				jobID, err = ops.del(ctx, tags, dryRun)
			}

			if err != nil {
				return err
			}

			return printJobID(jobID)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not actually modify tags")

	return cmd
}
