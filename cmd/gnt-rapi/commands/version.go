package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Show CLI version information and, with --remote, the negotiated remote API capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]interface{}{
				"version": version,
				"commit":  commit,
				"date":    date,
			}

			if remote {
				client, err := createClient(context.Background())
				if err != nil {
					return err
				}

				caps := client.Capabilities()
				apiVersion, _ := caps.Version()
				info["api_version"] = apiVersion
				info["features"] = caps.Features()
			}

			if structuredOutput() {
				return renderValue(info)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("Version", version)
			_ = table.Append("Commit", commit)
			_ = table.Append("Built", date)

			if remote {
				_ = table.Append("API version", fmt.Sprint(info["api_version"]))
				_ = table.Append("Features", joinOrDash(info["features"].([]string)))
			}

			return table.Render()
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "also query the remote API version and features")

	return cmd
}
