package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gnt-io/rapi/pkg/rapi"
	"github.com/gnt-io/rapi/pkg/rapiclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

const defaultJSONIndent = "  "

// Common static errors used throughout the commands package.
var (
	ErrNoHostConfigured = errors.New("no cluster master configured: pass --host or run gnt-rapi login")
)

// createClient builds a started RAPI client from the effective CLI
// configuration.
func createClient(ctx context.Context) (rapi.Client, error) {
	host := viper.GetString("host")
	if host == "" {
		return nil, ErrNoHostConfigured
	}

	config := &rapi.Config{
		Host:          host,
		Port:          viper.GetInt("port"),
		Username:      viper.GetString("username"),
		Password:      viper.GetString("password"),
		SkipTLSVerify: viper.GetBool("skip-ssl-validation"),
	}

	client, err := rapiclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", host, err)
	}

	return client, nil
}

// renderValue writes value to stdout in the configured output format. The
// table fallback is only used by callers that render tables themselves.
func renderValue(value interface{}) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", defaultJSONIndent)

		return encoder.Encode(value)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)
		defer func() {
			_ = encoder.Close()
		}()

		return encoder.Encode(value)
	default:
		return nil
	}
}

// structuredOutput reports whether the configured output format bypasses
// table rendering.
func structuredOutput() bool {
	output := viper.GetString("output")

	return output == OutputFormatJSON || output == OutputFormatYAML
}

// renderNameList prints a plain list of names as a one-column table.
func renderNameList(header string, names []string) error {
	if structuredOutput() {
		return renderValue(names)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(header)

	for _, name := range names {
		_ = table.Append(name)
	}

	return table.Render()
}

// printJobID reports a submitted job in the configured format.
func printJobID(jobID int) error {
	if structuredOutput() {
		return renderValue(map[string]int{"job_id": jobID})
	}

	fmt.Printf("Submitted job %d\n", jobID)

	return nil
}

// joinOrDash renders a string slice for table cells.
func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}

	return strings.Join(items, ", ")
}

// formatTimestamp renders a [seconds, microseconds] job timestamp.
func formatTimestamp(ts []int64) string {
	if len(ts) == 0 {
		return "-"
	}

	return time.Unix(ts[0], 0).UTC().Format("2006-01-02 15:04:05")
}

// yesNo renders a boolean for table cells.
func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
