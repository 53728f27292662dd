package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/gnt-io/rapi/internal/constants"
	"github.com/gnt-io/rapi/pkg/rapi"
	"github.com/gnt-io/rapi/pkg/rapiclient"
)

// cliConfig is the shape persisted to ~/.gnt-rapi/config.yml.
type cliConfig struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	Username          string `yaml:"username,omitempty"`
	Password          string `yaml:"password,omitempty"`
	SkipSSLValidation bool   `yaml:"skip-ssl-validation,omitempty"`
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login HOST",
		Short: "Verify credentials and save them",
		Long: `Perform the RAPI handshake against the given cluster master and,
on success, persist the connection settings to the CLI config file.

The password is prompted for when a username is given without --password.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := args[0]
			port := viper.GetInt("port")
			username := viper.GetString("username")
			password := viper.GetString("password")

			if username != "" && password == "" {
				fmt.Print("Password: ")

				raw, err := term.ReadPassword(int(syscall.Stdin))

				fmt.Println()

				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}

				password = string(raw)
			}

			config := &rapi.Config{
				Host:          host,
				Port:          port,
				Username:      username,
				Password:      password,
				SkipTLSVerify: viper.GetBool("skip-ssl-validation"),
			}

			client, err := rapiclient.New(context.Background(), config)
			if err != nil {
				return err
			}

			apiVersion, _ := client.Capabilities().Version()
			fmt.Printf("Authenticated against %s (API version %d)\n", host, apiVersion)

			return saveConfig(&cliConfig{
				Host:              host,
				Port:              port,
				Username:          username,
				Password:          password,
				SkipSSLValidation: viper.GetBool("skip-ssl-validation"),
			})
		},
	}
}

func saveConfig(config *cliConfig) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".gnt-rapi")
	if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yml")
	if err := os.WriteFile(configPath, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Saved configuration to %s\n", configPath)

	return nil
}
