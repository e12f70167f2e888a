package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Store and inspect the API credentials and endpoint used by the CLI",
	}

	cmd.AddCommand(newConfigSetCredentialsCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigSetCredentialsCommand() *cobra.Command {
	var (
		apiUID   string
		endpoint string
	)

	cmd := &cobra.Command{
		Use:   "set-credentials",
		Short: "Store the API credentials",
		Long:  "Store the API uid and key in the config file. The key is prompted for and never echoed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiUID == "" {
				fmt.Print("API uid: ")

				if _, err := fmt.Scanln(&apiUID); err != nil {
					return fmt.Errorf("failed to read API uid: %w", err)
				}

				apiUID = strings.TrimSpace(apiUID)
			}

			fmt.Print("API key: ")

			byteKey, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read API key: %w", err)
			}

			fmt.Println()

			viper.Set("api-uid", apiUID)
			viper.Set("api-key", string(byteKey))

			if endpoint != "" {
				viper.Set("endpoint", endpoint)
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			if err := viper.WriteConfigAs(path); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Println("Credentials saved to", path)

			return nil
		},
	}

	cmd.Flags().StringVar(&apiUID, "api-uid", "", "API uid (prompted when omitted)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "custom API endpoint URL")

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := map[string]string{
				"api-uid":  viper.GetString("api-uid"),
				"endpoint": viper.GetString("endpoint"),
			}

			// Never print the key itself.
			if viper.GetString("api-key") != "" {
				config["api-key"] = Masked
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(config)
			case OutputFormatYAML:
				return StandardYAMLRenderer(config)
			default:
				for key, value := range config {
					fmt.Printf("%s: %s\n", key, value)
				}

				return nil
			}
		},
	}
}

func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}

	configDir := filepath.Join(home, ".fic")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}
