package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// VersionInfo holds the build information of the binary.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit"  yaml:"commit"`
	Date    string `json:"date"    yaml:"date"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{Version: version, Commit: commit, Date: date}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(info)
			case OutputFormatYAML:
				return StandardYAMLRenderer(info)
			default:
				fmt.Printf("fic version %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.Date)

				return nil
			}
		},
	}
}
