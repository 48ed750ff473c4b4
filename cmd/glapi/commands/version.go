package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
)

// VersionInfo is the output of the version command.
type VersionInfo struct {
	Version        string `json:"version"                   yaml:"version"`
	Commit         string `json:"commit"                    yaml:"commit"`
	Built          string `json:"built"                     yaml:"built"`
	Server         string `json:"server,omitempty"          yaml:"server,omitempty"`
	ServerRevision string `json:"server_revision,omitempty" yaml:"server_revision,omitempty"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	var server bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display version information about the glapi CLI and, with --server, the GitLab instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version: version,
				Commit:  commit,
				Built:   date,
			}

			if server {
				// GET version requires an authenticated caller.
				if viper.GetString("token") == "" {
					return constants.ErrNoTokenConfigured
				}

				client, err := createClient(cmd.Context())
				if err != nil {
					return err
				}

				ctx, cancel := context.WithTimeout(cmd.Context(), constants.ShortHTTPTimeout)
				defer cancel()

				remote, err := client.Version(ctx)
				if err != nil {
					return fmt.Errorf("failed to get server version: %w", err)
				}

				info.Server = remote.Version
				info.ServerRevision = remote.Revision
			}

			return render(cmd, info, func(out io.Writer) error {
				rows := [][2]string{
					{"Version", info.Version},
					{"Commit", info.Commit},
					{"Built", info.Built},
				}
				if server {
					rows = append(rows, [2]string{"Server", info.Server}, [2]string{"Server Revision", info.ServerRevision})
				}

				return renderProperties(out, rows)
			})
		},
	}

	cmd.Flags().BoolVar(&server, "server", false, "also query the GitLab server version")

	return cmd
}
