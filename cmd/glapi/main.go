package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/gitlab-client/cmd/glapi/commands"
	"github.com/fivetwenty-io/gitlab-client/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "glapi",
	Short: "GitLab API v4 CLI",
	Long: `A command-line interface for reading GitLab API v4 resources.

Lists and inspects groups, projects, issues and merge requests, and resolves
projects, issues and merge requests from their human-readable names.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.glapi/config.yml)")
	rootCmd.PersistentFlags().StringP("api", "a", "", "GitLab host or URL (default gitlab.com)")
	rootCmd.PersistentFlags().StringP("token", "t", "", "access token")
	rootCmd.PersistentFlags().String("output", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("skip-ssl-validation", false, "skip SSL certificate validation (requires GITLAB_CLIENT_DEV_MODE=true)")
	rootCmd.PersistentFlags().Int("retries", 0, "retry 5xx, 429 and connection errors this many times")
	rootCmd.PersistentFlags().Lookup("retries").NoOptDefVal = strconv.Itoa(constants.DefaultRetryMax)

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("api", rootCmd.PersistentFlags().Lookup("api"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("skip-ssl-validation", rootCmd.PersistentFlags().Lookup("skip-ssl-validation"))
	_ = viper.BindPFlag("retries", rootCmd.PersistentFlags().Lookup("retries"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewGroupsCommand())
	rootCmd.AddCommand(commands.NewProjectsCommand())
	rootCmd.AddCommand(commands.NewIssuesCommand())
	rootCmd.AddCommand(commands.NewMergeRequestsCommand())
}

func initConfig() {
	// A missing .env is not an error.
	_ = godotenv.Load()

	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".glapi")

		// Search config in ~/.glapi/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("GLAPI")
	viper.AutomaticEnv()

	// GITLAB_HOSTNAME and GITLAB_TOKEN are honoured after the GLAPI_ names.
	_ = viper.BindEnv("api", "GLAPI_API", constants.EnvHostname)
	_ = viper.BindEnv("token", "GLAPI_TOKEN", constants.EnvToken)

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
