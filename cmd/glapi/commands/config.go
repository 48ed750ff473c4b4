package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// Config is the on-disk CLI configuration. Keys match the viper keys so a
// saved file is read back by initConfig unchanged.
type Config struct {
	API               string `json:"api,omitempty"                 yaml:"api,omitempty"`
	Token             string `json:"token,omitempty"               yaml:"token,omitempty"`
	TokenType         string `json:"token-type,omitempty"          yaml:"token-type,omitempty"`
	Output            string `json:"output,omitempty"              yaml:"output,omitempty"`
	SkipSSLValidation bool   `json:"skip-ssl-validation,omitempty" yaml:"skip-ssl-validation,omitempty"`
	ResolvePageSize   int    `json:"resolve-page-size,omitempty"   yaml:"resolve-page-size,omitempty"`
	Retries           int    `json:"retries,omitempty"             yaml:"retries,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the glapi configuration file ($HOME/.glapi/config.yml)",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigSetTokenCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after flags, environment and config file are merged",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := effectiveConfig()
			if config.Token != "" {
				config.Token = constants.MaskedSecret
			}

			return render(cmd, config, func(out io.Writer) error {
				return renderProperties(out, [][2]string{
					{"API", formatOptional(config.API)},
					{"Token", formatOptional(config.Token)},
					{"Token Type", formatOptional(config.TokenType)},
					{"Output", formatOptional(config.Output)},
					{"Skip SSL Validation", strconv.FormatBool(config.SkipSSLValidation)},
					{"Resolve Page Size", strconv.Itoa(config.ResolvePageSize)},
					{"Retries", strconv.Itoa(config.Retries)},
					{"Config File", formatOptional(configFilePath())},
				})
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Keys: api, token-type, output, skip-ssl-validation, resolve-page-size, retries.
Use 'glapi config set-token' for the token.`,
		Args: cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config, err := readConfigFile(configFilePath())
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = writeConfigFile(configFilePath(), config)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)

			return err
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config, err := readConfigFile(configFilePath())
			if err != nil {
				return err
			}

			err = unsetConfigValue(config, key)
			if err != nil {
				return err
			}

			err = writeConfigFile(configFilePath(), config)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return err
		},
	}
}

func newConfigSetTokenCommand() *cobra.Command {
	var tokenType string

	cmd := &cobra.Command{
		Use:   "set-token",
		Short: "Store an access token",
		Long:  "Prompt for an access token and store it in the config file. The token is not echoed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Token: ")

			token, err := readSecret(cmd.InOrStdin())
			_, _ = fmt.Fprintln(cmd.ErrOrStderr())

			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}

			if token == "" {
				return constants.ErrNoTokenConfigured
			}

			config, err := readConfigFile(configFilePath())
			if err != nil {
				return err
			}

			config.Token = token

			if tokenType != "" {
				err = setConfigValue(config, "token-type", tokenType)
				if err != nil {
					return err
				}
			}

			err = writeConfigFile(configFilePath(), config)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Token saved")

			return err
		},
	}

	cmd.Flags().StringVar(&tokenType, "type", "", "token type (private, oauth, job)")

	return cmd
}

// readSecret reads without echo from a terminal and reads one line from
// anything else.
func readSecret(in io.Reader) (string, error) {
	if file, ok := in.(*os.File); ok {
		fd := int(file.Fd()) // #nosec G115 -- file descriptors fit in int
		if term.IsTerminal(fd) {
			secret, err := term.ReadPassword(fd)
			if err != nil {
				return "", fmt.Errorf("failed to read from terminal: %w", err)
			}

			return strings.TrimSpace(string(secret)), nil
		}
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func effectiveConfig() *Config {
	return &Config{
		API:               viper.GetString("api"),
		Token:             viper.GetString("token"),
		TokenType:         viper.GetString("token-type"),
		Output:            viper.GetString("output"),
		SkipSSLValidation: viper.GetBool("skip-ssl-validation"),
		ResolvePageSize:   viper.GetInt("resolve-page-size"),
		Retries:           viper.GetInt("retries"),
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "api":
		config.API = value
	case "token":
		return constants.ErrTokenNotSettable
	case "token-type":
		switch gitlab.TokenType(value) {
		case gitlab.TokenTypePrivate, gitlab.TokenTypeOAuth, gitlab.TokenTypeJob:
			config.TokenType = value
		default:
			return fmt.Errorf("%w: token-type %q", gitlab.ErrInvalidConfig, value)
		}
	case "output":
		switch value {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value
		default:
			return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, value)
		}
	case "skip-ssl-validation":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s %q", gitlab.ErrInvalidConfig, key, value)
		}

		config.SkipSSLValidation = enabled
	case "resolve-page-size", "retries":
		number, err := strconv.Atoi(value)
		if err != nil || number < 0 {
			return fmt.Errorf("%w: %s %q", gitlab.ErrInvalidConfig, key, value)
		}

		if key == "retries" {
			config.Retries = number
		} else {
			config.ResolvePageSize = number
		}
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case "api":
		config.API = ""
	case "token":
		config.Token = ""
	case "token-type":
		config.TokenType = ""
	case "output":
		config.Output = ""
	case "skip-ssl-validation":
		config.SkipSSLValidation = false
	case "resolve-page-size":
		config.ResolvePageSize = 0
	case "retries":
		config.Retries = 0
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// configFilePath is the file read by initConfig, the --config value, or
// $HOME/.glapi/config.yml.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}

	if flagged := viper.GetString("config"); flagged != "" {
		return flagged
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".glapi", "config.yml")
}

// readConfigFile reads only the file, so values from flags or the
// environment are never written back. A missing file is an empty config.
func readConfigFile(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		return config, nil
	}

	// path comes from the user's own --config flag or home directory
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func writeConfigFile(path string, config *Config) error {
	if path == "" {
		return fmt.Errorf("%w: no config file location", gitlab.ErrInvalidConfig)
	}

	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
