package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
)

// Config represents the persisted CLI configuration.
type Config struct {
	API        string  `json:"api,omitempty"         yaml:"api,omitempty"`
	Token      string  `json:"token,omitempty"       yaml:"token,omitempty"`
	AuthScheme string  `json:"auth_scheme,omitempty" yaml:"auth_scheme,omitempty"`
	User       string  `json:"user,omitempty"        yaml:"user,omitempty"`
	Backend    string  `json:"backend,omitempty"     yaml:"backend,omitempty"`
	Output     string  `json:"output,omitempty"      yaml:"output,omitempty"`
	PerPage    int     `json:"per_page,omitempty"    yaml:"per_page,omitempty"`
	Retries    int     `json:"retries,omitempty"     yaml:"retries,omitempty"`
	RPS        float64 `json:"rps,omitempty"         yaml:"rps,omitempty"`
	NoColor    bool    `json:"no_color"              yaml:"no_color"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and update the ghapi CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config := loadConfig()
			config.Token = maskSecret(config.Token)

			return writeOutput(cmd.OutOrStdout(), outputFormat(), config, func(table *tablewriter.Table) {
				table.Header("Property", "Value")

				for _, row := range configRows(config) {
					_ = table.Append(row)
				}
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value and save it to the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			err = saveConfig(path, config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)

			return nil
		},
	}
}

// loadConfig returns the effective configuration from viper.
func loadConfig() *Config {
	return &Config{
		API:        viper.GetString("api"),
		Token:      viper.GetString("token"),
		AuthScheme: viper.GetString("auth_scheme"),
		User:       viper.GetString("user"),
		Backend:    viper.GetString("backend"),
		Output:     viper.GetString("output"),
		PerPage:    viper.GetInt("per_page"),
		Retries:    viper.GetInt("retries"),
		RPS:        viper.GetFloat64("rps"),
		NoColor:    viper.GetBool("no_color"),
	}
}

// setConfigValue validates and applies one key.
func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "api":
		config.API = value
	case "token":
		config.Token = value
	case "auth_scheme":
		switch value {
		case "token", "bearer", "basic", "none":
			config.AuthScheme = value
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnknownAuthScheme, value)
		}
	case "user":
		config.User = value
	case "backend":
		switch value {
		case constants.BackendRetryable, constants.BackendResty, constants.BackendAsync:
			config.Backend = value
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnknownBackend, value)
		}
	case "output":
		switch value {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnknownFormat, value)
		}
	case "per_page", "retries":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w for %s: %q", constants.ErrInvalidConfigValue, key, value)
		}

		if key == "per_page" {
			config.PerPage = n
		} else {
			config.Retries = n
		}
	case "rps":
		rps, err := strconv.ParseFloat(value, 64)
		if err != nil || rps < 0 {
			return fmt.Errorf("%w for %s: %q", constants.ErrInvalidConfigValue, key, value)
		}

		config.RPS = rps
	case "no_color":
		noColor, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %q", constants.ErrInvalidConfigValue, key, value)
		}

		config.NoColor = noColor
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// configFilePath returns the file in use, or ~/.ghapi/config.yml.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".ghapi", "config.yml"), nil
}

// saveConfig writes config as YAML, creating the directory if needed.
func saveConfig(path string, config *Config) error {
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

func configRows(config *Config) [][]string {
	values := map[string]string{
		"api":         orNotAvailable(config.API),
		"token":       orNotAvailable(config.Token),
		"auth_scheme": orNotAvailable(config.AuthScheme),
		"user":        orNotAvailable(config.User),
		"backend":     orNotAvailable(config.Backend),
		"output":      orNotAvailable(config.Output),
		"per_page":    strconv.Itoa(config.PerPage),
		"retries":     strconv.Itoa(config.Retries),
		"rps":         strconv.FormatFloat(config.RPS, 'f', -1, 64),
		"no_color":    strconv.FormatBool(config.NoColor),
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, values[key]})
	}

	return rows
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	return constants.MaskedSecret
}
