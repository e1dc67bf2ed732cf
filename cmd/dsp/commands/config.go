package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/dsp-client/internal/constants"
)

// Config represents the CLI configuration file.
type Config struct {
	API            string     `json:"api,omitempty"              yaml:"api,omitempty"`
	Token          string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	Username       string     `json:"username,omitempty"         yaml:"username,omitempty"`
	Output         string     `json:"output,omitempty"           yaml:"output,omitempty"`
	Cache          CacheInfo  `json:"cache"                      yaml:"cache,omitempty"`
}

// CacheInfo selects the second-level definition store.
type CacheInfo struct {
	// Type is "memory", "nats" or "none". Empty keeps definitions per process.
	Type    string `json:"type,omitempty"     yaml:"type,omitempty"`
	NATSURL string `json:"nats_url,omitempty" yaml:"nats_url,omitempty"`
	Bucket  string `json:"bucket,omitempty"   yaml:"bucket,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the DSP CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token != "" {
				config.Token = maskToken(config.Token)
			}

			return writeOutput(cmd.OutOrStdout(), config, func(w io.Writer) error {
				return displayConfigTable(w, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of: api, output, username, cache.type, cache.nats_url, cache.bucket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if err := setConfigValue(config, args[0], args[1]); err != nil {
				return err
			}

			if err := saveConfigStruct(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", args[0], args[1])

			return err
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "api":
		config.API = value
	case "output":
		config.Output = value
	case "username":
		config.Username = value
	case "cache.type":
		config.Cache.Type = value
	case "cache.nats_url":
		config.Cache.NATSURL = value
	case "cache.bucket":
		config.Cache.Bucket = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

func loadConfig() *Config {
	config := &Config{
		API:      viper.GetString("api"),
		Token:    viper.GetString("token"),
		Username: viper.GetString("username"),
		Output:   viper.GetString("output"),
		Cache: CacheInfo{
			Type:    viper.GetString("cache.type"),
			NATSURL: viper.GetString("cache.nats_url"),
			Bucket:  viper.GetString("cache.bucket"),
		},
	}

	if expires := viper.GetTime("token_expires_at"); !expires.IsZero() {
		config.TokenExpiresAt = &expires
	}

	return config
}

func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".dsp", "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// keep the in-process view in line with the file
	viper.Set("api", config.API)
	viper.Set("token", config.Token)
	viper.Set("username", config.Username)
	viper.Set("cache.type", config.Cache.Type)
	viper.Set("cache.nats_url", config.Cache.NATSURL)
	viper.Set("cache.bucket", config.Cache.Bucket)

	if config.TokenExpiresAt != nil {
		viper.Set("token_expires_at", *config.TokenExpiresAt)
	} else {
		viper.Set("token_expires_at", time.Time{})
	}

	return nil
}

func displayConfigTable(w io.Writer, config *Config) error {
	expires := constants.NotAvailable
	if config.TokenExpiresAt != nil {
		expires = config.TokenExpiresAt.Format(time.RFC3339)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")
	_ = table.Append("API", valueOrNA(config.API))
	_ = table.Append("Username", valueOrNA(config.Username))
	_ = table.Append("Token", valueOrNA(config.Token))
	_ = table.Append("Token expires", expires)
	_ = table.Append("Output", valueOrNA(config.Output))
	_ = table.Append("Cache", valueOrNA(config.Cache.Type))
	_ = table.Append("NATS URL", valueOrNA(config.Cache.NATSURL))

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func maskToken(token string) string {
	const visible = 8
	if len(token) <= visible {
		return Masked
	}

	return token[:visible] + Masked
}

// structured output is shared by every command
func encodeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
