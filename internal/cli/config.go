package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rscole87/nucamp/internal/db"
)

const defaultServerURL = "http://localhost:8080"

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "nucamp", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// getServerURL returns the server URL from env var, config, or default.
func getServerURL() string {
	if v := os.Getenv("NUCAMP_SERVER_URL"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return defaultServerURL
}

// getBaseURL returns the image host prefix from env var or config.
// Empty means the server default.
func getBaseURL() string {
	if v := os.Getenv("NUCAMP_BASE_URL"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil {
		return cfg.BaseURL
	}
	return ""
}

// getDBPath returns the database path from --db, NUCAMP_DB, or the default.
func getDBPath() (string, error) {
	if flagDB != "" {
		return flagDB, nil
	}
	if v := os.Getenv("NUCAMP_DB"); v != "" {
		return v, nil
	}
	return db.DefaultPath()
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := getDBPath()
			if err != nil {
				return err
			}
			eff := struct {
				ServerURL string `json:"server_url"`
				BaseURL   string `json:"base_url"`
				DB        string `json:"db"`
			}{getServerURL(), getBaseURL(), dbPath}

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, eff)
			}
			printField(out, "Server", eff.ServerURL)
			printField(out, "Images", valueOr(eff.BaseURL, "/static/ (server default)"))
			printField(out, "DB", eff.DB)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a config value (server_url, base_url)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	})

	return cmd
}

func runConfigSet(out io.Writer, key, value string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "server_url":
		cfg.ServerURL = value
	case "base_url":
		cfg.BaseURL = value
	default:
		return fmt.Errorf("unknown config key %q (want server_url or base_url)", key)
	}

	if err := saveConfig(cfg); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Set %s = %s\n", key, value)
	return err
}
