package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thenoetrevino/coffeehub/internal/models"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	CredentialsPath   string        `yaml:"credentials_path"`
	DatabaseName      string        `yaml:"database_name"`
	GraphDatabaseName string        `yaml:"graph_database_name"`
	AssetsDir         string        `yaml:"assets_dir"`
	LogDir            string        `yaml:"log_dir"`
	SocketPath        string        `yaml:"socket_path"`
	AutoConnect       bool          `yaml:"auto_connect"`
	AutoFillPassword  bool          `yaml:"auto_fill_password"`
	ConnectTimeout    time.Duration `yaml:"connect_timeout"`

	KeyMappings KeyMappings `yaml:"key_mappings"`
	Theme       Theme       `yaml:"theme"`
}

// DefaultConfig returns a config with every field set to its default.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return withEnv(DefaultConfig()), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return withEnv(DefaultConfig()), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}

	config.applyDefaults()

	return withEnv(&config), nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// withEnv applies environment overrides on top of the file values.
func withEnv(c *Config) *Config {
	if p := os.Getenv("COFFEEHUB_CREDENTIALS"); p != "" {
		c.CredentialsPath = p
	}
	return c
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if p := os.Getenv("COFFEEHUB_CONFIG"); p != "" {
		return p, nil
	}

	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "coffeehub", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "coffeehub", "config.yaml"), nil
}

// dataDir returns ~/.coffeehub, or a temp dir when there is no home.
func dataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "coffeehub")
	}
	return filepath.Join(homeDir, ".coffeehub")
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.CredentialsPath == "" {
		c.CredentialsPath = "credentials.json"
	}
	if c.DatabaseName == "" {
		c.DatabaseName = models.DefaultDatabaseName
	}
	if c.GraphDatabaseName == "" {
		c.GraphDatabaseName = models.DefaultGraphDatabaseName
	}
	if c.AssetsDir == "" {
		c.AssetsDir = "assets/avatars"
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(dataDir(), "logs")
	}
	if c.SocketPath == "" {
		c.SocketPath = filepath.Join(dataDir(), "coffeehub.sock")
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	c.KeyMappings.applyDefaults()
	c.Theme.applyDefaults()
}
