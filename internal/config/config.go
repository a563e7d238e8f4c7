// internal/config/config.go
//
// This package handles configuration and the portal data directory.
// Every user of the portal client gets a .capital-portal/ folder in their
// home directory (or wherever the host points it) holding config.yaml, the
// session database and logs.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// PortalDir is the name of the directory we create under the user's home
	PortalDir = ".capital-portal"

	defaultResourceURL = "http://localhost:5000/api"
	defaultAuthURL     = "http://localhost:4000/api/auth"
)

const defaultConfigYAML = `# capital-portal client configuration
version: 1

api:
  # Base URL for the general resource API (applications, info, admin).
  resource_url: http://localhost:5000/api
  # Base URL for the dedicated authentication API.
  auth_url: http://localhost:4000/api/auth
`

// APIConfig holds the two backend base URLs the client talks to.
type APIConfig struct {
	ResourceURL string `yaml:"resource_url"`
	AuthURL     string `yaml:"auth_url"`
}

// FileConfig models .capital-portal/config.yaml.
type FileConfig struct {
	Version int       `yaml:"version"`
	API     APIConfig `yaml:"api"`
}

// Config holds the runtime configuration for the portal client.
type Config struct {
	// HomeDir is the directory that contains the portal data directory.
	HomeDir string

	// DataDir is HomeDir/.capital-portal.
	DataDir string

	File FileConfig
}

// InitDataDir creates the portal data directory structure.
// This is called before the TUI starts up.
//
// Structure created:
// .capital-portal/
// ├── logs/         <- Client activity log
// └── config.yaml   <- API base URLs
func InitDataDir(homeDir string) error {
	dataDir := filepath.Join(homeDir, PortalDir)
	if err := os.MkdirAll(filepath.Join(dataDir, "logs"), 0o755); err != nil {
		return err
	}
	return ensureConfigFile(filepath.Join(dataDir, "config.yaml"))
}

// New creates a Config for the given home directory. An empty homeDir
// resolves to the current user's home. Environment variables
// PORTAL_API_URL and PORTAL_AUTH_API_URL override the file values.
func New(homeDir string) (*Config, error) {
	if homeDir == "" {
		resolved, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home dir: %w", err)
		}
		homeDir = resolved
	}

	cfg := &Config{
		HomeDir: homeDir,
		DataDir: filepath.Join(homeDir, PortalDir),
		File:    defaultFileConfig(),
	}

	if err := cfg.loadFileConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()

	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// LogPath returns the client activity log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "portal.log")
}

// SessionPath returns the on-disk location of the session database.
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.db")
}

// ConfigPath returns the on-disk location of the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.DataDir, "config.yaml")
}

// ResourceURL returns the base URL of the general resource API.
func (c *Config) ResourceURL() string {
	return c.File.API.ResourceURL
}

// AuthURL returns the base URL of the authentication API.
func (c *Config) AuthURL() string {
	return c.File.API.AuthURL
}

// Save persists the current file configuration back to config.yaml.
func (c *Config) Save() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.File.applyDefaults()
	c.File.normalize()
	if err := c.File.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure data dir: %w", err)
	}
	data, err := yaml.Marshal(c.File)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write config: %w", err)
	}
	return nil
}

func (c *Config) loadFileConfig() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.File = parsed
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("PORTAL_API_URL")); v != "" {
		c.File.API.ResourceURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("PORTAL_AUTH_API_URL")); v != "" {
		c.File.API.AuthURL = strings.TrimRight(v, "/")
	}
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version: 1,
		API: APIConfig{
			ResourceURL: defaultResourceURL,
			AuthURL:     defaultAuthURL,
		},
	}
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	if strings.TrimSpace(fc.API.ResourceURL) == "" {
		fc.API.ResourceURL = defaultResourceURL
	}
	if strings.TrimSpace(fc.API.AuthURL) == "" {
		fc.API.AuthURL = defaultAuthURL
	}
}

func (fc *FileConfig) normalize() {
	fc.API.ResourceURL = strings.TrimRight(strings.TrimSpace(fc.API.ResourceURL), "/")
	fc.API.AuthURL = strings.TrimRight(strings.TrimSpace(fc.API.AuthURL), "/")
}

func (fc *FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if err := validateBaseURL(fc.API.ResourceURL); err != nil {
		return fmt.Errorf("api.resource_url: %w", err)
	}
	if err := validateBaseURL(fc.API.AuthURL); err != nil {
		return fmt.Errorf("api.auth_url: %w", err)
	}
	return nil
}

func validateBaseURL(value string) error {
	if value == "" {
		return fmt.Errorf("is required")
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return fmt.Errorf("must start with http:// or https://")
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
