// internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "agentchat"

type APIConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key,omitempty"`
	AssistantID string `yaml:"assistant_id"`
	Timeout     int    `yaml:"timeout"`   // seconds
	PageSize    int    `yaml:"page_size"` // threads requested per list call
}

// AuthConfig holds the single local account. PasswordHash is a bcrypt hash;
// an empty username disables login.
type AuthConfig struct {
	Username     string `yaml:"username,omitempty"`
	PasswordHash string `yaml:"password_hash,omitempty"`
}

type StorageConfig struct {
	Path string `yaml:"path,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type Config struct {
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// RequestTimeout returns the API timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}

func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if no config file
		return defaultConfig(), nil
	}

	// Expand environment variables in config
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.API.URL = "http://localhost:2024"
	cfg.API.APIKey = os.Getenv("LANGGRAPH_API_KEY")
	cfg.API.AssistantID = "agent"
	cfg.API.Timeout = 30
	cfg.API.PageSize = 100
	cfg.Auth.Username = os.Getenv("AGENTCHAT_USER")
	cfg.Auth.PasswordHash = os.Getenv("AGENTCHAT_PASSWORD_HASH")
	cfg.Log.Level = "info"
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.API.URL == "" {
		cfg.API.URL = "http://localhost:2024"
	}
	if cfg.API.AssistantID == "" {
		cfg.API.AssistantID = "agent"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30
	}
	if cfg.API.PageSize == 0 {
		cfg.API.PageSize = 100
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func ConfigPath() string {
	configDir, _ := os.UserConfigDir()
	if configDir == "" {
		configDir = os.ExpandEnv("$HOME/.config")
	}
	return filepath.Join(configDir, appName, "config.yaml")
}

// DataDir is where the preference database lives.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName), nil
}

// StateDir is where logs are written.
func StateDir() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, appName), nil
}
