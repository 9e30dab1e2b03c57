// Package config provides the daemon configuration: which network the
// wallet serves, where its node RPC endpoint lives, and what the API
// listens on. Loaded from a YAML file with sane defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/backend"
	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/chain"
)

// ConfigFileName is the config file name inside the data directory.
const ConfigFileName = "config.yaml"

// Config holds all configuration for the wallet daemon.
type Config struct {
	// Network selects the chain parameters ("mainnet", "sepolia", ...).
	Network string `yaml:"network"`

	// Node is the EVM node JSON-RPC endpoint.
	Node backend.Config `yaml:"node"`

	// API is the daemon's own JSON-RPC listen address.
	API APIConfig `yaml:"api"`

	// Logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// TokensFile points at the YAML token list. Empty means the built-in
	// default token set.
	TokensFile string `yaml:"tokens_file,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration (Sepolia, local API).
func DefaultConfig() *Config {
	return &Config{
		Network: "sepolia",
		Node: backend.Config{
			RPCURL:  "http://127.0.0.1:8545",
			Timeout: 30 * time.Second,
		},
		API: APIConfig{
			ListenAddr: "127.0.0.1:8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ChainParams resolves the configured network against the chain registry.
func (c *Config) ChainParams() (*chain.Params, error) {
	params, ok := chain.Get(c.Network)
	if !ok {
		return nil, fmt.Errorf("unknown network %q (supported: %v)", c.Network, chain.Names())
	}
	return params, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if _, err := c.ChainParams(); err != nil {
		return err
	}
	if c.Node.RPCURL == "" {
		return fmt.Errorf("node.rpc_url is required")
	}
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr is required")
	}
	return nil
}

// LoadConfig loads the config from dataDir/config.yaml, creating a default
// config file on first run.
func LoadConfig(dataDir string) (*Config, error) {
	dataDir = expandPath(dataDir)
	path := filepath.Join(dataDir, ConfigFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		if saveErr := SaveConfig(dataDir, cfg); saveErr != nil {
			return nil, fmt.Errorf("failed to write default config: %w", saveErr)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the config to dataDir/config.yaml.
func SaveConfig(dataDir string, cfg *Config) error {
	dataDir = expandPath(dataDir)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(dataDir, ConfigFileName), data, 0600)
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
