package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	params, err := cfg.ChainParams()
	if err != nil {
		t.Fatalf("ChainParams() error: %v", err)
	}
	if params.ChainID != 11155111 {
		t.Errorf("default chainID = %d, want 11155111 (sepolia)", params.ChainID)
	}
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Network != "sepolia" {
		t.Errorf("Network = %s, want sepolia", cfg.Network)
	}

	// Default file should now exist on disk
	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestLoadConfigRoundtrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Network = "mainnet"
	cfg.Node.RPCURL = "https://eth.example.com"
	cfg.API.ListenAddr = "127.0.0.1:9999"
	cfg.TokensFile = "/etc/wallet/tokens.yaml"

	if err := SaveConfig(dir, cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if loaded.Network != "mainnet" {
		t.Errorf("Network = %s, want mainnet", loaded.Network)
	}
	if loaded.Node.RPCURL != "https://eth.example.com" {
		t.Errorf("RPCURL = %s", loaded.Node.RPCURL)
	}
	if loaded.API.ListenAddr != "127.0.0.1:9999" {
		t.Errorf("ListenAddr = %s", loaded.API.ListenAddr)
	}
	if loaded.TokensFile != "/etc/wallet/tokens.yaml" {
		t.Errorf("TokensFile = %s", loaded.TokensFile)
	}
}

func TestValidateRejectsUnknownNetwork(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = "atlantis"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown network")
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte("network: [broken"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
