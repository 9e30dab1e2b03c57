package token

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const usdcAddress = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"

func TestNew(t *testing.T) {
	registry, err := New([]Info{
		{Symbol: "USDC", Address: usdcAddress, Decimals: 6},
		{Symbol: "DAI", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Decimals: 18},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if registry.Len() != 2 {
		t.Errorf("Len() = %d, want 2", registry.Len())
	}

	info, err := registry.Lookup("USDC")
	if err != nil {
		t.Fatalf("Lookup(USDC) error: %v", err)
	}
	if info.Decimals != 6 {
		t.Errorf("USDC decimals = %d, want 6", info.Decimals)
	}
	if info.Address != usdcAddress {
		t.Errorf("USDC address = %s, want %s", info.Address, usdcAddress)
	}
}

func TestNewRejectsDuplicateSymbol(t *testing.T) {
	_, err := New([]Info{
		{Symbol: "USDC", Address: usdcAddress, Decimals: 6},
		{Symbol: "USDC", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Decimals: 18},
	})
	if err == nil {
		t.Error("expected error for duplicate symbol")
	}
}

func TestNewRejectsBadAddress(t *testing.T) {
	tests := []string{
		"",
		"0x1234",
		"not-an-address",
		"0xZZb86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
	}

	for _, addr := range tests {
		_, err := New([]Info{{Symbol: "BAD", Address: addr, Decimals: 18}})
		if err == nil {
			t.Errorf("expected error for address %q", addr)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	registry := Default()

	_, err := registry.Lookup("NOPE")
	if !errors.Is(err, ErrUnknownToken) {
		t.Errorf("Lookup(NOPE) error = %v, want ErrUnknownToken", err)
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	registry := Default()

	if _, err := registry.Lookup("USDC"); err != nil {
		t.Errorf("Lookup(USDC) error: %v", err)
	}
	if _, err := registry.Lookup("usdc"); !errors.Is(err, ErrUnknownToken) {
		t.Error("lowercase lookup should not resolve")
	}
}

func TestSymbolsSorted(t *testing.T) {
	registry := Default()

	symbols := registry.Symbols()
	for i := 1; i < len(symbols); i++ {
		if symbols[i-1] >= symbols[i] {
			t.Errorf("symbols not sorted: %v", symbols)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.yaml")

	content := `tokens:
  - symbol: USD
    name: Test Dollar
    address: "0x1111111111111111111111111111111111111111"
    decimals: 6
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	registry, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	info, err := registry.Lookup("USD")
	if err != nil {
		t.Fatalf("Lookup(USD) error: %v", err)
	}
	if info.Decimals != 6 {
		t.Errorf("decimals = %d, want 6", info.Decimals)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEmpty(t *testing.T) {
	registry := Empty()
	if registry.Len() != 0 {
		t.Errorf("Empty().Len() = %d, want 0", registry.Len())
	}
	if len(registry.Symbols()) != 0 {
		t.Error("Empty() should have no symbols")
	}
}
