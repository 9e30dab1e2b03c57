// Package token holds the static registry of fungible-token contracts the
// wallet tracks. The registry is loaded and validated once at startup and
// is immutable afterwards.
package token

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// ErrUnknownToken is returned when a symbol is not in the registry.
var ErrUnknownToken = errors.New("unknown token")

// Info describes one ERC-20 token contract.
type Info struct {
	Symbol   string `yaml:"symbol" json:"symbol"`
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Address  string `yaml:"address" json:"address"`
	Decimals uint8  `yaml:"decimals" json:"decimals"`
}

// Registry is an immutable symbol -> Info map.
//
// Symbol lookup is exact-match and case-sensitive: "usdc" does not resolve
// "USDC". Known limitation, kept for predictability.
type Registry struct {
	tokens  map[string]Info
	symbols []string
}

// tokenFile is the on-disk YAML shape.
type tokenFile struct {
	Tokens []Info `yaml:"tokens"`
}

// New builds a registry from a token list, validating every entry.
// Duplicate symbols and malformed contract addresses are load errors.
func New(infos []Info) (*Registry, error) {
	tokens := make(map[string]Info, len(infos))
	symbols := make([]string, 0, len(infos))

	for _, info := range infos {
		if info.Symbol == "" {
			return nil, fmt.Errorf("token entry with empty symbol (address %s)", info.Address)
		}
		if !common.IsHexAddress(info.Address) {
			return nil, fmt.Errorf("token %s: invalid contract address %q", info.Symbol, info.Address)
		}
		if _, exists := tokens[info.Symbol]; exists {
			return nil, fmt.Errorf("duplicate token symbol %q", info.Symbol)
		}
		// Normalize to the checksummed form so downstream call encoding
		// always sees a canonical address.
		info.Address = common.HexToAddress(info.Address).Hex()
		tokens[info.Symbol] = info
		symbols = append(symbols, info.Symbol)
	}

	sort.Strings(symbols)

	return &Registry{tokens: tokens, symbols: symbols}, nil
}

// Load reads a token list from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var file tokenFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return New(file.Tokens)
}

// Default returns the built-in Ethereum mainnet token set, used when no
// token file is configured.
func Default() *Registry {
	registry, err := New([]Info{
		{Symbol: "USDT", Name: "Tether USD", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6},
		{Symbol: "USDC", Name: "USD Coin", Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6},
		{Symbol: "DAI", Name: "Dai Stablecoin", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Decimals: 18},
	})
	if err != nil {
		// Built-in set is fixed; a failure here is a programming error.
		panic(err)
	}
	return registry
}

// Empty returns a registry with no tokens.
func Empty() *Registry {
	registry, _ := New(nil)
	return registry
}

// Lookup returns the Info for a symbol.
func (r *Registry) Lookup(symbol string) (Info, error) {
	info, ok := r.tokens[symbol]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrUnknownToken, symbol)
	}
	return info, nil
}

// Has reports whether a symbol is registered.
func (r *Registry) Has(symbol string) bool {
	_, ok := r.tokens[symbol]
	return ok
}

// Symbols returns all registered symbols in sorted order.
func (r *Registry) Symbols() []string {
	out := make([]string, len(r.symbols))
	copy(out, r.symbols)
	return out
}

// List returns all registered tokens in symbol order.
func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.symbols))
	for _, symbol := range r.symbols {
		out = append(out, r.tokens[symbol])
	}
	return out
}

// Len returns the number of registered tokens.
func (r *Registry) Len() int {
	return len(r.tokens)
}
