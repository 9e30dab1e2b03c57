// Package chain defines network parameters for the EVM chains the wallet
// can be pointed at. All chain-specific values are hardcoded here.
package chain

import "fmt"

// Params contains the parameters for one EVM network.
type Params struct {
	// Identity
	Name        string // network name used in config ("mainnet", "sepolia", ...)
	ChainID     uint64 // EIP-155 chain ID
	NativeToken string // ETH, BNB, POL, ...
	Decimals    uint8  // native token decimals (18 for all current EVM chains)

	// BIP44 derivation
	CoinType uint32 // 60 for the Ethereum family
	Purpose  uint32 // 44

	Testnet bool
}

// DerivationPath returns the BIP44 path string for an address index.
// Account and change level are fixed at 0: the wallet is single-account
// and only issues external addresses.
func (p *Params) DerivationPath(index uint32) string {
	return fmt.Sprintf("m/%d'/%d'/0'/0/%d", p.Purpose, p.CoinType, index)
}

// registry maps network name -> params.
var registry = make(map[string]*Params)

// Register adds network params to the registry. Called from init().
func Register(params *Params) {
	registry[params.Name] = params
}

// Get returns the params for a network name.
func Get(name string) (*Params, bool) {
	params, ok := registry[name]
	return params, ok
}

// Names returns the registered network names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
