package wallet

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/chain"
)

// TokenBalance is a token holding on an account, in base units. Symbol,
// contract, and decimals come from the registry entry; only the balance
// changes between refreshes.
type TokenBalance struct {
	Symbol   string   `json:"symbol"`
	Contract string   `json:"contract"`
	Decimals uint8    `json:"decimals"`
	Balance  *big.Int `json:"balance"`
}

// Account is a derived wallet account. Balances are the last refreshed
// snapshot, in base units, and may be stale until the next refresh.
type Account struct {
	Index         uint32         `json:"index"`
	Address       string         `json:"address"`
	Path          string         `json:"path"`
	NativeBalance *big.Int       `json:"native_balance"`
	Tokens        []TokenBalance `json:"tokens"`
}

// clone returns a deep copy so callers can't mutate directory state.
func (a *Account) clone() *Account {
	out := &Account{
		Index:         a.Index,
		Address:       a.Address,
		Path:          a.Path,
		NativeBalance: new(big.Int).Set(a.NativeBalance),
	}
	if len(a.Tokens) > 0 {
		out.Tokens = make([]TokenBalance, len(a.Tokens))
		for i, t := range a.Tokens {
			out.Tokens[i] = t
			out.Tokens[i].Balance = new(big.Int).Set(t.Balance)
		}
	}
	return out
}

// directory holds the ordered set of derived accounts. Indices are assigned
// sequentially starting at 0 and are never reused. Not safe for concurrent
// use; the owning Wallet serializes access.
type directory struct {
	masterKey *hdkeychain.ExtendedKey
	params    *chain.Params
	accounts  []*Account
}

func newDirectory(masterKey *hdkeychain.ExtendedKey, params *chain.Params) *directory {
	return &directory{
		masterKey: masterKey,
		params:    params,
	}
}

// deriveNext derives the account at the next sequential index. The new
// account starts with zero balances.
func (d *directory) deriveNext() (*Account, error) {
	index := uint32(len(d.accounts))

	key, err := d.deriveKey(index)
	if err != nil {
		return nil, err
	}

	pubKey, err := key.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	acct := &Account{
		Index:         index,
		Address:       PublicKeyToAddress(pubKey),
		Path:          d.params.DerivationPath(index),
		NativeBalance: big.NewInt(0),
	}
	d.accounts = append(d.accounts, acct)
	return acct, nil
}

// get returns the account at the given index.
func (d *directory) get(index uint32) (*Account, error) {
	if index >= uint32(len(d.accounts)) {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownAccount, index)
	}
	return d.accounts[index], nil
}

// byAddress returns the account with the given address, matched exactly.
func (d *directory) byAddress(address string) (*Account, bool) {
	for _, a := range d.accounts {
		if a.Address == address {
			return a, true
		}
	}
	return nil, false
}

func (d *directory) count() int {
	return len(d.accounts)
}

// signingKey re-derives the private key for the account at index. Keys are
// never cached; they exist only for the duration of a signing operation.
func (d *directory) signingKey(index uint32) (*btcec.PrivateKey, error) {
	if index >= uint32(len(d.accounts)) {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownAccount, index)
	}

	key, err := d.deriveKey(index)
	if err != nil {
		return nil, err
	}

	privKey, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return privKey, nil
}

// deriveKey walks the BIP44 path m/purpose'/coin'/0'/0/index.
func (d *directory) deriveKey(index uint32) (*hdkeychain.ExtendedKey, error) {
	purposeKey, err := d.masterKey.Derive(hdkeychain.HardenedKeyStart + d.params.Purpose)
	if err != nil {
		return nil, fmt.Errorf("%w: purpose: %v", ErrKeyDerivation, err)
	}

	coinKey, err := purposeKey.Derive(hdkeychain.HardenedKeyStart + d.params.CoinType)
	if err != nil {
		return nil, fmt.Errorf("%w: coin: %v", ErrKeyDerivation, err)
	}

	accountKey, err := coinKey.Derive(hdkeychain.HardenedKeyStart)
	if err != nil {
		return nil, fmt.Errorf("%w: account: %v", ErrKeyDerivation, err)
	}

	changeKey, err := accountKey.Derive(0)
	if err != nil {
		return nil, fmt.Errorf("%w: change: %v", ErrKeyDerivation, err)
	}

	addressKey, err := changeKey.Derive(index)
	if err != nil {
		return nil, fmt.Errorf("%w: address: %v", ErrKeyDerivation, err)
	}

	return addressKey, nil
}
