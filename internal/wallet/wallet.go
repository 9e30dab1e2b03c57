// Package wallet implements the hierarchical-deterministic wallet core:
// seed derivation from a user secret, the account directory, balance
// tracking, and the transfer engine. All chain interaction goes through
// the backend collaborators; the wallet itself holds no network state.
package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/backend"
	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/chain"
	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/token"
	"github.com/PromiseGameFi/Passkey-WallletAuth/pkg/logging"
)

// Options configure a new Wallet.
type Options struct {
	Params      *chain.Params
	Registry    *token.Registry
	Querier     backend.Querier
	Broadcaster backend.Broadcaster
	Logger      *logging.Logger
}

// Wallet is the wallet aggregate. All exported methods are safe for
// concurrent use.
type Wallet struct {
	mu sync.RWMutex

	mnemonic  string
	masterKey *hdkeychain.ExtendedKey
	params    *chain.Params

	directory *directory
	registry  *token.Registry
	ledger    *ledger
	tracker   *balanceTracker
	engine    *engine

	log *logging.Logger
}

// NewFromSecret builds a wallet from an opaque user secret. The same
// secret always yields the same mnemonic, keys, and addresses.
func NewFromSecret(secret []byte, opts Options) (*Wallet, error) {
	mnemonic, err := MnemonicFromSecret(secret)
	if err != nil {
		return nil, err
	}
	return NewFromMnemonic(mnemonic, opts)
}

// NewFromMnemonic builds a wallet from an existing BIP-39 mnemonic.
func NewFromMnemonic(mnemonic string, opts Options) (*Wallet, error) {
	masterKey, err := masterKeyFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}

	params := opts.Params
	if params == nil {
		p, ok := chain.Get("mainnet")
		if !ok {
			return nil, fmt.Errorf("%w: no default chain registered", ErrKeyDerivation)
		}
		params = p
	}

	registry := opts.Registry
	if registry == nil {
		registry = token.Empty()
	}

	log := opts.Logger
	if log == nil {
		log = logging.GetDefault().Component("wallet")
	}

	dir := newDirectory(masterKey, params)
	led := newLedger()

	w := &Wallet{
		mnemonic:  mnemonic,
		masterKey: masterKey,
		params:    params,
		directory: dir,
		registry:  registry,
		ledger:    led,
		log:       log,
	}

	if opts.Querier != nil {
		w.tracker = newBalanceTracker(opts.Querier, registry)
	}
	w.engine = newEngine(dir, registry, opts.Broadcaster, led, params, log)

	return w, nil
}

// Mnemonic returns the wallet's BIP-39 recovery phrase.
func (w *Wallet) Mnemonic() string {
	return w.mnemonic
}

// Chain returns the chain the wallet operates on.
func (w *Wallet) Chain() *chain.Params {
	return w.params
}

// DeriveAccount derives the next sequential account. Balance population is
// best effort: a chain failure leaves the new account at zero balances.
func (w *Wallet) DeriveAccount(ctx context.Context) (*Account, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	acct, err := w.directory.deriveNext()
	if err != nil {
		return nil, err
	}

	w.log.Info("account derived", "index", acct.Index, "address", acct.Address, "path", acct.Path)

	if w.tracker != nil {
		if err := w.tracker.refresh(ctx, acct); err != nil {
			w.log.Warn("initial balance fetch failed", "address", acct.Address, "err", err)
		}
	}

	return acct.clone(), nil
}

// Account returns a snapshot of the account at the given index.
func (w *Wallet) Account(index uint32) (*Account, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	acct, err := w.directory.get(index)
	if err != nil {
		return nil, err
	}
	return acct.clone(), nil
}

// AccountByAddress returns a snapshot of the account with the given
// address. Matching is exact, including checksum casing.
func (w *Wallet) AccountByAddress(address string) (*Account, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	acct, ok := w.directory.byAddress(address)
	if !ok {
		return nil, fmt.Errorf("%w: address %s", ErrUnknownAccount, address)
	}
	return acct.clone(), nil
}

// Accounts returns snapshots of every derived account in index order.
func (w *Wallet) Accounts() []*Account {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*Account, w.directory.count())
	for i := range out {
		acct, _ := w.directory.get(uint32(i))
		out[i] = acct.clone()
	}
	return out
}

// Count returns the number of derived accounts.
func (w *Wallet) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.directory.count()
}

// RefreshAccount re-queries balances for a single account. The existing
// snapshot is left untouched on any query failure.
func (w *Wallet) RefreshAccount(ctx context.Context, index uint32) (*Account, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.tracker == nil {
		return nil, fmt.Errorf("%w: no chain backend configured", ErrChainQuery)
	}

	acct, err := w.directory.get(index)
	if err != nil {
		return nil, err
	}

	if err := w.tracker.refresh(ctx, acct); err != nil {
		return nil, err
	}
	return acct.clone(), nil
}

// RefreshBalances re-queries balances for every account. The refresh is
// all-or-nothing: if any query fails, no account snapshot changes.
func (w *Wallet) RefreshBalances(ctx context.Context) ([]*Account, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.tracker == nil {
		return nil, fmt.Errorf("%w: no chain backend configured", ErrChainQuery)
	}

	// Refresh into staged copies first so a mid-pass failure can't leave
	// some accounts updated and others stale.
	staged := make([]*Account, w.directory.count())
	for i := range staged {
		acct, _ := w.directory.get(uint32(i))
		clone := acct.clone()
		if err := w.tracker.refresh(ctx, clone); err != nil {
			return nil, err
		}
		staged[i] = clone
	}

	out := make([]*Account, len(staged))
	for i, clone := range staged {
		acct, _ := w.directory.get(uint32(i))
		acct.NativeBalance = clone.NativeBalance
		acct.Tokens = clone.Tokens
		out[i] = acct.clone()
	}

	w.log.Debug("balances refreshed", "accounts", len(out))
	return out, nil
}

// Transfer signs and broadcasts a native or token transfer from one of the
// wallet's accounts and records it in the ledger.
func (w *Wallet) Transfer(ctx context.Context, req TransferRequest) (TransactionRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.engine.transfer(ctx, req)
}

// Transactions returns every recorded transaction in submission order.
func (w *Wallet) Transactions() []TransactionRecord {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ledger.all()
}

// TransactionsByAccount returns recorded transactions where the account at
// the given index is sender or recipient.
func (w *Wallet) TransactionsByAccount(index uint32) ([]TransactionRecord, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	acct, err := w.directory.get(index)
	if err != nil {
		return nil, err
	}
	return w.ledger.byAddress(acct.Address), nil
}

// Tokens returns the token registry the wallet tracks.
func (w *Wallet) Tokens() *token.Registry {
	return w.registry
}
