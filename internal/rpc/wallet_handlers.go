package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/wallet"
	"github.com/PromiseGameFi/Passkey-WallletAuth/pkg/helpers"
)

// ErrNoWallet means a wallet method was called before wallet_create.
var ErrNoWallet = errors.New("no wallet; call wallet_create first")

// errBadParams marks malformed request parameters.
var errBadParams = errors.New("invalid params")

// currentWallet returns the active wallet, if one has been created.
func (s *Server) currentWallet() (*wallet.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wallet == nil {
		return nil, ErrNoWallet
	}
	return s.wallet, nil
}

// AccountInfo is the API view of a derived account. Balances are decimal
// strings in base units.
type AccountInfo struct {
	Index         uint32             `json:"index"`
	Address       string             `json:"address"`
	Path          string             `json:"path"`
	NativeBalance string             `json:"native_balance"`
	NativeDisplay string             `json:"native_display"`
	Tokens        []TokenBalanceInfo `json:"tokens,omitempty"`
}

// TokenBalanceInfo is the API view of a token holding.
type TokenBalanceInfo struct {
	Symbol   string `json:"symbol"`
	Contract string `json:"contract"`
	Decimals uint8  `json:"decimals"`
	Balance  string `json:"balance"`
	Display  string `json:"display"`
}

// TransactionInfo is the API view of a ledger record.
type TransactionInfo struct {
	ID        string `json:"id"`
	Hash      string `json:"hash"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     string `json:"value"`
	Token     string `json:"token,omitempty"`
	Submitted bool   `json:"submitted"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) accountToInfo(a *wallet.Account) AccountInfo {
	info := AccountInfo{
		Index:         a.Index,
		Address:       a.Address,
		Path:          a.Path,
		NativeBalance: a.NativeBalance.String(),
		NativeDisplay: helpers.FormatUnits(a.NativeBalance, s.chain.Decimals),
	}
	for _, t := range a.Tokens {
		info.Tokens = append(info.Tokens, TokenBalanceInfo{
			Symbol:   t.Symbol,
			Contract: t.Contract,
			Decimals: t.Decimals,
			Balance:  t.Balance.String(),
			Display:  helpers.FormatUnits(t.Balance, t.Decimals),
		})
	}
	return info
}

func recordToInfo(rec wallet.TransactionRecord) TransactionInfo {
	return TransactionInfo{
		ID:        rec.ID,
		Hash:      rec.Hash,
		From:      rec.From,
		To:        rec.To,
		Value:     rec.Value.String(),
		Token:     rec.TokenSymbol,
		Submitted: rec.Submitted,
		Timestamp: rec.Timestamp.Format(time.RFC3339),
	}
}

// walletStatus returns daemon and wallet state.
func (s *Server) walletStatus(ctx context.Context, params json.RawMessage) (interface{}, error) {
	chain := s.chain

	status := map[string]interface{}{
		"network":      chain.Name,
		"chain_id":     chain.ChainID,
		"native_token": chain.NativeToken,
		"testnet":      chain.Testnet,
		"connected":    s.client != nil && s.client.IsConnected(),
		"tokens":       s.registry.Len(),
	}

	s.mu.RLock()
	if s.wallet != nil {
		status["wallet_ready"] = true
		status["accounts"] = s.wallet.Count()
	} else {
		status["wallet_ready"] = false
		status["accounts"] = 0
	}
	s.mu.RUnlock()

	return status, nil
}

// walletCreate builds the wallet from a user secret. Creating again with
// the same secret yields the same wallet; a different secret replaces it.
func (s *Server) walletCreate(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Secret string `json:"secret"`
	}
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadParams, err)
		}
	}

	chain := s.chain

	opts := wallet.Options{
		Params:   chain,
		Registry: s.registry,
	}
	if s.client != nil {
		opts.Querier = s.client
		opts.Broadcaster = s.client
	}

	w, err := wallet.NewFromSecret([]byte(p.Secret), opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.wallet = w
	s.mu.Unlock()

	s.log.Info("wallet created", "network", chain.Name)

	if s.wsHub != nil {
		s.wsHub.Broadcast(EventWalletCreated, map[string]interface{}{
			"network":  chain.Name,
			"chain_id": chain.ChainID,
		})
	}

	return map[string]interface{}{
		"mnemonic": w.Mnemonic(),
		"network":  chain.Name,
		"chain_id": chain.ChainID,
	}, nil
}

// walletRecover rebuilds the wallet from an existing recovery phrase.
func (s *Server) walletRecover(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Mnemonic string `json:"mnemonic"`
	}
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadParams, err)
		}
	}

	chain := s.chain

	opts := wallet.Options{
		Params:   chain,
		Registry: s.registry,
	}
	if s.client != nil {
		opts.Querier = s.client
		opts.Broadcaster = s.client
	}

	w, err := wallet.NewFromMnemonic(p.Mnemonic, opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.wallet = w
	s.mu.Unlock()

	s.log.Info("wallet recovered", "network", chain.Name)

	if s.wsHub != nil {
		s.wsHub.Broadcast(EventWalletCreated, map[string]interface{}{
			"network":  chain.Name,
			"chain_id": chain.ChainID,
		})
	}

	return map[string]interface{}{
		"network":  chain.Name,
		"chain_id": chain.ChainID,
	}, nil
}

// walletDeriveAccount derives the next account.
func (s *Server) walletDeriveAccount(ctx context.Context, params json.RawMessage) (interface{}, error) {
	w, err := s.currentWallet()
	if err != nil {
		return nil, err
	}

	acct, err := w.DeriveAccount(ctx)
	if err != nil {
		return nil, err
	}

	info := s.accountToInfo(acct)

	if s.wsHub != nil {
		s.wsHub.Broadcast(EventAccountDerived, info)
	}

	return info, nil
}

// walletListAccounts returns every derived account.
func (s *Server) walletListAccounts(ctx context.Context, params json.RawMessage) (interface{}, error) {
	w, err := s.currentWallet()
	if err != nil {
		return nil, err
	}

	accounts := w.Accounts()
	infos := make([]AccountInfo, len(accounts))
	for i, a := range accounts {
		infos[i] = s.accountToInfo(a)
	}

	return map[string]interface{}{
		"accounts": infos,
		"count":    len(infos),
	}, nil
}

// walletGetAccount returns one account by index.
func (s *Server) walletGetAccount(ctx context.Context, params json.RawMessage) (interface{}, error) {
	w, err := s.currentWallet()
	if err != nil {
		return nil, err
	}

	var p struct {
		Index uint32 `json:"index"`
	}
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadParams, err)
		}
	}

	acct, err := w.Account(p.Index)
	if err != nil {
		return nil, err
	}

	return s.accountToInfo(acct), nil
}

// walletRefreshBalances re-queries balances from the chain, for one
// account if an index is given, otherwise for all of them.
func (s *Server) walletRefreshBalances(ctx context.Context, params json.RawMessage) (interface{}, error) {
	w, err := s.currentWallet()
	if err != nil {
		return nil, err
	}

	var p struct {
		Index *uint32 `json:"index,omitempty"`
	}
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadParams, err)
		}
	}

	var infos []AccountInfo
	if p.Index != nil {
		acct, err := w.RefreshAccount(ctx, *p.Index)
		if err != nil {
			return nil, err
		}
		infos = []AccountInfo{s.accountToInfo(acct)}
	} else {
		accounts, err := w.RefreshBalances(ctx)
		if err != nil {
			return nil, err
		}
		infos = make([]AccountInfo, len(accounts))
		for i, a := range accounts {
			infos[i] = s.accountToInfo(a)
		}
	}

	if s.wsHub != nil {
		s.wsHub.Broadcast(EventBalancesRefreshed, map[string]interface{}{
			"accounts": infos,
		})
	}

	return map[string]interface{}{
		"accounts": infos,
		"count":    len(infos),
	}, nil
}

// walletTransfer signs and broadcasts a transfer. Amounts are decimal
// strings in base units (wei for native, token base units for tokens).
func (s *Server) walletTransfer(ctx context.Context, params json.RawMessage) (interface{}, error) {
	w, err := s.currentWallet()
	if err != nil {
		return nil, err
	}

	var p struct {
		AccountIndex uint32 `json:"account_index"`
		To           string `json:"to"`
		Amount       string `json:"amount"`
		Token        string `json:"token,omitempty"`
		GasPrice     string `json:"gas_price,omitempty"`
		GasLimit     uint64 `json:"gas_limit,omitempty"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadParams, err)
	}

	amount, err := helpers.ParseUnits(p.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wallet.ErrInvalidAmount, err)
	}

	req := wallet.TransferRequest{
		AccountIndex: p.AccountIndex,
		To:           p.To,
		Amount:       amount,
		TokenSymbol:  p.Token,
		GasLimit:     p.GasLimit,
	}

	if p.GasPrice != "" {
		gasPrice, err := helpers.ParseUnits(p.GasPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: gas price: %v", wallet.ErrInvalidAmount, err)
		}
		req.GasPrice = gasPrice
	}

	rec, err := w.Transfer(ctx, req)
	if err != nil {
		return nil, err
	}

	info := recordToInfo(rec)

	if s.wsHub != nil {
		s.wsHub.Broadcast(EventTransactionSubmitted, info)
	}

	return info, nil
}

// walletListTransactions returns the transaction history, filtered to one
// account if an index is given.
func (s *Server) walletListTransactions(ctx context.Context, params json.RawMessage) (interface{}, error) {
	w, err := s.currentWallet()
	if err != nil {
		return nil, err
	}

	var p struct {
		AccountIndex *uint32 `json:"account_index,omitempty"`
	}
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadParams, err)
		}
	}

	var records []wallet.TransactionRecord
	if p.AccountIndex != nil {
		records, err = w.TransactionsByAccount(*p.AccountIndex)
		if err != nil {
			return nil, err
		}
	} else {
		records = w.Transactions()
	}

	infos := make([]TransactionInfo, len(records))
	for i, rec := range records {
		infos[i] = recordToInfo(rec)
	}

	return map[string]interface{}{
		"transactions": infos,
		"count":        len(infos),
	}, nil
}

// walletListTokens returns the configured token registry.
func (s *Server) walletListTokens(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return map[string]interface{}{
		"tokens": s.registry.List(),
		"count":  s.registry.Len(),
	}, nil
}
