package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/backend"
	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/token"
)

// balanceTracker refreshes account balance snapshots from the chain.
// A refresh is all-or-nothing per account: if any query fails, the
// account's existing snapshot is left untouched.
type balanceTracker struct {
	querier  backend.Querier
	registry *token.Registry
}

func newBalanceTracker(querier backend.Querier, registry *token.Registry) *balanceTracker {
	return &balanceTracker{
		querier:  querier,
		registry: registry,
	}
}

// refresh queries the native balance and every registered token balance for
// the account, then applies the complete snapshot in one step.
func (t *balanceTracker) refresh(ctx context.Context, acct *Account) error {
	native, err := t.querier.NativeBalance(ctx, acct.Address)
	if err != nil {
		return fmt.Errorf("%w: native balance for %s: %v", ErrChainQuery, acct.Address, err)
	}

	symbols := t.registry.Symbols()
	tokens := make([]TokenBalance, 0, len(symbols))
	for _, symbol := range symbols {
		info, err := t.registry.Lookup(symbol)
		if err != nil {
			return err
		}

		balance, err := t.tokenBalance(ctx, info, acct.Address)
		if err != nil {
			return fmt.Errorf("%w: %s balance for %s: %v", ErrChainQuery, symbol, acct.Address, err)
		}
		tokens = append(tokens, TokenBalance{
			Symbol:   symbol,
			Contract: info.Address,
			Decimals: info.Decimals,
			Balance:  balance,
		})
	}

	acct.NativeBalance = native
	acct.Tokens = tokens
	return nil
}

// tokenBalance queries an ERC-20 balanceOf for a single holder.
func (t *balanceTracker) tokenBalance(ctx context.Context, info token.Info, holder string) (*big.Int, error) {
	data, err := EncodeBalanceOfCall(holder)
	if err != nil {
		return nil, err
	}

	result, err := t.querier.Call(ctx, info.Address, data)
	if err != nil {
		return nil, err
	}

	return DecodeBalanceResult(result)
}
