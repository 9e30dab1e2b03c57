// Package backend provides the chain collaborators the wallet core depends
// on: read-only state queries and signed-transaction broadcast against an
// EVM node's JSON-RPC endpoint.
package backend

import (
	"context"
	"errors"
	"math/big"
)

// Common backend errors.
var (
	ErrNotConnected    = errors.New("backend not connected")
	ErrBroadcastFailed = errors.New("broadcast failed")
)

// Querier is the read-only chain query collaborator.
type Querier interface {
	// NativeBalance returns the native-asset balance of an address in wei.
	NativeBalance(ctx context.Context, address string) (*big.Int, error)

	// Call executes a read-only contract call (eth_call) and returns the
	// raw ABI-encoded result.
	Call(ctx context.Context, contract string, data []byte) ([]byte, error)
}

// Broadcaster is the transaction submission collaborator. It owns nonce
// and fee discovery: the values a transaction must be signed with come
// from the chain, not from wallet state.
type Broadcaster interface {
	// PendingNonce returns the next nonce for an address, counting
	// pending transactions.
	PendingNonce(ctx context.Context, address string) (uint64, error)

	// GasPrice returns the current gas price in wei.
	GasPrice(ctx context.Context) (*big.Int, error)

	// Broadcast submits a signed raw transaction and returns its hash.
	Broadcast(ctx context.Context, rawTxHex string) (string, error)
}
