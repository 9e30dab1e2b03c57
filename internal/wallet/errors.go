package wallet

import (
	"errors"

	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/token"
)

// Wallet error kinds. Callers distinguish them with errors.Is.
var (
	// ErrInvalidSecret means the secret could not produce valid entropy.
	ErrInvalidSecret = errors.New("invalid secret")

	// ErrKeyDerivation means master key construction failed. Fatal: a
	// wallet that hits this is unusable and must be recreated.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrUnknownAccount means the requested index has not been derived.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrInvalidAddress means a malformed destination address.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount means a missing, negative, or oversized amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrChainQuery wraps balance/contract-call failures from the node.
	ErrChainQuery = errors.New("chain query failed")

	// ErrChainBroadcast wraps transaction submission failures.
	ErrChainBroadcast = errors.New("chain broadcast failed")
)

// ErrUnknownToken is the registry's sentinel, re-exported so wallet
// callers need only this package for error matching.
var ErrUnknownToken = token.ErrUnknownToken

// IsCallerError reports whether err is the caller's fault (as opposed to
// an upstream chain failure or a fatal derivation failure). The API layer
// maps these to invalid-params responses.
func IsCallerError(err error) bool {
	return errors.Is(err, ErrUnknownAccount) ||
		errors.Is(err, ErrUnknownToken) ||
		errors.Is(err, ErrInvalidAddress) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidSecret)
}
