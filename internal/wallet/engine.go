package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/backend"
	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/chain"
	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/token"
	"github.com/PromiseGameFi/Passkey-WallletAuth/pkg/logging"
)

// TransferRequest describes a native or token transfer. Amount is in base
// units (wei for native, token base units for tokens). TokenSymbol empty
// means a native transfer. GasPrice nil means query the chain; GasLimit
// zero means use the default for the transfer kind.
type TransferRequest struct {
	AccountIndex uint32
	To           string
	Amount       *big.Int
	TokenSymbol  string
	GasPrice     *big.Int
	GasLimit     uint64
}

// engine signs and broadcasts transfers. Not safe for concurrent use; the
// owning Wallet serializes access.
type engine struct {
	directory   *directory
	registry    *token.Registry
	broadcaster backend.Broadcaster
	ledger      *ledger
	params      *chain.Params
	log         *logging.Logger
}

func newEngine(dir *directory, registry *token.Registry, broadcaster backend.Broadcaster, led *ledger, params *chain.Params, log *logging.Logger) *engine {
	return &engine{
		directory:   dir,
		registry:    registry,
		broadcaster: broadcaster,
		ledger:      led,
		params:      params,
		log:         log,
	}
}

// transfer validates the request, signs the transaction with the sender's
// re-derived key, broadcasts it, and records it in the ledger. Nothing is
// recorded and nothing reaches the chain if validation fails.
func (e *engine) transfer(ctx context.Context, req TransferRequest) (TransactionRecord, error) {
	acct, err := e.directory.get(req.AccountIndex)
	if err != nil {
		return TransactionRecord{}, err
	}

	if !ValidAddress(req.To) {
		return TransactionRecord{}, fmt.Errorf("%w: %q", ErrInvalidAddress, req.To)
	}
	if req.Amount == nil || req.Amount.Sign() < 0 {
		return TransactionRecord{}, fmt.Errorf("%w: amount must be a non-negative integer", ErrInvalidAmount)
	}
	if req.Amount.BitLen() > 256 {
		return TransactionRecord{}, fmt.Errorf("%w: amount exceeds 256 bits", ErrInvalidAmount)
	}

	var (
		txTo     string
		txValue  *big.Int
		txData   []byte
		gasLimit = req.GasLimit
	)

	if req.TokenSymbol == "" {
		txTo = req.To
		txValue = req.Amount
		if gasLimit == 0 {
			gasLimit = DefaultGasLimit
		}
	} else {
		info, err := e.registry.Lookup(req.TokenSymbol)
		if err != nil {
			return TransactionRecord{}, err
		}

		data, err := EncodeTransferCall(req.To, req.Amount)
		if err != nil {
			return TransactionRecord{}, err
		}

		txTo = info.Address
		txValue = big.NewInt(0)
		txData = data
		if gasLimit == 0 {
			gasLimit = DefaultTokenGasLimit
		}
	}

	if e.broadcaster == nil {
		return TransactionRecord{}, fmt.Errorf("%w: no chain backend configured", ErrChainBroadcast)
	}

	nonce, err := e.broadcaster.PendingNonce(ctx, acct.Address)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("%w: nonce for %s: %v", ErrChainQuery, acct.Address, err)
	}

	gasPrice := req.GasPrice
	if gasPrice == nil {
		gasPrice, err = e.broadcaster.GasPrice(ctx)
		if err != nil {
			return TransactionRecord{}, fmt.Errorf("%w: gas price: %v", ErrChainQuery, err)
		}
	}

	privKey, err := e.directory.signingKey(req.AccountIndex)
	if err != nil {
		return TransactionRecord{}, err
	}

	result, err := BuildAndSignTx(privKey, &TxParams{
		Nonce:    nonce,
		To:       txTo,
		Value:    txValue,
		Data:     txData,
		ChainID:  e.params.ChainID,
		GasLimit: gasLimit,
		GasPrice: gasPrice,
	})
	if err != nil {
		return TransactionRecord{}, err
	}

	hash, err := e.broadcaster.Broadcast(ctx, result.RawTx)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("%w: %v", ErrChainBroadcast, err)
	}
	if hash == "" {
		hash = result.TxHash
	}

	rec := e.ledger.append(hash, acct.Address, req.To, req.Amount, req.TokenSymbol)

	e.log.Info("transaction submitted",
		"hash", rec.Hash,
		"from", rec.From,
		"to", rec.To,
		"nonce", result.Nonce,
		"token", req.TokenSymbol)

	return rec, nil
}
