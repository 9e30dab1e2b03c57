package wallet

import (
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionRecord is an in-memory record of a submitted transfer.
type TransactionRecord struct {
	ID          string    `json:"id"`
	Hash        string    `json:"hash"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Value       *big.Int  `json:"value"`
	TokenSymbol string    `json:"token_symbol,omitempty"` // empty for native transfers
	Submitted   bool      `json:"submitted"`
	Timestamp   time.Time `json:"timestamp"`
}

// ledger is an append-only history of submitted transactions, oldest first.
// Not safe for concurrent use; the owning Wallet serializes access.
type ledger struct {
	records []TransactionRecord
}

func newLedger() *ledger {
	return &ledger{}
}

// append records a submitted transaction and returns the stored record.
func (l *ledger) append(hash, from, to string, value *big.Int, tokenSymbol string) TransactionRecord {
	rec := TransactionRecord{
		ID:          uuid.NewString(),
		Hash:        hash,
		From:        from,
		To:          to,
		Value:       new(big.Int).Set(value),
		TokenSymbol: tokenSymbol,
		Submitted:   true,
		Timestamp:   time.Now().UTC(),
	}
	l.records = append(l.records, rec)
	return rec
}

// all returns every record in submission order.
func (l *ledger) all() []TransactionRecord {
	out := make([]TransactionRecord, len(l.records))
	copy(out, l.records)
	return out
}

// byAddress returns records where the address is sender or recipient,
// matched case-insensitively.
func (l *ledger) byAddress(address string) []TransactionRecord {
	var out []TransactionRecord
	for _, rec := range l.records {
		if strings.EqualFold(rec.From, address) || strings.EqualFold(rec.To, address) {
			out = append(out, rec)
		}
	}
	return out
}

func (l *ledger) len() int {
	return len(l.records)
}
