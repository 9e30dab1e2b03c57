package wallet

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/PromiseGameFi/Passkey-WallletAuth/pkg/helpers"
)

// TxParams are the inputs for building a legacy (EIP-155) transaction.
type TxParams struct {
	Nonce    uint64
	To       string   // destination address, 0x-prefixed
	Value    *big.Int // amount in wei
	Data     []byte   // contract call data (nil for native transfer)
	ChainID  uint64
	GasLimit uint64
	GasPrice *big.Int // in wei
}

// TxResult is a built and signed transaction ready for broadcast.
type TxResult struct {
	TxHash   string // transaction hash (0x-prefixed)
	RawTx    string // signed raw transaction hex (0x-prefixed)
	Nonce    uint64
	GasLimit uint64
}

// DefaultGasLimit for native transfers.
const DefaultGasLimit = uint64(21000)

// DefaultTokenGasLimit for ERC-20 token transfers.
const DefaultTokenGasLimit = uint64(65000)

// BuildAndSignTx builds and signs a legacy EIP-155 transaction.
func BuildAndSignTx(privKey *btcec.PrivateKey, params *TxParams) (*TxResult, error) {
	if params == nil {
		return nil, fmt.Errorf("params required")
	}
	if !ValidAddress(params.To) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, params.To)
	}
	if params.GasPrice == nil {
		return nil, fmt.Errorf("gas price required")
	}

	gasLimit := params.GasLimit
	if gasLimit == 0 {
		if len(params.Data) > 0 {
			gasLimit = DefaultTokenGasLimit
		} else {
			gasLimit = DefaultGasLimit
		}
	}

	// Hash of the unsigned EIP-155 payload: [..., chainId, 0, 0]
	msgHash := Keccak256(encodeUnsignedTx(params, gasLimit))

	// SignCompact returns v || r || s (65 bytes) with v in 27/28.
	sig := btcecdsa.SignCompact(privKey, msgHash, false)
	if len(sig) != 65 {
		return nil, fmt.Errorf("invalid signature length")
	}

	r := new(big.Int).SetBytes(sig[1:33])
	s := new(big.Int).SetBytes(sig[33:65])

	// EIP-155: v = chainId * 2 + 35 + recoveryId
	recoveryID := uint64(sig[0] - 27)
	v := params.ChainID*2 + 35 + recoveryID

	signedTx := encodeSignedTx(params, gasLimit, v, r, s)

	return &TxResult{
		TxHash:   "0x" + hex.EncodeToString(Keccak256(signedTx)),
		RawTx:    "0x" + hex.EncodeToString(signedTx),
		Nonce:    params.Nonce,
		GasLimit: gasLimit,
	}, nil
}

// =============================================================================
// RLP Encoding
// =============================================================================

// rlpEncode encodes data using RLP.
// See: https://ethereum.org/en/developers/docs/data-structures-and-encoding/rlp/
func rlpEncode(data interface{}) []byte {
	switch v := data.(type) {
	case []byte:
		return rlpEncodeBytes(v)
	case uint64:
		return rlpEncodeUint(v)
	case *big.Int:
		if v == nil || v.Sign() == 0 {
			return rlpEncodeBytes(nil)
		}
		return rlpEncodeBytes(v.Bytes())
	case []interface{}:
		return rlpEncodeList(v)
	default:
		return nil
	}
}

func rlpEncodeBytes(b []byte) []byte {
	if len(b) == 0 {
		return []byte{0x80}
	}
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	if len(b) < 56 {
		return append([]byte{byte(0x80 + len(b))}, b...)
	}
	// Long string
	lenBytes := rlpEncodeLength(uint64(len(b)))
	prefix := append([]byte{byte(0xb7 + len(lenBytes))}, lenBytes...)
	return append(prefix, b...)
}

func rlpEncodeUint(n uint64) []byte {
	if n == 0 {
		return []byte{0x80}
	}
	var buf [8]byte
	i := 7
	for n > 0 {
		buf[i] = byte(n & 0xff)
		n >>= 8
		i--
	}
	return rlpEncodeBytes(buf[i+1:])
}

func rlpEncodeList(items []interface{}) []byte {
	var encoded []byte
	for _, item := range items {
		encoded = append(encoded, rlpEncode(item)...)
	}
	if len(encoded) < 56 {
		return append([]byte{byte(0xc0 + len(encoded))}, encoded...)
	}
	// Long list
	lenBytes := rlpEncodeLength(uint64(len(encoded)))
	prefix := append([]byte{byte(0xf7 + len(lenBytes))}, lenBytes...)
	return append(prefix, encoded...)
}

func rlpEncodeLength(n uint64) []byte {
	if n < 256 {
		return []byte{byte(n)}
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte(n & 0xff)}, buf...)
		n >>= 8
	}
	return buf
}

// encodeUnsignedTx encodes the EIP-155 signing payload:
// [nonce, gasPrice, gasLimit, to, value, data, chainId, 0, 0]
func encodeUnsignedTx(params *TxParams, gasLimit uint64) []byte {
	items := []interface{}{
		params.Nonce,
		params.GasPrice,
		gasLimit,
		addressToBytes(params.To),
		params.Value,
		params.Data,
		params.ChainID,
		uint64(0),
		uint64(0),
	}
	return rlpEncode(items)
}

// encodeSignedTx encodes the broadcast payload:
// [nonce, gasPrice, gasLimit, to, value, data, v, r, s]
func encodeSignedTx(params *TxParams, gasLimit, v uint64, r, s *big.Int) []byte {
	items := []interface{}{
		params.Nonce,
		params.GasPrice,
		gasLimit,
		addressToBytes(params.To),
		params.Value,
		params.Data,
		v,
		r,
		s,
	}
	return rlpEncode(items)
}

// addressToBytes converts a 0x-prefixed address string to its 20 bytes.
func addressToBytes(addr string) []byte {
	b, _ := helpers.HexToBytes(addr)
	return b
}

// =============================================================================
// ERC-20 call encoding
// =============================================================================

// erc20TransferSelector is keccak256("transfer(address,uint256)")[:4].
var erc20TransferSelector = []byte{0xa9, 0x05, 0x9c, 0xbb}

// erc20BalanceOfSelector is keccak256("balanceOf(address)")[:4].
var erc20BalanceOfSelector = []byte{0x70, 0xa0, 0x82, 0x31}

// EncodeTransferCall encodes an ERC-20 transfer(recipient, amount) call.
// The amount passes through in base units; no decimal scaling is applied.
func EncodeTransferCall(to string, amount *big.Int) ([]byte, error) {
	if !ValidAddress(to) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, to)
	}

	if amount.BitLen() > 256 {
		return nil, fmt.Errorf("%w: amount exceeds 256 bits", ErrInvalidAmount)
	}

	// Selector (4 bytes) + address slot (32 bytes) + amount slot (32 bytes)
	data := make([]byte, 0, 68)
	data = append(data, erc20TransferSelector...)
	data = append(data, helpers.PadLeft(addressToBytes(to), 32)...)
	data = append(data, helpers.PadLeft(amount.Bytes(), 32)...)

	return data, nil
}

// EncodeBalanceOfCall encodes an ERC-20 balanceOf(holder) call.
func EncodeBalanceOfCall(holder string) ([]byte, error) {
	if !ValidAddress(holder) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, holder)
	}

	// Selector (4 bytes) + address slot (32 bytes)
	data := make([]byte, 0, 36)
	data = append(data, erc20BalanceOfSelector...)
	data = append(data, helpers.PadLeft(addressToBytes(holder), 32)...)

	return data, nil
}

// DecodeBalanceResult decodes the result of an ERC-20 balanceOf call.
func DecodeBalanceResult(data []byte) (*big.Int, error) {
	if len(data) < 32 {
		return nil, fmt.Errorf("invalid balance result length: %d", len(data))
	}
	return new(big.Int).SetBytes(data[:32]), nil
}
