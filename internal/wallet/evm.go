package wallet

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/sha3"
)

// PublicKeyToAddress converts a secp256k1 public key to an EVM address.
// Address = "0x" + last 20 bytes of Keccak256(uncompressed pubkey without
// the 0x04 prefix byte), EIP-55 checksummed.
func PublicKeyToAddress(pubKey *btcec.PublicKey) string {
	pubKeyBytes := pubKey.SerializeUncompressed()

	// Hash without the 0x04 prefix
	hash := Keccak256(pubKeyBytes[1:])

	// Take last 20 bytes
	return ChecksumAddress(hex.EncodeToString(hash[12:]))
}

// Keccak256 computes the Keccak-256 hash (used by Ethereum).
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// ChecksumAddress applies EIP-55 checksum casing to an address.
func ChecksumAddress(addr string) string {
	addr = strings.ToLower(strings.TrimPrefix(addr, "0x"))
	hash := hex.EncodeToString(Keccak256([]byte(addr)))

	result := "0x"
	for i, c := range addr {
		if c >= '0' && c <= '9' {
			result += string(c)
		} else {
			// If the ith digit of the hash is >= 8, uppercase
			if hash[i] >= '8' {
				result += strings.ToUpper(string(c))
			} else {
				result += string(c)
			}
		}
	}
	return result
}

// ValidAddress checks that an address is 0x-prefixed 40-digit hex.
func ValidAddress(address string) bool {
	if !strings.HasPrefix(address, "0x") {
		return false
	}
	address = strings.TrimPrefix(address, "0x")
	if len(address) != 40 {
		return false
	}
	_, err := hex.DecodeString(address)
	return err == nil
}
