package wallet

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

// MnemonicFromSecret derives the BIP39 mnemonic for an opaque secret.
//
// The secret (typically a passkey credential ID) is hashed with SHA-256 to
// 256 bits of entropy, which maps to a 24-word mnemonic. Deterministic:
// the same secret always yields the same mnemonic.
func MnemonicFromSecret(secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: empty secret", ErrInvalidSecret)
	}

	entropy := sha256.Sum256(secret)

	mnemonic, err := bip39.NewMnemonic(entropy[:])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}

	return mnemonic, nil
}

// masterKeyFromMnemonic stretches a mnemonic (empty passphrase) into a
// 512-bit seed and builds the BIP32 master key from it.
func masterKeyFromMnemonic(mnemonic string) (*hdkeychain.ExtendedKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("%w: invalid mnemonic", ErrInvalidSecret)
	}

	seed := bip39.NewSeed(mnemonic, "")

	// The chaincfg params only select extended-key version bytes, which
	// never leave this process; mainnet params are used throughout.
	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	return masterKey, nil
}
