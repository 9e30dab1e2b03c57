package wallet

import (
	"errors"
	"strings"
	"testing"
)

func TestMnemonicFromSecretDeterministic(t *testing.T) {
	secret := []byte("credential-id-0001")

	first, err := MnemonicFromSecret(secret)
	if err != nil {
		t.Fatalf("MnemonicFromSecret: %v", err)
	}

	second, err := MnemonicFromSecret(secret)
	if err != nil {
		t.Fatalf("MnemonicFromSecret: %v", err)
	}

	if first != second {
		t.Errorf("same secret produced different mnemonics:\n%s\n%s", first, second)
	}
}

func TestMnemonicFromSecretWordCount(t *testing.T) {
	mnemonic, err := MnemonicFromSecret([]byte("any secret at all"))
	if err != nil {
		t.Fatalf("MnemonicFromSecret: %v", err)
	}

	words := strings.Fields(mnemonic)
	if len(words) != 24 {
		t.Errorf("expected 24 words, got %d", len(words))
	}
}

func TestMnemonicFromSecretDiverges(t *testing.T) {
	a, err := MnemonicFromSecret([]byte("secret-a"))
	if err != nil {
		t.Fatalf("MnemonicFromSecret: %v", err)
	}

	b, err := MnemonicFromSecret([]byte("secret-b"))
	if err != nil {
		t.Fatalf("MnemonicFromSecret: %v", err)
	}

	if a == b {
		t.Error("different secrets produced the same mnemonic")
	}
}

func TestMnemonicFromSecretEmpty(t *testing.T) {
	_, err := MnemonicFromSecret(nil)
	if !errors.Is(err, ErrInvalidSecret) {
		t.Errorf("expected ErrInvalidSecret, got %v", err)
	}

	_, err = MnemonicFromSecret([]byte{})
	if !errors.Is(err, ErrInvalidSecret) {
		t.Errorf("expected ErrInvalidSecret, got %v", err)
	}
}

func TestMasterKeyFromMnemonicInvalid(t *testing.T) {
	_, err := masterKeyFromMnemonic("not a valid mnemonic phrase")
	if !errors.Is(err, ErrInvalidSecret) {
		t.Errorf("expected ErrInvalidSecret, got %v", err)
	}
}

func TestMasterKeyFromMnemonicDeterministic(t *testing.T) {
	mnemonic, err := MnemonicFromSecret([]byte("stable-secret"))
	if err != nil {
		t.Fatalf("MnemonicFromSecret: %v", err)
	}

	k1, err := masterKeyFromMnemonic(mnemonic)
	if err != nil {
		t.Fatalf("masterKeyFromMnemonic: %v", err)
	}

	k2, err := masterKeyFromMnemonic(mnemonic)
	if err != nil {
		t.Fatalf("masterKeyFromMnemonic: %v", err)
	}

	if k1.String() != k2.String() {
		t.Error("same mnemonic produced different master keys")
	}
}
