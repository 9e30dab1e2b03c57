package wallet

import (
	"encoding/hex"
	"testing"

	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/chain"
)

func TestChecksumAddress(t *testing.T) {
	// EIP-55 reference values.
	tests := []struct {
		input string
		want  string
	}{
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{"0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359", "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"},
		{"0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb", "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"},
		{"0xd1220a0cf47c7b9be7a2e6ba89f429762e7b9adb", "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"},
	}

	for _, tt := range tests {
		if got := ChecksumAddress(tt.input); got != tt.want {
			t.Errorf("ChecksumAddress(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestChecksumAddressIdempotent(t *testing.T) {
	addr := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	if got := ChecksumAddress(addr); got != addr {
		t.Errorf("checksumming a checksummed address changed it: %s", got)
	}
}

func TestKeccak256(t *testing.T) {
	// keccak256("") and keccak256("abc") reference digests.
	tests := []struct {
		input string
		want  string
	}{
		{"", "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"abc", "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
	}

	for _, tt := range tests {
		got := hex.EncodeToString(Keccak256([]byte(tt.input)))
		if got != tt.want {
			t.Errorf("Keccak256(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestValidAddress(t *testing.T) {
	tests := []struct {
		address string
		want    bool
	}{
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		{"0x0000000000000000000000000000000000000000", true},
		{"5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false},  // no prefix
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAe", false}, // 39 digits
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAedd", false},
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeg", false}, // non-hex
		{"", false},
		{"0x", false},
	}

	for _, tt := range tests {
		if got := ValidAddress(tt.address); got != tt.want {
			t.Errorf("ValidAddress(%q) = %v, want %v", tt.address, got, tt.want)
		}
	}
}

// Standard test vector: the all-"abandon" mnemonic's first external
// Ethereum address is widely published.
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestPublicKeyToAddressGolden(t *testing.T) {
	masterKey, err := masterKeyFromMnemonic(testMnemonic)
	if err != nil {
		t.Fatalf("masterKeyFromMnemonic: %v", err)
	}

	params, ok := chain.Get("mainnet")
	if !ok {
		t.Fatal("mainnet params not registered")
	}

	dir := newDirectory(masterKey, params)
	acct, err := dir.deriveNext()
	if err != nil {
		t.Fatalf("deriveNext: %v", err)
	}

	const want = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
	if acct.Address != want {
		t.Errorf("index-0 address = %s, want %s", acct.Address, want)
	}
	if acct.Path != "m/44'/60'/0'/0/0" {
		t.Errorf("index-0 path = %s", acct.Path)
	}
}
