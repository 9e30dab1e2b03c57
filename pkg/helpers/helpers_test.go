package helpers

import (
	"bytes"
	"math/big"
	"testing"
)

func TestHexToUint64(t *testing.T) {
	tests := []struct {
		input string
		want  uint64
	}{
		{"0x0", 0},
		{"0x1", 1},
		{"0xff", 255},
		{"ff", 255},
		{"0x5208", 21000},
		{"", 0},
		{"0x", 0},
		{"zz", 0},
	}

	for _, tc := range tests {
		if got := HexToUint64(tc.input); got != tc.want {
			t.Errorf("HexToUint64(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestHexToBigInt(t *testing.T) {
	got := HexToBigInt("0xde0b6b3a7640000")
	want, _ := new(big.Int).SetString("1000000000000000000", 10)
	if got.Cmp(want) != 0 {
		t.Errorf("HexToBigInt = %s, want %s", got, want)
	}

	if HexToBigInt("garbage").Sign() != 0 {
		t.Error("malformed hex should yield zero")
	}
}

func TestBigIntToHex(t *testing.T) {
	tests := []struct {
		input *big.Int
		want  string
	}{
		{nil, "0x0"},
		{big.NewInt(0), "0x0"},
		{big.NewInt(21000), "0x5208"},
	}

	for _, tc := range tests {
		if got := BigIntToHex(tc.input); got != tc.want {
			t.Errorf("BigIntToHex(%v) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestHexBytesRoundtrip(t *testing.T) {
	b := []byte{0xde, 0xad, 0xbe, 0xef}
	s := BytesToHex(b)
	if s != "0xdeadbeef" {
		t.Errorf("BytesToHex = %s, want 0xdeadbeef", s)
	}

	back, err := HexToBytes(s)
	if err != nil {
		t.Fatalf("HexToBytes error: %v", err)
	}
	if !bytes.Equal(back, b) {
		t.Errorf("roundtrip mismatch: %x != %x", back, b)
	}
}

func TestPadLeft(t *testing.T) {
	got := PadLeft([]byte{0x01, 0x02}, 4)
	want := []byte{0x00, 0x00, 0x01, 0x02}
	if !bytes.Equal(got, want) {
		t.Errorf("PadLeft = %x, want %x", got, want)
	}

	// Already long enough: unchanged
	in := []byte{1, 2, 3}
	if !bytes.Equal(PadLeft(in, 2), in) {
		t.Error("PadLeft should not truncate")
	}
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		amount   string
		decimals uint8
		want     string
	}{
		{"0", 18, "0"},
		{"1000000000000000000", 18, "1"},
		{"1500000", 6, "1.5"},
		{"500", 6, "0.0005"},
		{"42", 0, "42"},
	}

	for _, tc := range tests {
		amount, _ := new(big.Int).SetString(tc.amount, 10)
		if got := FormatUnits(amount, tc.decimals); got != tc.want {
			t.Errorf("FormatUnits(%s, %d) = %s, want %s", tc.amount, tc.decimals, got, tc.want)
		}
	}
}

func TestParseUnits(t *testing.T) {
	val, err := ParseUnits("1000")
	if err != nil {
		t.Fatalf("ParseUnits error: %v", err)
	}
	if val.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("ParseUnits = %s, want 1000", val)
	}

	for _, bad := range []string{"", "-5", "1.5", "abc"} {
		if _, err := ParseUnits(bad); err == nil {
			t.Errorf("ParseUnits(%q) should fail", bad)
		}
	}
}
