package cryptor

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("a"),
		[]byte("exactly16bytes!!"),
		bytes.Repeat([]byte{0x42}, 1000),
	}
	for _, plaintext := range cases {
		envelope, err := Encrypt("correct horse", plaintext)
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		got, err := Decrypt("correct horse", envelope)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Fatalf("round-trip mismatch: got %v want %v", got, plaintext)
		}
	}
}

func TestEstimateSizeMatchesActual(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 17, 100, 1000} {
		plaintext := bytes.Repeat([]byte{0x01}, n)
		envelope, err := Encrypt("pw", plaintext)
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		if got, want := len(envelope), EstimateSize(n); got != want {
			t.Errorf("n=%d: EstimateSize=%d actual=%d", n, want, got)
		}
	}
}

func TestDecryptWrongPassphraseFails(t *testing.T) {
	envelope, err := Encrypt("alpha", []byte("secret payload"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got, err := Decrypt("beta", envelope)
	if err == nil && bytes.Equal(got, []byte("secret payload")) {
		t.Fatal("expected decrypt under the wrong passphrase to fail or produce garbage")
	}
}

func TestDecryptCorruptedEnvelope(t *testing.T) {
	if _, err := Decrypt("pw", []byte("too short")); err == nil {
		t.Fatal("expected an error for a truncated envelope")
	}
}
