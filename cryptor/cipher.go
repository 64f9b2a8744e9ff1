// Package cryptor implements a password-derived AES-256-CBC envelope:
// PBKDF2-HMAC-SHA256 key derivation, a random salt+IV per encrypt
// call, and PKCS-style padding where a full extra block is appended
// when the plaintext is already block-aligned.
//
// Authenticity is not provided here; it is provided separately by the
// header HMAC.
package cryptor

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/ciphernest/stego/models"
)

const (
	blockSize      = 16
	saltSize       = 16
	ivSize         = 16
	keySize        = 32
	pbkdf2Iterations = 100000
)

// DeriveKey runs PBKDF2-HMAC-SHA256 over passphrase with salt, producing
// a 32-byte AES-256 key.
func DeriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, keySize, sha256.New)
}

// EstimateSize returns the exact ciphertext envelope size for a
// plaintext of length plaintextLen, without performing any encryption.
// The header uses this to declare EMBEDDED_SIZES before embedding.
func EstimateSize(plaintextLen int) int {
	paddedLen := (plaintextLen/blockSize + 1) * blockSize
	return saltSize + ivSize + paddedLen
}

// Encrypt derives a key from passphrase under a fresh random salt,
// pads plaintext, and encrypts it under AES-256-CBC with a fresh
// random IV. The output layout is salt(16) || iv(16) || ciphertext.
func Encrypt(passphrase string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, models.NewErrorf(models.KindInternal, "cryptor: salt: %v", err)
	}
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, models.NewErrorf(models.KindInternal, "cryptor: iv: %v", err)
	}

	key := DeriveKey(passphrase, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, models.NewErrorf(models.KindInternal, "cryptor: %v", err)
	}

	padded := pad(plaintext)
	ciphertext := make([]byte, len(padded))
	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ciphertext, padded)

	out := make([]byte, 0, saltSize+ivSize+len(ciphertext))
	out = append(out, salt...)
	out = append(out, iv...)
	out = append(out, ciphertext...)
	return out, nil
}

// Decrypt parses salt and IV from the first 32 bytes of envelope,
// re-derives the key from passphrase, decrypts, and strips padding.
// Any structural or padding failure surfaces as DataCorrupted.
func Decrypt(passphrase string, envelope []byte) ([]byte, error) {
	if len(envelope) < saltSize+ivSize+blockSize {
		return nil, models.NewError(models.KindDataCorrupted, "cryptor: envelope too short")
	}
	salt := envelope[:saltSize]
	iv := envelope[saltSize : saltSize+ivSize]
	ciphertext := envelope[saltSize+ivSize:]
	if len(ciphertext)%blockSize != 0 {
		return nil, models.NewError(models.KindDataCorrupted, "cryptor: ciphertext not block-aligned")
	}

	key := DeriveKey(passphrase, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, models.NewErrorf(models.KindInternal, "cryptor: %v", err)
	}

	plainPadded := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(plainPadded, ciphertext)

	return unpad(plainPadded)
}

// pad appends a PKCS#7-style count-of-padding-bytes trailer. When
// data is already block-aligned, a full extra block of padding is
// appended rather than omitted.
func pad(data []byte) []byte {
	padLen := blockSize - len(data)%blockSize
	padding := make([]byte, padLen)
	for i := range padding {
		padding[i] = byte(padLen)
	}
	return append(append([]byte{}, data...), padding...)
}

func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, models.NewError(models.KindDataCorrupted, "cryptor: empty plaintext")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, models.NewError(models.KindDataCorrupted, "cryptor: invalid padding")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, models.NewError(models.KindDataCorrupted, "cryptor: invalid padding")
		}
	}
	return data[:len(data)-padLen], nil
}
