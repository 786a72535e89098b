// Package token encrypts short string payloads into URL-safe tokens bound
// to a shared secret.
//
// A token is a fresh 16-byte nonce rendered as 32 lowercase hex
// characters, followed by the AES-256-CBC ciphertext in standard base64
// with '+', '/', '=' remapped to '-', '_', '~'. The layout is a
// compatibility contract with existing token issuers and consumers; it
// must be produced byte for byte as described.
//
// The AES key is SHA-256 of the secret. That is key shaping for
// interoperability, not a password KDF: no salt, no stretching. The format
// carries no authentication tag, so decryption proves nothing about
// integrity and decrypted payloads must be treated as untrusted input.
package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const (
	nonceSize   = aes.BlockSize
	noncePrefix = nonceSize * 2 // hex doubles the nonce on the wire
)

var (
	toURLSafe   = strings.NewReplacer("+", "-", "/", "_", "=", "~")
	fromURLSafe = strings.NewReplacer("-", "+", "_", "/", "~", "=")
)

// deriveKey shapes a secret of any length into an AES-256 key.
func deriveKey(secret []byte) [sha256.Size]byte {
	return sha256.Sum256(secret)
}

// wipe zeroes key material before it goes out of scope.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Encrypt seals plaintext under secret. Every call draws a fresh nonce, so
// equal inputs produce distinct tokens that all decrypt to the same
// payload.
func Encrypt(plaintext string, secret []byte) (string, error) {
	key := deriveKey(secret)
	defer wipe(key[:])

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}

	iv := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("token: reading nonce: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + toURLSafe.Replace(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

// Decrypt opens a token produced by Encrypt. Parse failures classify as
// format errors, failures under the supplied secret as crypto errors; see
// IsFormatError and IsCryptoError.
func Decrypt(tok string, secret []byte) (string, error) {
	if len(tok) < noncePrefix {
		return "", ErrTokenTooShort
	}

	iv, err := hex.DecodeString(tok[:noncePrefix])
	if err != nil {
		return "", fmt.Errorf("%w: nonce is not hex", ErrMalformedToken)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(fromURLSafe.Replace(tok[noncePrefix:]))
	if err != nil {
		return "", fmt.Errorf("%w: payload is not base64", ErrMalformedToken)
	}

	// Empty ciphertext passes the alignment check and fails padding
	// validation below, like any other undersized payload.
	if len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrCiphertextAlignment
	}

	key := deriveKey(secret)
	defer wipe(key[:])

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}

	return string(unpadded), nil
}

// Codec binds a secret so call sites hold no key material of their own.
type Codec struct {
	secret []byte
}

// New creates a Codec bound to secret.
func New(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Encrypt seals plaintext under the bound secret.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	return Encrypt(plaintext, c.secret)
}

// Decrypt opens a token under the bound secret.
func (c *Codec) Decrypt(tok string) (string, error) {
	return Decrypt(tok, c.secret)
}
