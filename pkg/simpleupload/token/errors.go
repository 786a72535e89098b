package token

import "errors"

// Error types
var (
	// ErrTokenTooShort indicates a token shorter than the nonce prefix.
	// Rejected before any decoding or crypto work.
	ErrTokenTooShort = errors.New("token: shorter than the 32-char nonce prefix")

	// ErrMalformedToken indicates hex or base64 content that does not decode
	ErrMalformedToken = errors.New("token: malformed encoding")

	// ErrCiphertextAlignment indicates ciphertext whose length is not a
	// multiple of the cipher block size
	ErrCiphertextAlignment = errors.New("token: ciphertext not a multiple of the cipher block size")

	// ErrInvalidPadding indicates padding that failed validation after
	// decryption (wrong secret or tampering)
	ErrInvalidPadding = errors.New("token: invalid padding")
)

// IsFormatError returns true when the token could not be parsed at all:
// too short, or carrying undecodable hex/base64.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrTokenTooShort) || errors.Is(err, ErrMalformedToken)
}

// IsCryptoError returns true when the token parsed but could not be
// decrypted under the supplied secret.
func IsCryptoError(err error) bool {
	return errors.Is(err, ErrCiphertextAlignment) || errors.Is(err, ErrInvalidPadding)
}
