package secrets

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"

	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

const (
	// KeySize is the symmetric key length in bytes.
	KeySize = 32

	nonceSize = 24
)

// CreateSymmetricKey generates a new random symmetric key.
func CreateSymmetricKey() ([]byte, error) {
	symKey := make([]byte, KeySize)
	if _, err := rand.Read(symKey); err != nil {
		return nil, err
	}

	return symKey, nil
}

func toKey(symKey []byte) (*[KeySize]byte, error) {
	if len(symKey) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, KeySize, len(symKey))
	}
	var key [KeySize]byte
	copy(key[:], symKey)
	return &key, nil
}

// Encrypt seals plaintext with the symmetric key. The random nonce is
// prepended to the sealed box, so encrypting the same bytes twice gives
// different output.
func Encrypt(plaintext, symKey []byte) ([]byte, error) {
	key, err := toKey(symKey)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return secretbox.Seal(nonce[:], plaintext, &nonce, key), nil
}

// Decrypt opens ciphertext produced by Encrypt. A wrong key, a modified
// byte or a truncated input all fail with ErrAuthentication; no plaintext is
// returned in that case.
func Decrypt(ciphertext, symKey []byte) ([]byte, error) {
	key, err := toKey(symKey)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: ciphertext too short", kerrors.ErrAuthentication)
	}

	// Extract the nonce from the beginning of the ciphertext
	var nonce [nonceSize]byte
	copy(nonce[:], ciphertext[:nonceSize])

	plaintext, ok := secretbox.Open(nil, ciphertext[nonceSize:], &nonce, key)
	if !ok {
		return nil, kerrors.ErrAuthentication
	}
	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}
