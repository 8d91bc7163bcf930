// Package cryptox implements the time-lock encryption used for letters plus
// the small hashing and token helpers shared by the server.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/dmitrijs2005/lightway/internal/common"
)

// errEnvelopeTooShort is returned by openGCM before any AEAD work is done.
var errEnvelopeTooShort = errors.New("envelope too short")

// sealGCM encrypts plaintext with AES-GCM under key. A fresh random nonce is
// generated for each call and prepended to the ciphertext:
//
//	nonce (12 bytes) || ciphertext || tag (16 bytes)
//
// The key must be a valid AES key length (16, 24 or 32 bytes).
func sealGCM(key, plaintext []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, err := common.GenerateRandByteArray(aesgcm.NonceSize())
	if err != nil {
		return nil, err
	}

	// the nonce slice doubles as the destination so the result is nonce||ct
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// openGCM reverses sealGCM. Any authentication failure is returned as is;
// callers decide how much of it to expose.
func openGCM(key, envelope []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(envelope) < ns+aesgcm.Overhead() {
		return nil, errEnvelopeTooShort
	}

	return aesgcm.Open(nil, envelope[:ns], envelope[ns:], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
