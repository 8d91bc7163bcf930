package cryptox

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lightway/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the random salt prefixed to every blob.
	SaltSize = 32
	// KeySize is the length of the derived AES-256 key.
	KeySize = 32
	// KDFIterations is the PBKDF2-HMAC-SHA256 work factor.
	KDFIterations = 100_000
	// InstantLayout is the canonical textual form of an open instant that is
	// mixed into the key material.
	InstantLayout = "2006-01-02T15:04:05.000000Z"
)

var (
	// ErrNotYetOpenable is returned when decryption is attempted before the
	// open instant. No key derivation happens in that case.
	ErrNotYetOpenable = errors.New("not yet openable")

	// ErrDecryptionFailed covers every cryptographic, integrity or format
	// failure during decryption. The cause is deliberately not exposed.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrNonCanonicalInstant is returned by Encrypt for an open instant
	// finer than a microsecond. Normalize it with CanonicalInstant first.
	ErrNonCanonicalInstant = errors.New("open instant is not canonical")
)

// CanonicalInstant normalizes t to UTC with microsecond precision, the
// resolution PostgreSQL keeps for timestamptz. Instants must be normalized
// before they are stored so that a value read back derives the same key.
func CanonicalInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// IsCanonical reports whether t survives CanonicalInstant unchanged.
func IsCanonical(t time.Time) bool {
	return t.Equal(CanonicalInstant(t))
}

// FormatInstant returns the canonical textual representation of t.
func FormatInstant(t time.Time) string {
	return CanonicalInstant(t).Format(InstantLayout)
}

// DeriveKey derives the symmetric key for one blob. The key material is
// masterKey || salt || FormatInstant(openInstant); it is stretched with
// PBKDF2-HMAC-SHA256 using the same salt. The result is deterministic for a
// fixed (masterKey, salt, openInstant).
func DeriveKey(masterKey, salt []byte, openInstant time.Time) []byte {
	instant := []byte(FormatInstant(openInstant))

	material := make([]byte, 0, len(masterKey)+len(salt)+len(instant))
	material = append(material, masterKey...)
	material = append(material, salt...)
	material = append(material, instant...)
	defer common.WipeByteArray(material)

	return pbkdf2.Key(material, salt, KDFIterations, KeySize, sha256.New)
}

// TimeLock encrypts content so that it can only be decrypted once the wall
// clock has reached a chosen open instant. The instant is bound into the key,
// so a caller that does not know it cannot derive the key at all.
//
// A TimeLock holds only the read-only master key and is safe for concurrent use.
type TimeLock struct {
	masterKey []byte
}

// NewTimeLock returns a TimeLock using masterKey as the process-wide secret.
func NewTimeLock(masterKey string) *TimeLock {
	return &TimeLock{masterKey: []byte(masterKey)}
}

// Encrypt seals plaintext for openInstant. The returned blob is
//
//	salt (32 bytes) || nonce (12 bytes) || ciphertext || tag (16 bytes)
//
// A new salt is drawn for every call, so equal inputs produce different blobs.
// openInstant must be canonical, otherwise ErrNonCanonicalInstant is returned.
func (l *TimeLock) Encrypt(plaintext []byte, openInstant time.Time) ([]byte, error) {
	if !IsCanonical(openInstant) {
		return nil, ErrNonCanonicalInstant
	}

	salt, err := common.GenerateRandByteArray(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("salt generation failed: %w", err)
	}

	key := DeriveKey(l.masterKey, salt, openInstant)
	defer common.WipeByteArray(key)

	envelope, err := sealGCM(key, plaintext)
	if err != nil {
		return nil, fmt.Errorf("encryption failed: %w", err)
	}

	var blob bytes.Buffer
	blob.Grow(len(salt) + len(envelope))
	blob.Write(salt)
	blob.Write(envelope)

	return blob.Bytes(), nil
}

// Decrypt opens a blob produced by Encrypt. openInstant must be the value
// used at encryption time. If now is before the open instant ErrNotYetOpenable
// is returned; every other failure is ErrDecryptionFailed.
func (l *TimeLock) Decrypt(blob []byte, openInstant, now time.Time) ([]byte, error) {
	if !l.CanDecrypt(openInstant, now) {
		return nil, ErrNotYetOpenable
	}

	// a sub-microsecond instant was never used by Encrypt
	if !IsCanonical(openInstant) || len(blob) <= SaltSize {
		return nil, ErrDecryptionFailed
	}

	salt, envelope := blob[:SaltSize], blob[SaltSize:]

	key := DeriveKey(l.masterKey, salt, openInstant)
	defer common.WipeByteArray(key)

	plaintext, err := openGCM(key, envelope)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// CanDecrypt reports whether now has reached the open instant.
func (l *TimeLock) CanDecrypt(openInstant, now time.Time) bool {
	return !now.Before(openInstant)
}
