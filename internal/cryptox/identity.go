package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/dmitrijs2005/lightway/internal/common"
)

// TokenSize is the number of random bytes behind every identity token.
const TokenSize = 32

// HashIdentifier returns the hex-encoded SHA-256 of raw. It is used to
// deduplicate actions per network address without keeping the address.
func HashIdentifier(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// GenerateToken returns an unguessable URL-safe token carrying TokenSize
// bytes of entropy, base64url-encoded without padding.
func GenerateToken() (string, error) {
	b, err := common.GenerateRandByteArray(TokenSize)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
