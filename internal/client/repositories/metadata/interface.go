// Package metadata stores small named values in the client ledger, such as
// the current gallery session.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyIdentityToken    = "identity_token"
	KeySessionToken     = "session_token"
	KeySessionExpiresAt = "session_expires_at"
)

// Repository is a string key-value store. Get reports common.ErrorNotFound
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
