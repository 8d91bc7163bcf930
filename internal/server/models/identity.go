package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/lightway/internal/common"
)

type IdentityState string

const (
	IdentityActive  IdentityState = "active"
	IdentityExpired IdentityState = "expired"
)

// Transition allows only active -> expired.
func (s IdentityState) Transition(next IdentityState) (IdentityState, error) {
	if s == IdentityActive && next == IdentityExpired {
		return next, nil
	}
	return s, fmt.Errorf("identity %s -> %s: %w", s, next, common.ErrInvalidTransition)
}

// FacadeIdentity is a short-lived anonymous identity used to post to the
// gallery.
type FacadeIdentity struct {
	ID            string
	Token         string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	State         IdentityState
	CreatorIPHash string
}

// Valid reports whether the identity can still be used at now.
func (i *FacadeIdentity) Valid(now time.Time) bool {
	return i.State == IdentityActive && now.Before(i.ExpiresAt)
}
