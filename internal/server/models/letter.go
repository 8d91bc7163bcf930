// Package models defines the server-side records persisted by Lightway and
// the lifecycle rules that govern them.
package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/lightway/internal/common"
)

// LetterState is the lifecycle position of a time capsule letter.
type LetterState string

const (
	LetterSealed    LetterState = "sealed"
	LetterOpened    LetterState = "opened"
	LetterDestroyed LetterState = "destroyed"
)

var letterTransitions = map[LetterState][]LetterState{
	LetterSealed: {LetterOpened, LetterDestroyed},
	LetterOpened: {LetterOpened},
}

// Valid reports whether s is a known state.
func (s LetterState) Valid() bool {
	switch s {
	case LetterSealed, LetterOpened, LetterDestroyed:
		return true
	}
	return false
}

// CanTransition reports whether a letter in state s may move to next.
func (s LetterState) CanTransition(next LetterState) bool {
	for _, allowed := range letterTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next when the move is allowed, or an error wrapping
// common.ErrInvalidTransition.
func (s LetterState) Transition(next LetterState) (LetterState, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("letter %s -> %s: %w", s, next, common.ErrInvalidTransition)
	}
	return next, nil
}

// Letter is a stored time capsule. Content and title are sealed with the
// time-lock service under OpenAt; the creator's address is kept only as a
// hash.
type Letter struct {
	ID               string
	EncryptedContent []byte
	// EncryptedTitle is nil when the letter has no title.
	EncryptedTitle []byte
	CreatedAt      time.Time
	OpenAt         time.Time
	State          LetterState
	SendToVoid     bool
	OpenedAt       *time.Time
	DestroyedAt    *time.Time
	CreatorIPHash  string
}

// CanBeOpened reports whether the letter may be opened at now.
func (l *Letter) CanBeOpened(now time.Time) bool {
	return l.State != LetterDestroyed && !now.Before(l.OpenAt)
}

// OpenedLetter is the decrypted view returned to a caller who opened a letter.
type OpenedLetter struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	OpenedAt  time.Time
}
