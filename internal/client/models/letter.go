// Package models holds the client-side records kept in the local ledger.
package models

import "time"

// SealedLetter is the local memory of a letter sealed from this machine.
// The content itself is never stored locally.
type SealedLetter struct {
	ID         string
	Title      string
	OpenAt     time.Time
	SealedAt   time.Time
	SendToVoid bool
	OpenedAt   *time.Time
}

// Ready reports whether the letter can be opened at now.
func (l *SealedLetter) Ready(now time.Time) bool {
	return !l.SendToVoid && !now.Before(l.OpenAt)
}
