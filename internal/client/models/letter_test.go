package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSealedLetter_Ready(t *testing.T) {
	at := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	l := &SealedLetter{OpenAt: at}

	assert.False(t, l.Ready(at.Add(-time.Second)))
	assert.True(t, l.Ready(at))
	assert.True(t, l.Ready(at.Add(time.Hour)))

	l.SendToVoid = true
	assert.False(t, l.Ready(at.Add(time.Hour)))
}
