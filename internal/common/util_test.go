package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 5), buf)
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestGenerateRandByteArray(t *testing.T) {
	const n = 32
	a, err := GenerateRandByteArray(n)
	require.NoError(t, err)
	b, err := GenerateRandByteArray(n)
	require.NoError(t, err)

	assert.Len(t, a, n)
	assert.Len(t, b, n)
	assert.False(t, bytes.Equal(a, b), "two random buffers must differ")
}
