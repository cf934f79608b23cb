// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cryptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRoundTrips(t *testing.T) {
	c := Noop{}
	plaintext := []byte("hello")
	enc, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	dec, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, plaintext, dec)

	sig, err := c.Sign(plaintext)
	require.NoError(t, err)
	ok, err := c.Verify(plaintext, sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestEd25519ChaChaRoundTrips checks the round-trip fidelity contract
// for this collaborator when a real engine is configured.
func TestEd25519ChaChaRoundTrips(t *testing.T) {
	pub, priv, err := GenerateKeypair()
	require.NoError(t, err)
	key := make([]byte, 32)
	c, err := NewEd25519ChaCha(key, priv, pub)
	require.NoError(t, err)

	plaintext := []byte("the quick brown fox")
	enc, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, enc)
	dec, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, plaintext, dec)

	sig, err := c.Sign(plaintext)
	require.NoError(t, err)
	ok, err := c.Verify(plaintext, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	tampered := append([]byte(nil), plaintext...)
	tampered[0] ^= 0xFF
	ok, err = c.Verify(tampered, sig)
	require.NoError(t, err)
	assert.False(t, ok)
}
