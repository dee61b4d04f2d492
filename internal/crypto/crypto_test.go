package crypto_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geas/internal/crypto"
)

var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestGenerateSecret_LengthAndAlphabet(t *testing.T) {
	secret, err := crypto.GenerateSecret(crypto.MinSecretBytes)
	require.NoError(t, err)

	// 32 bytes -> 43 unpadded base64 chars.
	assert.Len(t, secret, 43)
	assert.Regexp(t, tokenPattern, string(secret))
}

func TestGenerateSecret_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 64; i++ {
		secret, err := crypto.GenerateSecret(crypto.MinSecretBytes)
		require.NoError(t, err)
		_, dup := seen[string(secret)]
		require.False(t, dup, "duplicate secret generated")
		seen[string(secret)] = struct{}{}
	}
}

func TestGenerateSecret_RejectsShort(t *testing.T) {
	_, err := crypto.GenerateSecret(crypto.MinSecretBytes - 1)
	assert.ErrorIs(t, err, crypto.ErrShortSecret)
}

func TestFingerprint_StableAndShort(t *testing.T) {
	a := crypto.Fingerprint([]byte("token"))
	b := crypto.Fingerprint([]byte("token"))
	c := crypto.Fingerprint([]byte("other"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 20)
}

func TestWipe(t *testing.T) {
	b := []byte("sensitive")
	crypto.Wipe(b)
	assert.Equal(t, make([]byte, len("sensitive")), b)

	crypto.Wipe(nil)
}
