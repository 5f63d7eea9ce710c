package cryptox_test

import (
	"strings"
	"testing"

	"github.com/placementpro/placementd/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := cryptox.HashPassword("S3cure!password")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, cryptox.VerifyPassword("S3cure!password", hash))
	require.ErrorIs(t, cryptox.VerifyPassword("wrong-password", hash), cryptox.ErrMismatch)
}

func TestHashIsSaltedPerCall(t *testing.T) {
	t.Parallel()

	a, err := cryptox.HashPassword("same-input")
	require.NoError(t, err)
	b, err := cryptox.HashPassword("same-input")
	require.NoError(t, err)

	// Distinct salt per call means the encoded digests never repeat.
	require.NotEqual(t, a, b)
	require.NoError(t, cryptox.VerifyPassword("same-input", a))
	require.NoError(t, cryptox.VerifyPassword("same-input", b))
}

func TestVerifyPasswordFailsClosedOnMalformedDigest(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":           "",
		"garbage":         "not-a-hash",
		"wrong algorithm": "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"wrong version":   "$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"missing parts":   "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA",
		"bad salt b64":    "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",
		"bad hash b64":    "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$!!!",
		"zero params":     "$argon2id$v=19$m=0,t=0,p=0$c2FsdA$aGFzaA",
	}

	for name, digest := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, cryptox.VerifyPassword("whatever", digest), cryptox.ErrMismatch)
		})
	}
}
