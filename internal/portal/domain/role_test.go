package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Admin", "Company", "Student"} {
		role, err := ParseRole(name)
		require.NoError(t, err)
		require.Equal(t, name, role.String())
	}

	_, err := ParseRole("Superuser")
	require.ErrorIs(t, err, ErrUnknownRole)

	// Role names are exact, not case folded.
	_, err = ParseRole("admin")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestSignupRole(t *testing.T) {
	t.Parallel()

	role, err := SignupRole("")
	require.NoError(t, err)
	require.Equal(t, RoleStudent, role)

	role, err = SignupRole("Company")
	require.NoError(t, err)
	require.Equal(t, RoleCompany, role)

	// Admin accounts only come from bootstrap seeding.
	_, err = SignupRole("Admin")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestDefaultAvatarURL(t *testing.T) {
	t.Parallel()

	url := DefaultAvatarURL("Jordan", "Lee")
	require.Contains(t, url, "name=Jordan+Lee")

	// Query escaping applies per name part.
	url = DefaultAvatarURL("Mary Jane", "O'Hara")
	require.Contains(t, url, "name=Mary+Jane+O%27Hara")

	url = DefaultAvatarURL("Admin", "")
	require.Contains(t, url, "name=Admin&")
}
