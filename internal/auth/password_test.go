package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitr/backend/internal/storage/sqlite"
)

func newAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewPasswordAuthenticator(store)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, "alice@example.com", "Alice", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash, "password must be hashed")

	got, err := a.Authenticate(ctx, "alice@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	a := newAuthenticator(t)

	_, err := a.Register(context.Background(), "alice@example.com", "Alice", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	_, err := a.Register(ctx, "alice@example.com", "Alice", "password-one")
	require.NoError(t, err)

	_, err = a.Register(ctx, "alice@example.com", "Alice Again", "password-two")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	_, err := a.Register(ctx, "alice@example.com", "Alice", "right-password")
	require.NoError(t, err)

	_, err = a.Authenticate(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody@example.com", "right-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
