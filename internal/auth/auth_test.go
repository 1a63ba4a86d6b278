package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"agentchat/internal/logging"
	"agentchat/internal/prefs"
)

func testVerifier(t *testing.T) *StaticVerifier {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewStaticVerifier("admin", string(hash))
}

type brokenVerifier struct{}

func (brokenVerifier) Verify(ctx context.Context, username, password string) (User, error) {
	return User{}, errors.New("backend unreachable")
}

func TestStaticVerifier(t *testing.T) {
	v := testVerifier(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"correct", "admin", "admin123", nil},
		{"wrong password", "admin", "admin", ErrInvalidCredentials},
		{"wrong user", "root", "admin123", ErrInvalidCredentials},
		{"empty", "", "", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := v.Verify(t.Context(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, User{Username: "admin", Email: "admin@example.com"}, u)
		})
	}
}

func TestStaticVerifier_Unconfigured(t *testing.T) {
	_, err := NewStaticVerifier("", "").Verify(t.Context(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	_, err = NewStaticVerifier("me", hash).Verify(t.Context(), "me", "s3cret")
	assert.NoError(t, err)
}

func TestLogin_Success(t *testing.T) {
	store := prefs.NewMemoryStore()
	s := NewSession(testVerifier(t), store, logging.Discard())

	res := s.Login(t.Context(), "admin", "admin123")
	assert.Equal(t, Result{Success: true}, res)
	assert.True(t, s.IsAuthenticated())

	var saved User
	found, err := prefs.GetJSON(store, prefs.KeyAuthUser, &saved)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "admin", saved.Username)
	assert.Equal(t, "admin@example.com", saved.Email)
}

func TestLogin_Rejected(t *testing.T) {
	store := prefs.NewMemoryStore()
	s := NewSession(testVerifier(t), store, logging.Discard())

	res := s.Login(t.Context(), "admin", "wrong")
	assert.Equal(t, Result{Success: false, Error: MsgInvalidCredentials}, res)
	assert.False(t, s.IsAuthenticated())

	_, ok, _ := store.Get(prefs.KeyAuthUser)
	assert.False(t, ok)
}

func TestLogin_VerifierFailure(t *testing.T) {
	s := NewSession(brokenVerifier{}, prefs.NewMemoryStore(), logging.Discard())

	res := s.Login(t.Context(), "admin", "admin123")
	assert.Equal(t, Result{Error: MsgLoginFailed}, res)
}

func TestRestoreAndLogout(t *testing.T) {
	store := prefs.NewMemoryStore()
	require.NoError(t, prefs.SetJSON(store, prefs.KeyAuthUser, User{Username: "admin", Email: "admin@example.com"}))

	s := NewSession(testVerifier(t), store, logging.Discard())
	s.Restore()
	u, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "admin", u.Username)

	s.Logout()
	assert.False(t, s.IsAuthenticated())
	_, ok, _ = store.Get(prefs.KeyAuthUser)
	assert.False(t, ok)
}

func TestRestore_MalformedBlobRemoved(t *testing.T) {
	store := prefs.NewMemoryStore()
	require.NoError(t, store.Set(prefs.KeyAuthUser, "{not json"))

	s := NewSession(testVerifier(t), store, logging.Discard())
	s.Restore()

	assert.False(t, s.IsAuthenticated())
	_, ok, _ := store.Get(prefs.KeyAuthUser)
	assert.False(t, ok)
}

func TestRestore_EmptyUserRemoved(t *testing.T) {
	for _, blob := range []string{"null", "{}", `{"username":"","email":"x@example.com"}`} {
		t.Run(blob, func(t *testing.T) {
			store := prefs.NewMemoryStore()
			require.NoError(t, store.Set(prefs.KeyAuthUser, blob))

			s := NewSession(testVerifier(t), store, logging.Discard())
			s.Restore()

			assert.False(t, s.IsAuthenticated())
			_, ok, _ := store.Get(prefs.KeyAuthUser)
			assert.False(t, ok)
		})
	}
}
