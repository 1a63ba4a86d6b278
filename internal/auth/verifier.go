// Package auth checks login credentials and keeps the signed-in user.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the username or password is wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is the signed-in account as persisted under auth_user.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Verifier checks a username/password pair.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (User, error)
}

// StaticVerifier accepts a single configured account.
type StaticVerifier struct {
	username string
	hash     []byte
}

// NewStaticVerifier builds a verifier for username with a bcrypt hash as
// produced by HashPassword. An empty username or hash rejects every login.
func NewStaticVerifier(username, passwordHash string) *StaticVerifier {
	return &StaticVerifier{username: username, hash: []byte(passwordHash)}
}

func (v *StaticVerifier) Verify(ctx context.Context, username, password string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	if v.username == "" || len(v.hash) == 0 || username != v.username {
		return User{}, ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword(v.hash, []byte(password))
	switch {
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return User{}, ErrInvalidCredentials
	case err != nil:
		return User{}, fmt.Errorf("checking password hash: %w", err)
	}
	return User{Username: username, Email: username + "@example.com"}, nil
}

// HashPassword hashes a password for the auth.password_hash setting.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
