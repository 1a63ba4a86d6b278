package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"agentchat/internal/prefs"
)

// Messages shown on the login form.
const (
	MsgInvalidCredentials = "invalid credentials"
	MsgLoginFailed        = "login failed"
)

// Result is the outcome of a login attempt. Error is empty on success.
type Result struct {
	Success bool
	Error   string
}

// Session holds the signed-in user and mirrors it to the store.
type Session struct {
	verifier Verifier
	store    prefs.Store
	log      logrus.FieldLogger

	mu   sync.RWMutex
	user *User
}

var errEmptyUser = errors.New("saved user has no username")

func NewSession(verifier Verifier, store prefs.Store, log logrus.FieldLogger) *Session {
	return &Session{verifier: verifier, store: store, log: log}
}

// Restore picks up a user saved by an earlier run. A blob that does not
// decode to a user with a username is removed.
func (s *Session) Restore() {
	var u User
	found, err := prefs.GetJSON(s.store, prefs.KeyAuthUser, &u)
	if found && err == nil && u.Username == "" {
		err = errEmptyUser
	}
	switch {
	case found && err != nil:
		s.log.WithError(err).Warn("discarding malformed saved user")
		if err := s.store.Remove(prefs.KeyAuthUser); err != nil {
			s.log.WithError(err).Warn("removing saved user")
		}
		return
	case err != nil:
		s.log.WithError(err).Error("reading saved user")
		return
	case !found:
		return
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.log.WithField("username", u.Username).Debug("session restored")
}

// Login verifies the credentials and, on success, signs the user in and
// persists them. It never returns an error; failures are described in the
// Result.
func (s *Session) Login(ctx context.Context, username, password string) Result {
	u, err := s.verifier.Verify(ctx, username, password)
	if errors.Is(err, ErrInvalidCredentials) {
		s.log.WithField("username", username).Info("login rejected")
		return Result{Error: MsgInvalidCredentials}
	}
	if err != nil {
		s.log.WithError(err).Error("login")
		return Result{Error: MsgLoginFailed}
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()

	if err := prefs.SetJSON(s.store, prefs.KeyAuthUser, u); err != nil {
		s.log.WithError(err).Warn("saving signed-in user")
	}
	s.log.WithField("username", u.Username).Info("logged in")
	return Result{Success: true}
}

// Logout forgets the user in memory and in the store.
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Remove(prefs.KeyAuthUser); err != nil {
		s.log.WithError(err).Warn("removing saved user")
	}
}

// Current returns the signed-in user.
func (s *Session) Current() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}
