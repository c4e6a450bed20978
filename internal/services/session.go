package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"datahub/internal/domain"
)

// Session is the process-wide authentication state: Anonymous (no user) or
// Authenticated (holds a User). It is constructed once at startup,
// rehydrates from the repository, and transitions only through Login,
// Register, and Logout. Consumers read the current user through Current and
// may subscribe to transitions.
type Session struct {
	account domain.AccountClient
	repo    domain.SessionRepository
	logger  *slog.Logger

	mu          sync.RWMutex
	user        *domain.User
	subscribers []func()
}

// NewSession builds the session store and rehydrates it from the
// repository. A missing entry leaves it anonymous; an unreadable entry is
// treated as absent and discarded, never surfaced as an error.
func NewSession(account domain.AccountClient, repo domain.SessionRepository, logger *slog.Logger) *Session {
	s := &Session{account: account, repo: repo, logger: logger}

	user, err := repo.Load()
	switch {
	case err == nil:
		s.user = user
	case errors.Is(err, domain.ErrNoSession):
	default:
		logger.Warn("discarding unreadable session entry", "err", err)
		if err := repo.Clear(); err != nil {
			logger.Warn("failed to clear session entry", "err", err)
		}
	}
	return s
}

// Current returns the authenticated user, or nil when anonymous.
func (s *Session) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	return s.Current() != nil
}

// Subscribe registers fn to run after every state transition.
func (s *Session) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Session) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// Login authenticates against the service. A failed login leaves the
// session anonymous and writes nothing to the repository.
func (s *Session) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}
	user, err := s.account.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	s.establish(user)
	return user, nil
}

// Register creates an account and signs the new user in.
func (s *Session) Register(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}
	user, err := s.account.Register(ctx, creds)
	if err != nil {
		return nil, err
	}
	s.establish(user)
	return user, nil
}

// Logout drops the current user and removes the persisted entry.
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	if err := s.repo.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted session", "err", err)
	}
	s.notify()
}

func (s *Session) establish(user *domain.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	if err := s.repo.Save(user); err != nil {
		s.logger.Warn("failed to persist session", "err", err)
	}
	s.notify()
}

func validateCredentials(creds domain.Credentials) error {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	return nil
}
