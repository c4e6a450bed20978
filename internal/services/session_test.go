package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"datahub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeAccountClient implements domain.AccountClient for tests.
type fakeAccountClient struct {
	user *domain.User
	err  error
}

func (f *fakeAccountClient) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAccountClient) Register(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

// fakeSessionRepo implements domain.SessionRepository for tests.
type fakeSessionRepo struct {
	stored     *domain.User
	loadErr    error
	saveCalls  int
	clearCalls int
}

func (f *fakeSessionRepo) Save(user *domain.User) error {
	f.saveCalls++
	f.stored = user
	return nil
}

func (f *fakeSessionRepo) Load() (*domain.User, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.stored == nil {
		return nil, domain.ErrNoSession
	}
	return f.stored, nil
}

func (f *fakeSessionRepo) Clear() error {
	f.clearCalls++
	f.stored = nil
	return nil
}

func TestSession_RehydratesStoredUser(t *testing.T) {
	repo := &fakeSessionRepo{stored: &domain.User{ID: 1, Username: "ana"}}

	s := NewSession(&fakeAccountClient{}, repo, testLogger())

	require.True(t, s.Authenticated())
	assert.Equal(t, "ana", s.Current().Username)
}

func TestSession_StartsAnonymousWithoutEntry(t *testing.T) {
	s := NewSession(&fakeAccountClient{}, &fakeSessionRepo{}, testLogger())
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Current())
}

func TestSession_CorruptEntryTreatedAsAbsent(t *testing.T) {
	repo := &fakeSessionRepo{loadErr: errors.New("decode session: bad json")}

	s := NewSession(&fakeAccountClient{}, repo, testLogger())

	assert.False(t, s.Authenticated())
	assert.Equal(t, 1, repo.clearCalls)
}

func TestSession_LoginPersistsAndNotifies(t *testing.T) {
	repo := &fakeSessionRepo{}
	account := &fakeAccountClient{user: &domain.User{ID: 2, Username: "bo"}}
	s := NewSession(account, repo, testLogger())

	notified := 0
	s.Subscribe(func() { notified++ })

	user, err := s.Login(context.Background(), domain.Credentials{Username: "bo", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 2, user.ID)
	assert.True(t, s.Authenticated())
	assert.Equal(t, user, repo.stored)
	assert.Equal(t, 1, repo.saveCalls)
	assert.Equal(t, 1, notified)
}

func TestSession_FailedLoginLeavesAnonymousAndWritesNothing(t *testing.T) {
	repo := &fakeSessionRepo{}
	account := &fakeAccountClient{err: &domain.APIError{Status: 401, Message: "invalid credentials"}}
	s := NewSession(account, repo, testLogger())

	_, err := s.Login(context.Background(), domain.Credentials{Username: "bo", Password: "wrong"})
	require.Error(t, err)
	assert.False(t, s.Authenticated())
	assert.Zero(t, repo.saveCalls)
}

func TestSession_ValidatesCredentialsBeforeCalling(t *testing.T) {
	account := &fakeAccountClient{user: &domain.User{ID: 1}}
	s := NewSession(account, &fakeSessionRepo{}, testLogger())

	_, err := s.Login(context.Background(), domain.Credentials{Username: "   ", Password: "pw"})
	require.Error(t, err)

	_, err = s.Register(context.Background(), domain.Credentials{Username: "bo", Password: ""})
	require.Error(t, err)
	assert.False(t, s.Authenticated())
}

func TestSession_RegisterSignsIn(t *testing.T) {
	repo := &fakeSessionRepo{}
	account := &fakeAccountClient{user: &domain.User{ID: 5, Username: "cy"}}
	s := NewSession(account, repo, testLogger())

	user, err := s.Register(context.Background(), domain.Credentials{Username: "cy", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 5, user.ID)
	assert.Equal(t, 1, repo.saveCalls)
}

func TestSession_LogoutClearsStateAndStore(t *testing.T) {
	repo := &fakeSessionRepo{stored: &domain.User{ID: 1, Username: "ana"}}
	s := NewSession(&fakeAccountClient{}, repo, testLogger())
	require.True(t, s.Authenticated())

	notified := 0
	s.Subscribe(func() { notified++ })

	s.Logout()

	assert.False(t, s.Authenticated())
	assert.Nil(t, repo.stored)
	assert.Equal(t, 1, repo.clearCalls)
	assert.Equal(t, 1, notified)
}
