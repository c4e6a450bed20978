package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datahub/internal/domain"
	"datahub/internal/services"
)

type fakeAccountClient struct {
	user      *domain.User
	err       error
	loginCall int
}

func (f *fakeAccountClient) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	f.loginCall++
	return f.user, f.err
}

func (f *fakeAccountClient) Register(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	return f.user, f.err
}

type fakeSessionRepo struct {
	stored *domain.User
	saves  int
}

func (f *fakeSessionRepo) Save(user *domain.User) error {
	f.stored = user
	f.saves++
	return nil
}

func (f *fakeSessionRepo) Load() (*domain.User, error) {
	if f.stored == nil {
		return nil, domain.ErrNoSession
	}
	return f.stored, nil
}

func (f *fakeSessionRepo) Clear() error {
	f.stored = nil
	return nil
}

type fakeFileClient struct {
	files   []domain.File
	created *domain.FileUpload
	deleted []int
	err     error
}

func (f *fakeFileClient) List(ctx context.Context) ([]domain.File, error) {
	return f.files, f.err
}

func (f *fakeFileClient) Get(ctx context.Context, id int) (*domain.File, error) {
	for i := range f.files {
		if f.files[i].ID == id {
			return &f.files[i], nil
		}
	}
	return nil, &domain.APIError{Status: 404, Message: "File not found"}
}

func (f *fakeFileClient) Create(ctx context.Context, upload domain.FileUpload) (*domain.File, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &upload
	return &domain.File{ID: 99, Filename: upload.Filename, UserID: upload.UserID}, nil
}

func (f *fakeFileClient) Update(ctx context.Context, id int, update domain.FileUpdate) (*domain.File, error) {
	return &domain.File{ID: id, Filename: update.Filename, Description: update.Description}, f.err
}

func (f *fakeFileClient) Delete(ctx context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeFileClient) AddTag(ctx context.Context, id int, name string) error {
	return f.err
}

type fakeCollectionClient struct {
	collections []domain.Collection
	lastUpdate  *domain.CollectionUpdate
	err         error
}

func (f *fakeCollectionClient) List(ctx context.Context) ([]domain.Collection, error) {
	return f.collections, f.err
}

func (f *fakeCollectionClient) Create(ctx context.Context, in domain.CollectionCreate) (*domain.Collection, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Collection{ID: 7, Name: in.Name, UserID: in.UserID}, nil
}

func (f *fakeCollectionClient) Update(ctx context.Context, id int, in domain.CollectionUpdate) (*domain.Collection, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastUpdate = &in
	files := make([]domain.File, len(in.FileIDs))
	for i, fid := range in.FileIDs {
		files[i] = domain.File{ID: fid}
	}
	return &domain.Collection{ID: id, Name: in.Name, Files: files}, nil
}

func (f *fakeCollectionClient) Delete(ctx context.Context, id int) error {
	return f.err
}

type fakeTagClient struct {
	tags []domain.Tag
	err  error
}

func (f *fakeTagClient) List(ctx context.Context) ([]domain.Tag, error) {
	return f.tags, f.err
}

func (f *fakeTagClient) Create(ctx context.Context, name string) (*domain.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Tag{ID: len(f.tags) + 1, Name: name}, nil
}

type fakeUserClient struct {
	users []domain.User
}

func (f *fakeUserClient) List(ctx context.Context) ([]domain.User, error) {
	return f.users, nil
}

func (f *fakeUserClient) Create(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	return &domain.User{ID: 1, Username: creds.Username}, nil
}

type testEnv struct {
	account     *fakeAccountClient
	repo        *fakeSessionRepo
	files       *fakeFileClient
	collections *fakeCollectionClient
	tags        *fakeTagClient
	users       *fakeUserClient
	deps        *Deps
}

func newTestEnv() *testEnv {
	env := &testEnv{
		account:     &fakeAccountClient{},
		repo:        &fakeSessionRepo{},
		files:       &fakeFileClient{},
		collections: &fakeCollectionClient{},
		tags:        &fakeTagClient{},
		users:       &fakeUserClient{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.deps = &Deps{
		Session:     services.NewSession(env.account, env.repo, logger),
		Files:       env.files,
		Collections: env.collections,
		Tags:        env.tags,
		Users:       env.users,
		Logger:      logger,
	}
	return env
}

func execute(t *testing.T, deps *Deps, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(deps)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginPersistsSession(t *testing.T) {
	env := newTestEnv()
	env.account.user = &domain.User{ID: 4, Username: "ana"}

	out, err := execute(t, env.deps, "login", "ana", "secret")

	require.NoError(t, err)
	assert.Contains(t, out, "logged in as ana (id 4)")
	require.NotNil(t, env.repo.stored)
	assert.Equal(t, 4, env.repo.stored.ID)
}

func TestLoginFailureWritesNothing(t *testing.T) {
	env := newTestEnv()
	env.account.err = &domain.APIError{Status: 401, Message: "Invalid credentials"}

	_, err := execute(t, env.deps, "login", "ana", "wrong")

	require.Error(t, err)
	assert.Nil(t, env.repo.stored)
	assert.Nil(t, env.deps.Session.Current())
}

func TestLoginValidatesBeforeRequest(t *testing.T) {
	env := newTestEnv()

	_, err := execute(t, env.deps, "login", "ana", "")

	require.Error(t, err)
	assert.Zero(t, env.account.loginCall)
}

func TestWhoami(t *testing.T) {
	env := newTestEnv()
	out, err := execute(t, env.deps, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")

	env.repo.stored = &domain.User{ID: 2, Username: "bo"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.deps.Session = services.NewSession(env.account, env.repo, logger)

	out, err = execute(t, env.deps, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "bo (id 2)")
}

func TestLogoutClearsPersistedSession(t *testing.T) {
	env := newTestEnv()
	env.account.user = &domain.User{ID: 4, Username: "ana"}
	_, err := execute(t, env.deps, "login", "ana", "secret")
	require.NoError(t, err)

	out, err := execute(t, env.deps, "logout")

	require.NoError(t, err)
	assert.Contains(t, out, "logged out")
	assert.Nil(t, env.repo.stored)
	assert.Nil(t, env.deps.Session.Current())
}

func TestFilesList(t *testing.T) {
	env := newTestEnv()
	env.files.files = []domain.File{
		{ID: 1, Filename: "report.pdf", Description: "Q3", Tags: []domain.Tag{{ID: 1, Name: "finance"}}},
		{ID: 2, Filename: "notes.txt"},
	}

	out, err := execute(t, env.deps, "files", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "[finance]")
	assert.Contains(t, out, "notes.txt")
}

func TestFilesCreateDefaultsOwnerFromSession(t *testing.T) {
	env := newTestEnv()
	env.repo.stored = &domain.User{ID: 5, Username: "ana"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.deps.Session = services.NewSession(env.account, env.repo, logger)

	out, err := execute(t, env.deps, "files", "create",
		"--filename", "report.pdf", "--tags", "finance, q3")

	require.NoError(t, err)
	assert.Contains(t, out, "created file 99")
	require.NotNil(t, env.files.created)
	assert.Equal(t, 5, env.files.created.UserID)
	assert.Equal(t, []string{"finance", "q3"}, env.files.created.Tags)
}

func TestFilesCreateRequiresSessionOrUserFlag(t *testing.T) {
	env := newTestEnv()

	_, err := execute(t, env.deps, "files", "create", "--filename", "report.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no session")
	assert.Nil(t, env.files.created)
}

func TestFilesRm(t *testing.T) {
	env := newTestEnv()

	out, err := execute(t, env.deps, "files", "rm", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted file 3")
	assert.Equal(t, []int{3}, env.files.deleted)

	_, err = execute(t, env.deps, "files", "rm", "abc")
	require.Error(t, err)
}

func TestCollectionsSetKeepsUnchangedFields(t *testing.T) {
	env := newTestEnv()
	env.collections.collections = []domain.Collection{
		{ID: 3, Name: "Reports", Files: []domain.File{{ID: 2}, {ID: 4}}},
	}

	out, err := execute(t, env.deps, "collections", "set", "3", "--name", "Archive")

	require.NoError(t, err)
	assert.Contains(t, out, "updated collection 3")
	require.NotNil(t, env.collections.lastUpdate)
	assert.Equal(t, "Archive", env.collections.lastUpdate.Name)
	assert.Equal(t, []int{2, 4}, env.collections.lastUpdate.FileIDs)
}

func TestCollectionsSetReplacesMembership(t *testing.T) {
	env := newTestEnv()
	env.collections.collections = []domain.Collection{
		{ID: 3, Name: "Reports", Files: []domain.File{{ID: 2}, {ID: 4}}},
	}

	_, err := execute(t, env.deps, "collections", "set", "3", "--files", "1, x, 9")

	require.NoError(t, err)
	require.NotNil(t, env.collections.lastUpdate)
	assert.Equal(t, "Reports", env.collections.lastUpdate.Name)
	assert.Equal(t, []int{1, 9}, env.collections.lastUpdate.FileIDs)
}

func TestCollectionsSetUnknownID(t *testing.T) {
	env := newTestEnv()

	_, err := execute(t, env.deps, "collections", "set", "42", "--name", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTagsListAndCreate(t *testing.T) {
	env := newTestEnv()
	env.tags.tags = []domain.Tag{{ID: 1, Name: "finance"}}

	out, err := execute(t, env.deps, "tags", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "finance")

	out, err = execute(t, env.deps, "tags", "create", "  q3  ")
	require.NoError(t, err)
	assert.Contains(t, out, "created tag")
	assert.Contains(t, out, "q3")
}

func TestUsersList(t *testing.T) {
	env := newTestEnv()
	env.users.users = []domain.User{{ID: 1, Username: "ana"}, {ID: 2, Username: "bo"}}

	out, err := execute(t, env.deps, "users", "list")

	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("%d\t%s", 1, "ana"))
	assert.Contains(t, out, fmt.Sprintf("%d\t%s", 2, "bo"))
}
