package services

import (
	"context"
	"testing"

	"datahub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFileClient implements domain.FileClient for editor tests.
type fakeFileClient struct {
	files      []domain.File
	updated    *domain.File
	updateErr  error
	lastID     int
	lastUpdate domain.FileUpdate
}

func (f *fakeFileClient) List(ctx context.Context) ([]domain.File, error) { return f.files, nil }
func (f *fakeFileClient) Get(ctx context.Context, id int) (*domain.File, error) {
	return nil, nil
}
func (f *fakeFileClient) Create(ctx context.Context, upload domain.FileUpload) (*domain.File, error) {
	return nil, nil
}
func (f *fakeFileClient) Update(ctx context.Context, id int, update domain.FileUpdate) (*domain.File, error) {
	f.lastID = id
	f.lastUpdate = update
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}
func (f *fakeFileClient) Delete(ctx context.Context, id int) error          { return nil }
func (f *fakeFileClient) AddTag(ctx context.Context, id int, name string) error { return nil }

// fakeCollectionClient implements domain.CollectionClient for editor tests.
type fakeCollectionClient struct {
	collections []domain.Collection
	updated     *domain.Collection
	updateErr   error
	lastID      int
	lastUpdate  domain.CollectionUpdate
}

func (f *fakeCollectionClient) List(ctx context.Context) ([]domain.Collection, error) {
	return f.collections, nil
}
func (f *fakeCollectionClient) Create(ctx context.Context, in domain.CollectionCreate) (*domain.Collection, error) {
	return nil, nil
}
func (f *fakeCollectionClient) Update(ctx context.Context, id int, in domain.CollectionUpdate) (*domain.Collection, error) {
	f.lastID = id
	f.lastUpdate = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}
func (f *fakeCollectionClient) Delete(ctx context.Context, id int) error { return nil }

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"messy input", " finance ,  q3,,  ", []string{"finance", "q3"}},
		{"single", "finance", []string{"finance"}},
		{"empty", "", []string{}},
		{"only separators", " , ,", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.input))
		})
	}
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"spaced", "2, 4", []int{2, 4}},
		{"non-numeric dropped", "1, x, 3", []int{1, 3}},
		{"empty", "", []int{}},
		{"trailing comma", "7,", []int{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIDList(tt.input))
		})
	}
}

func TestEditBuffer_SingleSlot(t *testing.T) {
	var b EditBuffer
	b.Begin(1, map[string]string{"filename": "a.pdf"})
	b.Set("filename", "a-edited.pdf")

	b.Begin(2, map[string]string{"filename": "b.pdf"})

	id, ok := b.Target()
	require.True(t, ok)
	assert.Equal(t, 2, id)
	assert.Equal(t, "b.pdf", b.Field("filename"), "prior unsaved edits are discarded")
}

func TestEditBuffer_ClearLeavesNoResidue(t *testing.T) {
	var b EditBuffer
	b.Begin(1, map[string]string{"filename": "a.pdf"})
	b.Clear()

	_, ok := b.Target()
	assert.False(t, ok)
	assert.Empty(t, b.Field("filename"))

	// Set after clear is a no-op.
	b.Set("filename", "ghost")
	assert.Empty(t, b.Field("filename"))
}

func TestFileEditor_BeginProjectsFields(t *testing.T) {
	e := NewFileEditor(&fakeFileClient{}, NewListSyncer(func(ctx context.Context) ([]domain.File, error) {
		return nil, nil
	}, fileID))

	e.Begin(domain.File{
		ID:          4,
		Filename:    "report.pdf",
		Description: "q3 numbers",
		Tags:        []domain.Tag{{ID: 1, Name: "finance"}, {ID: 2, Name: "q3"}},
	})

	id, ok := e.Target()
	require.True(t, ok)
	assert.Equal(t, 4, id)
	assert.Equal(t, "report.pdf", e.Field(FieldFilename))
	assert.Equal(t, "q3 numbers", e.Field(FieldDescription))
	assert.Equal(t, "finance, q3", e.Field(FieldTags))
}

func TestFileEditor_CommitUpdatesListInPlace(t *testing.T) {
	client := &fakeFileClient{
		files: []domain.File{{ID: 1, Filename: "a"}, {ID: 2, Filename: "b"}},
	}
	syncer := NewListSyncer(client.List, fileID)
	require.NoError(t, syncer.Load(context.Background()))

	client.updated = &domain.File{ID: 2, Filename: "b2", Tags: []domain.Tag{{ID: 9, Name: "x"}}}
	e := NewFileEditor(client, syncer)
	e.Begin(syncer.Items()[1])
	e.Set(FieldFilename, "b2")
	e.Set(FieldTags, " x , ")

	require.NoError(t, e.Commit(context.Background()))

	assert.Equal(t, 2, client.lastID)
	assert.Equal(t, []string{"x"}, client.lastUpdate.Tags)

	items := syncer.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Filename)
	assert.Equal(t, "b2", items[1].Filename)

	_, ok := e.Target()
	assert.False(t, ok, "commit clears the buffer")
}

func TestFileEditor_FailedCommitKeepsBuffer(t *testing.T) {
	client := &fakeFileClient{
		files:     []domain.File{{ID: 1, Filename: "a"}},
		updateErr: &domain.APIError{Status: 500, Message: "boom"},
	}
	syncer := NewListSyncer(client.List, fileID)
	require.NoError(t, syncer.Load(context.Background()))

	e := NewFileEditor(client, syncer)
	e.Begin(syncer.Items()[0])
	e.Set(FieldDescription, "still here")

	require.Error(t, e.Commit(context.Background()))

	id, ok := e.Target()
	require.True(t, ok, "failed commit must not cancel the edit")
	assert.Equal(t, 1, id)
	assert.Equal(t, "still here", e.Field(FieldDescription))
	assert.Equal(t, "a", syncer.Items()[0].Filename, "list untouched on failure")
}

func TestFileEditor_ReadsSafeDuringConcurrentCommit(t *testing.T) {
	client := &fakeFileClient{
		files:   []domain.File{{ID: 1, Filename: "a"}},
		updated: &domain.File{ID: 1, Filename: "a2"},
	}
	syncer := NewListSyncer(client.List, fileID)
	require.NoError(t, syncer.Load(context.Background()))
	e := NewFileEditor(client, syncer)

	// Commit (and its Clear) runs off the event loop while the render
	// path keeps polling Target and Field; the race detector guards
	// this test.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			e.Begin(domain.File{ID: 1, Filename: "a"})
			_ = e.Commit(context.Background())
		}
	}()
	for i := 0; i < 500; i++ {
		_, _ = e.Target()
		_ = e.Field(FieldFilename)
	}
	<-done

	_, ok := e.Target()
	assert.False(t, ok, "last commit leaves the buffer clear")
}

func TestCollectionEditor_MembershipIsFullReplacement(t *testing.T) {
	client := &fakeCollectionClient{
		collections: []domain.Collection{{
			ID:   1,
			Name: "docs",
			Files: []domain.File{
				{ID: 1}, {ID: 2}, {ID: 3},
			},
		}},
	}
	syncer := NewListSyncer(client.List, func(c domain.Collection) int { return c.ID })
	require.NoError(t, syncer.Load(context.Background()))

	client.updated = &domain.Collection{ID: 1, Name: "docs", Files: []domain.File{{ID: 2}, {ID: 4}}}
	e := NewCollectionEditor(client, syncer)
	e.Begin(syncer.Items()[0])
	assert.Equal(t, "1, 2, 3", e.Field(FieldFileIDs))

	e.Set(FieldFileIDs, "2, 4")
	require.NoError(t, e.Commit(context.Background()))

	assert.Equal(t, 1, client.lastID)
	assert.Equal(t, []int{2, 4}, client.lastUpdate.FileIDs, "no merge with prior ids")
}

func TestCollectionEditor_CancelDiscards(t *testing.T) {
	e := NewCollectionEditor(&fakeCollectionClient{}, NewListSyncer(func(ctx context.Context) ([]domain.Collection, error) {
		return nil, nil
	}, func(c domain.Collection) int { return c.ID }))

	e.Begin(domain.Collection{ID: 3, Name: "docs"})
	e.Set(FieldName, "renamed")
	e.Cancel()

	_, ok := e.Target()
	assert.False(t, ok)
	assert.Empty(t, e.Field(FieldName))
}
