package services

import (
	"context"
	"sync"

	"datahub/internal/domain"
)

// Field names used by the editors.
const (
	FieldFilename    = "filename"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldName        = "name"
	FieldFileIDs     = "file_ids"
)

// EditBuffer stages in-place edits for at most one list item at a time.
// Beginning an edit on another item discards whatever was staged before;
// saving or cancelling clears the slot entirely. A commit runs off the
// event loop while the render path keeps reading Target, so access is
// guarded with a mutex.
type EditBuffer struct {
	mu       sync.RWMutex
	targetID int
	active   bool
	fields   map[string]string
}

// Begin points the buffer at the item with the given id and seeds its
// fields, replacing any prior uncommitted edit.
func (b *EditBuffer) Begin(id int, fields map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.targetID = id
	b.active = true
	b.fields = make(map[string]string, len(fields))
	for k, v := range fields {
		b.fields[k] = v
	}
}

// Target returns the id under edit and whether the buffer is active.
func (b *EditBuffer) Target() (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.targetID, b.active
}

// Field returns the staged value for name, or "" when unset.
func (b *EditBuffer) Field(name string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fields[name]
}

// Set shallow-merges one field into the buffer. No validation happens at
// this layer.
func (b *EditBuffer) Set(name, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return
	}
	b.fields[name] = value
}

// Clear empties the slot, discarding any staged input.
func (b *EditBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.targetID = 0
	b.active = false
	b.fields = nil
}

// FileEditor drives in-place editing of one file at a time, committing
// staged fields through the file client and folding the server's record
// back into the syncer.
type FileEditor struct {
	client domain.FileClient
	syncer *ListSyncer[domain.File]
	buf    EditBuffer
}

// NewFileEditor returns an editor bound to the given client and syncer.
func NewFileEditor(client domain.FileClient, syncer *ListSyncer[domain.File]) *FileEditor {
	return &FileEditor{client: client, syncer: syncer}
}

// Begin stages f for editing, projecting its editable attributes into flat
// string fields (tags become one comma-joined string).
func (e *FileEditor) Begin(f domain.File) {
	names := make([]string, len(f.Tags))
	for i, t := range f.Tags {
		names[i] = t.Name
	}
	e.buf.Begin(f.ID, map[string]string{
		FieldFilename:    f.Filename,
		FieldDescription: f.Description,
		FieldTags:        JoinTags(names),
	})
}

// Target returns the id under edit and whether an edit is active.
func (e *FileEditor) Target() (int, bool) { return e.buf.Target() }

// Field returns the staged value for name.
func (e *FileEditor) Field(name string) string { return e.buf.Field(name) }

// Set stages one field value.
func (e *FileEditor) Set(name, value string) { e.buf.Set(name, value) }

// Cancel discards the staged edit unconditionally.
func (e *FileEditor) Cancel() { e.buf.Clear() }

// Commit normalizes the staged fields, sends the update, and on success
// replaces the file in the syncer and clears the buffer. On failure the
// buffer is left intact so the edit can be retried or cancelled.
func (e *FileEditor) Commit(ctx context.Context) error {
	id, ok := e.buf.Target()
	if !ok {
		return nil
	}
	update := domain.FileUpdate{
		Filename:    e.buf.Field(FieldFilename),
		Description: e.buf.Field(FieldDescription),
		Tags:        SplitTags(e.buf.Field(FieldTags)),
	}
	updated, err := e.client.Update(ctx, id, update)
	if err != nil {
		return err
	}
	e.syncer.ApplyUpdate(id, *updated)
	e.buf.Clear()
	return nil
}

// CollectionEditor drives in-place editing of one collection at a time.
// Membership is always sent as the full replacement id list computed from
// the staged file_ids field, never as a delta against the prior state.
type CollectionEditor struct {
	client domain.CollectionClient
	syncer *ListSyncer[domain.Collection]
	buf    EditBuffer
}

// NewCollectionEditor returns an editor bound to the given client and syncer.
func NewCollectionEditor(client domain.CollectionClient, syncer *ListSyncer[domain.Collection]) *CollectionEditor {
	return &CollectionEditor{client: client, syncer: syncer}
}

// Begin stages c for editing, denormalizing its member file ids into one
// comma-joined string.
func (e *CollectionEditor) Begin(c domain.Collection) {
	ids := make([]int, len(c.Files))
	for i, f := range c.Files {
		ids[i] = f.ID
	}
	e.buf.Begin(c.ID, map[string]string{
		FieldName:    c.Name,
		FieldFileIDs: JoinIDs(ids),
	})
}

// Target returns the id under edit and whether an edit is active.
func (e *CollectionEditor) Target() (int, bool) { return e.buf.Target() }

// Field returns the staged value for name.
func (e *CollectionEditor) Field(name string) string { return e.buf.Field(name) }

// Set stages one field value.
func (e *CollectionEditor) Set(name, value string) { e.buf.Set(name, value) }

// Cancel discards the staged edit unconditionally.
func (e *CollectionEditor) Cancel() { e.buf.Clear() }

// Commit parses the staged id list (dropping non-numeric segments), sends
// the full-replacement update, and on success replaces the collection in
// the syncer and clears the buffer. On failure the buffer is left intact.
func (e *CollectionEditor) Commit(ctx context.Context) error {
	id, ok := e.buf.Target()
	if !ok {
		return nil
	}
	update := domain.CollectionUpdate{
		Name:    e.buf.Field(FieldName),
		FileIDs: ParseIDList(e.buf.Field(FieldFileIDs)),
	}
	updated, err := e.client.Update(ctx, id, update)
	if err != nil {
		return err
	}
	e.syncer.ApplyUpdate(id, *updated)
	e.buf.Clear()
	return nil
}
