package domain

import (
	"context"
	"io"
)

// Tag is a named label shared across files. Tags are created lazily by
// name when files are tagged.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// File represents an uploaded file and its metadata. Tags keep the order
// returned by the service.
type File struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	Description string `json:"description"`
	Tags        []Tag  `json:"tags"`
	UserID      int    `json:"user_id"`
}

// FileUpload is the multipart payload for creating a file. Content is
// optional; a metadata-only record carries just a filename.
type FileUpload struct {
	UserID      int
	Filename    string
	Description string
	Tags        []string
	Content     io.Reader
}

// FileUpdate carries the editable fields of a file. Tags replace the
// file's tag set by name.
type FileUpdate struct {
	Filename    string   `json:"filename"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// FileClient is the typed facade over the files resource.
type FileClient interface {
	List(ctx context.Context) ([]File, error)
	Get(ctx context.Context, id int) (*File, error)
	Create(ctx context.Context, upload FileUpload) (*File, error)
	Update(ctx context.Context, id int, update FileUpdate) (*File, error)
	Delete(ctx context.Context, id int) error
	AddTag(ctx context.Context, id int, name string) error
}

// TagClient is the typed facade over the tags resource.
type TagClient interface {
	List(ctx context.Context) ([]Tag, error)
	Create(ctx context.Context, name string) (*Tag, error)
}
