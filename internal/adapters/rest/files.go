package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"datahub/internal/domain"
)

// FileClient calls the files resource.
type FileClient struct {
	c *Client
}

// NewFileClient returns a FileClient using the given transport.
func NewFileClient(c *Client) domain.FileClient {
	return &FileClient{c: c}
}

func (f *FileClient) List(ctx context.Context) ([]domain.File, error) {
	var files []domain.File
	if err := f.c.get(ctx, "/files", &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (f *FileClient) Get(ctx context.Context, id int) (*domain.File, error) {
	var file domain.File
	if err := f.c.get(ctx, fmt.Sprintf("/files/%d", id), &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// Create uploads a new file as multipart form data. The form carries
// user_id, description, tags (comma-separated), filename, and the binary
// file part when Content is set.
func (f *FileClient) Create(ctx context.Context, upload domain.FileUpload) (*domain.File, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if err := writeUploadForm(w, upload); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	raw, err := f.c.Send(ctx, http.MethodPost, "/files", body, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var file domain.File
	if err := decode(raw, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func writeUploadForm(w *multipart.Writer, upload domain.FileUpload) error {
	fields := map[string]string{
		"user_id":     strconv.Itoa(upload.UserID),
		"description": upload.Description,
		"tags":        strings.Join(upload.Tags, ", "),
		"filename":    upload.Filename,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}
	if upload.Content != nil {
		part, err := w.CreateFormFile("file", upload.Filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, upload.Content); err != nil {
			return err
		}
	}
	return w.Close()
}

func (f *FileClient) Update(ctx context.Context, id int, update domain.FileUpdate) (*domain.File, error) {
	var file domain.File
	if err := f.c.patchJSON(ctx, fmt.Sprintf("/files/%d", id), update, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (f *FileClient) Delete(ctx context.Context, id int) error {
	return f.c.delete(ctx, fmt.Sprintf("/files/%d", id))
}

// AddTag attaches a tag by name, creating the tag server-side if needed.
// The response body is not interpreted; callers reload the list to pick up
// generated tag ids.
func (f *FileClient) AddTag(ctx context.Context, id int, name string) error {
	payload := map[string]string{"name": name}
	return f.c.postJSON(ctx, fmt.Sprintf("/files/%d/tags", id), payload, nil)
}
