package rest

import (
	"context"

	"datahub/internal/domain"
)

// TagClient calls the tags resource.
type TagClient struct {
	c *Client
}

// NewTagClient returns a TagClient using the given transport.
func NewTagClient(c *Client) domain.TagClient {
	return &TagClient{c: c}
}

func (t *TagClient) List(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := t.c.get(ctx, "/tags", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (t *TagClient) Create(ctx context.Context, name string) (*domain.Tag, error) {
	payload := map[string]string{"name": name}
	var tag domain.Tag
	if err := t.c.postJSON(ctx, "/tags", payload, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}
