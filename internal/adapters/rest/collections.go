package rest

import (
	"context"
	"fmt"

	"datahub/internal/domain"
)

// CollectionClient calls the collections resource.
type CollectionClient struct {
	c *Client
}

// NewCollectionClient returns a CollectionClient using the given transport.
func NewCollectionClient(c *Client) domain.CollectionClient {
	return &CollectionClient{c: c}
}

func (cc *CollectionClient) List(ctx context.Context) ([]domain.Collection, error) {
	var collections []domain.Collection
	if err := cc.c.get(ctx, "/collections", &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (cc *CollectionClient) Create(ctx context.Context, in domain.CollectionCreate) (*domain.Collection, error) {
	if in.FileIDs == nil {
		in.FileIDs = []int{}
	}
	var col domain.Collection
	if err := cc.c.postJSON(ctx, "/collections", in, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

func (cc *CollectionClient) Update(ctx context.Context, id int, in domain.CollectionUpdate) (*domain.Collection, error) {
	if in.FileIDs == nil {
		in.FileIDs = []int{}
	}
	var col domain.Collection
	if err := cc.c.patchJSON(ctx, fmt.Sprintf("/collections/%d", id), in, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

func (cc *CollectionClient) Delete(ctx context.Context, id int) error {
	return cc.c.delete(ctx, fmt.Sprintf("/collections/%d", id))
}
