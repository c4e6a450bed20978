package domain

import "context"

// Collection groups files under a name. Membership is a flat list of file
// references; updates send the full replacement id list, never a delta.
type Collection struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	UserID int    `json:"user_id"`
	Files  []File `json:"files"`
}

// CollectionCreate is the payload for creating a collection.
type CollectionCreate struct {
	Name    string `json:"name"`
	UserID  int    `json:"user_id"`
	FileIDs []int  `json:"file_ids"`
}

// CollectionUpdate replaces a collection's name and complete membership.
type CollectionUpdate struct {
	Name    string `json:"name"`
	FileIDs []int  `json:"file_ids"`
}

// CollectionClient is the typed facade over the collections resource.
type CollectionClient interface {
	List(ctx context.Context) ([]Collection, error)
	Create(ctx context.Context, in CollectionCreate) (*Collection, error)
	Update(ctx context.Context, id int, in CollectionUpdate) (*Collection, error)
	Delete(ctx context.Context, id int) error
}
