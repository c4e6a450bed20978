package rest

import (
	"context"

	"datahub/internal/domain"
)

// UserClient calls the users resource.
type UserClient struct {
	c *Client
}

// NewUserClient returns a UserClient using the given transport.
func NewUserClient(c *Client) domain.UserClient {
	return &UserClient{c: c}
}

func (u *UserClient) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := u.c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *UserClient) Create(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	var user domain.User
	if err := u.c.postJSON(ctx, "/users", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
