package rest

import (
	"context"

	"datahub/internal/domain"
)

// AccountClient calls the auth endpoints.
type AccountClient struct {
	c *Client
}

// NewAccountClient returns an AccountClient using the given transport.
func NewAccountClient(c *Client) domain.AccountClient {
	return &AccountClient{c: c}
}

func (a *AccountClient) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	var user domain.User
	if err := a.c.postJSON(ctx, "/login", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *AccountClient) Register(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	var user domain.User
	if err := a.c.postJSON(ctx, "/register", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
