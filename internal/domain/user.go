package domain

import "context"

// User represents a registered Data-Hub user. The raw password is never
// retained after authentication.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Credentials carry a username/password pair for login and registration.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccountClient authenticates against the remote service.
type AccountClient interface {
	Login(ctx context.Context, creds Credentials) (*User, error)
	Register(ctx context.Context, creds Credentials) (*User, error)
}

// UserClient lists and creates users.
type UserClient interface {
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, creds Credentials) (*User, error)
}

// SessionRepository persists the authenticated user between runs.
// Load returns ErrNoSession when nothing is stored; any other error means
// the stored entry exists but could not be read back.
type SessionRepository interface {
	Save(user *User) error
	Load() (*User, error)
	Clear() error
}
