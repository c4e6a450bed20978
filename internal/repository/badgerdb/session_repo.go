package badgerdb

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"datahub/internal/domain"
)

var sessionKey = []byte("session:user")

// SessionRepository stores the authenticated user in a local badger
// database so the session survives process restarts. Clearing the session
// deletes the key rather than writing an empty marker.
type SessionRepository struct {
	db *badger.DB
}

// Open opens (or creates) the badger database at dir and returns a
// SessionRepository on top of it.
func Open(dir string) (*SessionRepository, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return NewSessionRepository(db), nil
}

// NewSessionRepository wraps an already-open badger database.
func NewSessionRepository(db *badger.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Save(user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey, data)
	})
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Load() (*domain.User, error) {
	var data []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &user, nil
}

func (r *SessionRepository) Clear() error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Close() error {
	return r.db.Close()
}
