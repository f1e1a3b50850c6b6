package users

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.New("user not found")

// Storage is the main interface for the user storage layer.
type Storage interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}

// LocalStorage provides an in-memory implementation for storing users.
type LocalStorage struct {
	mu     sync.RWMutex
	m      map[int64]User
	nextID int64
}

// NewLocalStorage instantiates an empty LocalStorage for users.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{m: map[int64]User{}}
}

// Create stores a new user. Emails are normalized to lower case, matching the
// durable storage.
func (l *LocalStorage) Create(_ context.Context, user *User) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	user.ID = l.nextID
	user.Email = strings.ToLower(user.Email)
	l.m[user.ID] = *user
	return nil
}

func (l *LocalStorage) GetByID(_ context.Context, id int64) (*User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	u, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// GetByEmail retrieves a user by email, used by the login flow. The match is
// case-insensitive.
func (l *LocalStorage) GetByEmail(_ context.Context, email string) (*User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range l.m {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (l *LocalStorage) GetAll(_ context.Context) ([]User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]User, 0, len(l.m))
	for _, u := range l.m {
		out = append(out, u)
	}
	return out, nil
}

func (l *LocalStorage) Update(_ context.Context, user *User) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[user.ID]; !ok {
		return ErrNotFound
	}
	user.Email = strings.ToLower(user.Email)
	l.m[user.ID] = *user
	return nil
}

func (l *LocalStorage) Delete(_ context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[id]; !ok {
		return ErrNotFound
	}
	delete(l.m, id)
	return nil
}
