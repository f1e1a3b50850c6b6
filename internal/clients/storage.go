package clients

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a client with the given ID does not exist.
var ErrNotFound = errors.New("client not found")

// Storage is the main interface for the client storage layer.
type Storage interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id int64) (*Client, error)
	GetAll(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id int64) error
}

// LocalStorage provides an in-memory implementation for storing clients.
// It is safe for concurrent use.
type LocalStorage struct {
	mu     sync.RWMutex
	m      map[int64]Client
	nextID int64
}

// NewLocalStorage instantiates an empty LocalStorage for clients.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{m: map[int64]Client{}}
}

func (l *LocalStorage) Create(_ context.Context, client *Client) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	client.ID = l.nextID
	l.m[client.ID] = *client
	return nil
}

// GetByID retrieves a client by ID. Returns ErrNotFound if it does not exist.
func (l *LocalStorage) GetByID(_ context.Context, id int64) (*Client, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (l *LocalStorage) GetAll(_ context.Context) ([]Client, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Client, 0, len(l.m))
	for _, c := range l.m {
		out = append(out, c)
	}
	return out, nil
}

func (l *LocalStorage) Update(_ context.Context, client *Client) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[client.ID]; !ok {
		return ErrNotFound
	}
	l.m[client.ID] = *client
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
