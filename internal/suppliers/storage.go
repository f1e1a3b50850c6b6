package suppliers

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a supplier with the given ID does not exist.
var ErrNotFound = errors.New("supplier not found")

// Storage is the main interface for the supplier storage layer.
type Storage interface {
	Create(ctx context.Context, supplier *Supplier) error
	GetByID(ctx context.Context, id int64) (*Supplier, error)
	GetAll(ctx context.Context) ([]Supplier, error)
	Update(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id int64) error
}

// LocalStorage provides an in-memory implementation for storing suppliers.
type LocalStorage struct {
	mu     sync.RWMutex
	m      map[int64]Supplier
	nextID int64
}

// NewLocalStorage instantiates an empty LocalStorage for suppliers.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{m: map[int64]Supplier{}}
}

func (l *LocalStorage) Create(_ context.Context, supplier *Supplier) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	supplier.ID = l.nextID
	l.m[supplier.ID] = *supplier
	return nil
}

func (l *LocalStorage) GetByID(_ context.Context, id int64) (*Supplier, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (l *LocalStorage) GetAll(_ context.Context) ([]Supplier, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Supplier, 0, len(l.m))
	for _, s := range l.m {
		out = append(out, s)
	}
	return out, nil
}

func (l *LocalStorage) Update(_ context.Context, supplier *Supplier) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[supplier.ID]; !ok {
		return ErrNotFound
	}
	l.m[supplier.ID] = *supplier
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
