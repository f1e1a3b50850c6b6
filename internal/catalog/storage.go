package catalog

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a product with the given ID does not exist.
var ErrNotFound = errors.New("product not found")

// Storage is the main interface for the product catalog storage layer.
type Storage interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
}

// LocalStorage provides an in-memory implementation for storing products.
// It is safe for concurrent use.
type LocalStorage struct {
	mu     sync.RWMutex
	m      map[int64]Product
	nextID int64
}

// NewLocalStorage instantiates an empty LocalStorage for products.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{m: map[int64]Product{}}
}

// Create stores a new product, assigning it the next free ID.
func (l *LocalStorage) Create(_ context.Context, product *Product) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	product.ID = l.nextID
	l.m[product.ID] = *product
	return nil
}

// GetByID retrieves a product by ID. Returns ErrNotFound if it does not exist.
func (l *LocalStorage) GetByID(_ context.Context, id int64) (*Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// GetAll retrieves every product in the catalog.
func (l *LocalStorage) GetAll(_ context.Context) ([]Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	products := make([]Product, 0, len(l.m))
	for _, p := range l.m {
		products = append(products, p)
	}
	return products, nil
}

// Update replaces an existing product. Returns ErrNotFound if it does not exist.
func (l *LocalStorage) Update(_ context.Context, product *Product) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[product.ID]; !ok {
		return ErrNotFound
	}
	l.m[product.ID] = *product
	return nil
}

// Delete removes a product by ID. Returns ErrNotFound if it does not exist.
func (l *LocalStorage) Delete(_ context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[id]; !ok {
		return ErrNotFound
	}
	delete(l.m, id)
	return nil
}
