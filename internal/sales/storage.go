package sales

import (
	"context"
	"sync"
)

// Ledger is the main interface for the sales storage layer. It is
// append-biased: committed sales are never updated or removed through it.
type Ledger interface {
	// Append persists the sale and assigns it a fresh ID.
	Append(ctx context.Context, sale *Sale) error
	// ByProduct returns every sale referencing the given product ID.
	ByProduct(ctx context.Context, productID int64) ([]Sale, error)
	// ByClient returns every sale referencing the given client ID.
	ByClient(ctx context.Context, clientID int64) ([]Sale, error)
}

// LocalLedger provides an in-memory implementation of the sales ledger.
// It is safe for concurrent use.
type LocalLedger struct {
	mu     sync.RWMutex
	sales  []Sale
	nextID int64
}

// NewLocalLedger instantiates an empty LocalLedger.
func NewLocalLedger() *LocalLedger {
	return &LocalLedger{}
}

// Append stores the sale under the next free ID.
func (l *LocalLedger) Append(_ context.Context, sale *Sale) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	sale.ID = l.nextID
	l.sales = append(l.sales, *sale)
	return nil
}

// ByProduct returns the sales for one product, in append order.
func (l *LocalLedger) ByProduct(_ context.Context, productID int64) ([]Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := []Sale{}
	for _, s := range l.sales {
		if s.ProductID == productID {
			out = append(out, s)
		}
	}
	return out, nil
}

// ByClient returns the sales for one client, in append order.
func (l *LocalLedger) ByClient(_ context.Context, clientID int64) ([]Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := []Sale{}
	for _, s := range l.sales {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out, nil
}

// Len reports how many sales have been committed. Used by tests to assert the
// ledger is untouched after a rejected sale.
func (l *LocalLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sales)
}
