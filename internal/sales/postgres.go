package sales

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// PostgresLedger implements Ledger backed by a sales table.
type PostgresLedger struct {
	db *sqlx.DB
}

// NewPostgresLedger creates a PostgresLedger on top of the given connection pool.
func NewPostgresLedger(db *sqlx.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Append inserts the sale; the ID comes from the table's sequence, so the
// database write path serializes ID assignment across concurrent callers.
func (l *PostgresLedger) Append(ctx context.Context, sale *Sale) error {
	return l.db.QueryRowxContext(ctx,
		`INSERT INTO sales (product_id, client_id, quantity, unit_price, sold_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		sale.ProductID, sale.ClientID, sale.Quantity, sale.UnitPrice, sale.SoldAt).Scan(&sale.ID)
}

func (l *PostgresLedger) ByProduct(ctx context.Context, productID int64) ([]Sale, error) {
	out := []Sale{}
	err := l.db.SelectContext(ctx, &out,
		`SELECT id, product_id, client_id, quantity, unit_price, sold_at
		 FROM sales WHERE product_id = $1 ORDER BY id`, productID)
	return out, err
}

func (l *PostgresLedger) ByClient(ctx context.Context, clientID int64) ([]Sale, error) {
	out := []Sale{}
	err := l.db.SelectContext(ctx, &out,
		`SELECT id, product_id, client_id, quantity, unit_price, sold_at
		 FROM sales WHERE client_id = $1 ORDER BY id`, clientID)
	return out, err
}
