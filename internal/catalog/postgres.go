package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// PostgresStorage implements Storage backed by a products table.
type PostgresStorage struct {
	db *sqlx.DB
}

// NewPostgresStorage creates a PostgresStorage on top of the given connection pool.
func NewPostgresStorage(db *sqlx.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Create(ctx context.Context, product *Product) error {
	return s.db.QueryRowxContext(ctx,
		`INSERT INTO products (name, price, supplier) VALUES ($1, $2, $3) RETURNING id`,
		product.Name, product.Price, product.Supplier).Scan(&product.ID)
}

func (s *PostgresStorage) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := s.db.GetContext(ctx, &p, `SELECT id, name, price, supplier FROM products WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStorage) GetAll(ctx context.Context) ([]Product, error) {
	products := []Product{}
	err := s.db.SelectContext(ctx, &products, `SELECT id, name, price, supplier FROM products ORDER BY id`)
	return products, err
}

func (s *PostgresStorage) Update(ctx context.Context, product *Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = $1, price = $2, supplier = $3 WHERE id = $4`,
		product.Name, product.Price, product.Supplier, product.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (s *PostgresStorage) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
