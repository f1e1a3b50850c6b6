package suppliers

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// PostgresStorage implements Storage backed by a suppliers table.
type PostgresStorage struct {
	db *sqlx.DB
}

// NewPostgresStorage creates a PostgresStorage on top of the given connection pool.
func NewPostgresStorage(db *sqlx.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Create(ctx context.Context, supplier *Supplier) error {
	return s.db.QueryRowxContext(ctx,
		`INSERT INTO suppliers (name, cnpj, email) VALUES ($1, $2, $3) RETURNING id`,
		supplier.Name, supplier.CNPJ, supplier.Email).Scan(&supplier.ID)
}

func (s *PostgresStorage) GetByID(ctx context.Context, id int64) (*Supplier, error) {
	var sup Supplier
	err := s.db.GetContext(ctx, &sup, `SELECT id, name, cnpj, email FROM suppliers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sup, nil
}

func (s *PostgresStorage) GetAll(ctx context.Context) ([]Supplier, error) {
	out := []Supplier{}
	err := s.db.SelectContext(ctx, &out, `SELECT id, name, cnpj, email FROM suppliers ORDER BY id`)
	return out, err
}

func (s *PostgresStorage) Update(ctx context.Context, supplier *Supplier) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE suppliers SET name = $1, cnpj = $2, email = $3 WHERE id = $4`,
		supplier.Name, supplier.CNPJ, supplier.Email, supplier.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (s *PostgresStorage) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
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
