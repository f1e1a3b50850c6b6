package clients

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// PostgresStorage implements Storage backed by a clients table.
type PostgresStorage struct {
	db *sqlx.DB
}

// NewPostgresStorage creates a PostgresStorage on top of the given connection pool.
func NewPostgresStorage(db *sqlx.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Create(ctx context.Context, client *Client) error {
	return s.db.QueryRowxContext(ctx,
		`INSERT INTO clients (name, email) VALUES ($1, $2) RETURNING id`,
		client.Name, client.Email).Scan(&client.ID)
}

func (s *PostgresStorage) GetByID(ctx context.Context, id int64) (*Client, error) {
	var c Client
	err := s.db.GetContext(ctx, &c, `SELECT id, name, email FROM clients WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStorage) GetAll(ctx context.Context) ([]Client, error) {
	out := []Client{}
	err := s.db.SelectContext(ctx, &out, `SELECT id, name, email FROM clients ORDER BY id`)
	return out, err
}

func (s *PostgresStorage) Update(ctx context.Context, client *Client) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE clients SET name = $1, email = $2 WHERE id = $3`,
		client.Name, client.Email, client.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (s *PostgresStorage) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
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
