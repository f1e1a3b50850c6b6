package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

// PostgresStorage implements Storage backed by a users table.
type PostgresStorage struct {
	db *sqlx.DB
}

// NewPostgresStorage creates a PostgresStorage on top of the given connection pool.
func NewPostgresStorage(db *sqlx.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Create(ctx context.Context, user *User) error {
	return s.db.QueryRowxContext(ctx,
		`INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id`,
		user.Name, strings.ToLower(user.Email), user.Password).Scan(&user.ID)
}

func (s *PostgresStorage) GetByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, `SELECT id, name, email, password FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStorage) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, `SELECT id, name, email, password FROM users WHERE email = $1`, strings.ToLower(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStorage) GetAll(ctx context.Context) ([]User, error) {
	out := []User{}
	err := s.db.SelectContext(ctx, &out, `SELECT id, name, email, password FROM users ORDER BY id`)
	return out, err
}

func (s *PostgresStorage) Update(ctx context.Context, user *User) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = $1, email = $2, password = $3 WHERE id = $4`,
		user.Name, strings.ToLower(user.Email), user.Password, user.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (s *PostgresStorage) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
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
