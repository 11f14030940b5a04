package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash, role, phone string) (*User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, role, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, role, phone, created_at
	`

	var u User
	err := r.db.GetContext(ctx, &u, query, name, email, passwordHash, role, phone)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, role, phone, created_at
		FROM users
		WHERE email = $1
	`

	var u User
	err := r.db.GetContext(ctx, &u, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, role, phone, created_at
		FROM users
		WHERE id = $1
	`

	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}
