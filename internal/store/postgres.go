package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/accountd/internal/models"
)

// Postgres implements UserStore on the users table.
type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	if email == "" {
		return models.User{}, ErrEmailRequired
	}

	u := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}

	return u, nil
}

func (s *Postgres) FindByID(ctx context.Context, id string) (models.User, error) {
	var u models.User

	err := s.db.GetContext(ctx, &u, `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id=$1
	`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}

	return u, nil
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User

	err := s.db.GetContext(ctx, &u, `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email=$1
	`, email)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}

	return u, nil
}

func (s *Postgres) List(ctx context.Context, limit int) ([]models.User, error) {
	users := []models.User{}

	// created_at has microsecond precision; id breaks the rare tie so the
	// order matches insertion order.
	err := s.db.SelectContext(ctx, &users, `
		SELECT id, name, email, password_hash, created_at
		FROM users
		ORDER BY created_at, id
		LIMIT $1
	`, clampLimit(limit))

	if err != nil {
		return nil, err
	}

	return users, nil
}

func (s *Postgres) DeleteByID(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	return errors.As(err, &pge) && pge.Code == "23505"
}
