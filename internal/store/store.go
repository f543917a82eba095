package store

import (
	"context"
	"errors"

	"github.com/vaughan-dsouza/accountd/internal/models"
)

// MaxListLimit bounds List; larger or non-positive limits are clamped to it.
const MaxListLimit = 100

var (
	ErrEmailRequired  = errors.New("email is required")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("user not found")
)

// UserStore provides user persistence. Create assigns the id and creation
// time; email uniqueness is enforced here, so concurrent creates with the
// same email resolve to exactly one winner.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context, limit int) ([]models.User, error)
	DeleteByID(ctx context.Context, id string) error
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
