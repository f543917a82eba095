package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vaughan-dsouza/accountd/internal/models"
)

// Memory is an in-memory UserStore keeping insertion order. It backs the
// test suites in place of a real database.
type Memory struct {
	mu    sync.Mutex
	users []models.User
}

func NewMemory() *Memory {
	return &Memory{}
}

func (s *Memory) Create(_ context.Context, name, email, passwordHash string) (models.User, error) {
	if email == "" {
		return models.User{}, ErrEmailRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return models.User{}, ErrDuplicateEmail
		}
	}

	u := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users = append(s.users, u)

	return u, nil
}

func (s *Memory) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Memory) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Memory) List(_ context.Context, limit int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := clampLimit(limit)
	if n > len(s.users) {
		n = len(s.users)
	}

	out := make([]models.User, n)
	copy(out, s.users[:n])
	return out, nil
}

func (s *Memory) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return nil
}
