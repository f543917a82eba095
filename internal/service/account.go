package service

import (
	"context"
	"errors"

	"github.com/vaughan-dsouza/accountd/internal/auth"
	"github.com/vaughan-dsouza/accountd/internal/models"
	"github.com/vaughan-dsouza/accountd/internal/store"
)

var ErrMissingField = errors.New("email and password required")

// ErrInvalidCredentials covers both unknown email and wrong password; the two
// are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountService orchestrates account registration, login and CRUD over the
// user store, the password hasher and the token issuer.
type AccountService struct {
	store  store.UserStore
	hasher *auth.PasswordHasher
	tokens *auth.Tokens
}

func NewAccountService(st store.UserStore, hasher *auth.PasswordHasher, tokens *auth.Tokens) *AccountService {
	return &AccountService{store: st, hasher: hasher, tokens: tokens}
}

// Session is the register/login result. User.PasswordHash carries json:"-",
// so the hash never reaches a response body.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s *AccountService) Register(ctx context.Context, name, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, ErrMissingField
	}

	// Checked up front for a clean duplicate signal; a concurrent register
	// that slips past still hits the store's unique constraint below.
	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return Session{}, store.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return Session{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Session{}, err
	}

	u, err := s.store.Create(ctx, name, email, hash)
	if err != nil {
		return Session{}, err
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, User: u}, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, ErrMissingField
	}

	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, User: u}, nil
}

// CreatePlainAccount creates a user through the unauthenticated CRUD path. A
// supplied password is hashed exactly as in Register; without one the account
// cannot log in.
func (s *AccountService) CreatePlainAccount(ctx context.Context, name, email, password string) (models.User, error) {
	if email == "" {
		return models.User{}, store.ErrEmailRequired
	}

	var hash string
	if password != "" {
		h, err := s.hasher.Hash(password)
		if err != nil {
			return models.User{}, err
		}
		hash = h
	}

	return s.store.Create(ctx, name, email, hash)
}

func (s *AccountService) ListAccounts(ctx context.Context, limit int) ([]models.User, error) {
	return s.store.List(ctx, limit)
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (models.User, error) {
	return s.store.FindByID(ctx, id)
}

// DeleteAccount is idempotent; deleting an unknown id is not an error.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	return s.store.DeleteByID(ctx, id)
}
