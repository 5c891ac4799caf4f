package auth

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NewUser carries the fields persisted on registration. Password arrives
// already hashed; the repository never sees the plaintext.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
}

// UserRepository abstracts persistence concerns from the domain layer.
//
// Create must run the duplicate check and the insert inside a single
// transaction, so a racing registration never produces two rows; the
// store's uniqueness constraints remain the final arbiter.
type UserRepository interface {
	Create(ctx context.Context, n NewUser) (User, error)
	// GetByEmail and GetByUsername return the full row including the hash.
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetByUsername has no caller in the current flows (login is by email,
	// the duplicate check lives inside Create); it stays on the port for
	// username-based login or admin lookups.
	GetByUsername(ctx context.Context, username string) (User, error)
	// GetByID returns public fields only; PasswordHash stays empty.
	GetByID(ctx context.Context, id int64) (User, error)
	// TouchLogin bumps updated_at. Best-effort: callers tolerate failure.
	TouchLogin(ctx context.Context, id int64) error
}
