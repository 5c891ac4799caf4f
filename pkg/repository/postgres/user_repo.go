package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/artem13815/dragonball/pkg/auth"
)

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
type UserRepository struct {
	db PgxPool
}

func NewUserRepository(db PgxPool) (*UserRepository, error) {
	repo := &UserRepository{db: db}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	return err
}

// Create runs the duplicate pre-check and the insert in one transaction, so
// a failure between the two leaves no partial row. The pre-check is an
// optimization only: a racing duplicate insert is still rejected by the
// unique constraints and reported as auth.ErrUserAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, n auth.NewUser) (auth.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return auth.User{}, err
	}
	defer tx.Rollback(ctx) // no-op after commit

	email := strings.ToLower(n.Email)

	var existing int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM users WHERE email = $1 OR username = $2
	`, email, n.Username).Scan(&existing)
	if err == nil {
		return auth.User{}, auth.ErrUserAlreadyExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return auth.User{}, err
	}

	var u auth.User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, created_at, updated_at
	`, n.Username, email, n.PasswordHash).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.User{}, auth.ErrUserAlreadyExists
		}
		return auth.User{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return auth.User{}, err
	}
	return u, nil
}

// GetByEmail returns the full row including the password hash; used only
// internally for login and duplicate checks.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, created_at, updated_at
		FROM users WHERE email = $1
	`, strings.ToLower(email))
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, created_at, updated_at
		FROM users WHERE username = $1
	`, username)
	return scanUser(row)
}

// GetByID returns public fields only; the hash never leaves the store here.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, email, created_at, updated_at
		FROM users WHERE id = $1
	`, id)
	var u auth.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	return u, nil
}

// TouchLogin bumps updated_at on successful login.
func (r *UserRepository) TouchLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET updated_at = NOW() WHERE id = $1`, id)
	return err
}

func scanUser(row pgx.Row) (auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	return u, nil
}

var _ auth.UserRepository = (*UserRepository)(nil)
