package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/artem13815/dragonball/pkg/password"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, username, email, pw string) (AuthResult, error)
	Login(ctx context.Context, email, pw string) (AuthResult, error)
	// Verify checks a raw token and re-resolves its user from the store.
	Verify(ctx context.Context, token string) (PublicUser, error)
}

type AuthResult struct {
	User  PublicUser
	Token string
}

type authService struct {
	repo   UserRepository
	tokens TokenService
	log    *zap.Logger
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenService, log *zap.Logger) AuthUseCase {
	return &authService{repo: repo, tokens: tokens, log: log}
}

func (s *authService) Register(ctx context.Context, username, email, pw string) (AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || pw == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	hash, err := password.Hash(pw)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.repo.Create(ctx, NewUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user.Public(), Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, pw string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// user lookup failure masked as bad credentials
		return AuthResult{}, ErrInvalidCredentials
	}

	ok, err := password.Verify(pw, user.PasswordHash)
	if err != nil {
		return AuthResult{}, err
	}
	if !ok {
		return AuthResult{}, ErrInvalidCredentials
	}

	// Best-effort: a failed timestamp update must not fail the login.
	if err := s.repo.TouchLogin(ctx, user.ID); err != nil {
		s.log.Warn("touch login failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user.Public(), Token: token}, nil
}

func (s *authService) Verify(ctx context.Context, token string) (PublicUser, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return PublicUser{}, err
	}
	user, err := s.repo.GetByID(ctx, claims.ID)
	if err != nil {
		return PublicUser{}, err
	}
	return user.Public(), nil
}
