package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// AuthService implements registration, login and account lookups.
type AuthService struct {
	repo        ports.UserRepository
	credentials ports.CredentialService
	logger      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, credentials ports.CredentialService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, credentials: credentials, logger: logger}
}

// Register creates an account from an already-validated registration and
// returns a session token for it. A duplicate email is reported as
// domain.ErrEmailTaken whether it is caught by the lookup or by the store's
// unique index.
func (s *AuthService) Register(ctx context.Context, in domain.Registration) (*ports.AuthResult, error) {
	existing, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrEmailTaken
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := s.credentials.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.logger.Warn().Str("email", in.Email).Msg("duplicate email caught at insert")
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	token, err := s.credentials.IssueToken(domain.Identity{ID: created.ID, Role: created.Role})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login checks credentials. Unknown email and wrong password both yield
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in domain.Credentials) (*ports.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if !s.credentials.ComparePassword(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.credentials.IssueToken(domain.Identity{ID: user.ID, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Debug().Str("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
