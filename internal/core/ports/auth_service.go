package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// CredentialService hashes passwords and issues/verifies session tokens.
type CredentialService interface {
	HashPassword(plain string) (string, error)
	ComparePassword(hash, plain string) bool
	IssueToken(identity domain.Identity) (string, error)
	TokenVerifier
}

// TokenVerifier is the slice of CredentialService the auth middleware needs.
type TokenVerifier interface {
	ParseToken(token string) (domain.Identity, error)
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in domain.Registration) (*AuthResult, error)
	Login(ctx context.Context, in domain.Credentials) (*AuthResult, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}
