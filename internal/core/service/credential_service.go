package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// DefaultSessionTTL is how long a login or registration token stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// PasswordCost is the bcrypt work factor.
const PasswordCost = bcrypt.DefaultCost

type sessionClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CredentialService wraps bcrypt and HS256 JWTs. Tokens are stateless: expiry
// is the only way one stops being accepted.
type CredentialService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCredentialService(secret string, ttl time.Duration) (*CredentialService, error) {
	if secret == "" {
		return nil, errors.New("credential service: empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &CredentialService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *CredentialService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *CredentialService) ComparePassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (s *CredentialService) IssueToken(identity domain.Identity) (string, error) {
	now := s.now()
	claims := sessionClaims{
		ID:   identity.ID,
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature, algorithm and expiry. Every failure maps to
// domain.ErrInvalidToken; callers cannot tell expired from forged.
func (s *CredentialService) ParseToken(token string) (domain.Identity, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	if claims.ID == "" || claims.Role == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{ID: claims.ID, Role: claims.Role}, nil
}
