package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/catalog-api/internal/core/domain"
)

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User // keyed by email
	nextID  int
	findErr error
	// raceOnCreate simulates a concurrent insert of the same email landing
	// between the lookup and the insert.
	raceOnCreate bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceOnCreate {
		return nil, domain.ErrEmailTaken
	}
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func newAuthSvc(t *testing.T, repo *stubUserRepo) (*AuthService, *CredentialService) {
	t.Helper()
	creds, err := NewCredentialService("secret", time.Hour)
	if err != nil {
		t.Fatalf("credential service: %v", err)
	}
	return NewAuthService(repo, creds, zerolog.Nop()), creds
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, creds := newAuthSvc(t, repo)

	res, err := svc.Register(context.Background(), domain.Registration{
		Email: "alice@example.com", Password: "secret1", Role: domain.RoleCommon,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if res.User.CreatedAt.IsZero() || res.User.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", res.User)
	}

	identity, err := creds.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if identity.ID != res.User.ID || identity.Role != domain.RoleCommon {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)
	in := domain.Registration{Email: "bob@example.com", Password: "secret1", Role: domain.RoleCommon}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_DuplicateCaughtAtInsert(t *testing.T) {
	repo := newStubUserRepo()
	repo.raceOnCreate = true
	svc, _ := newAuthSvc(t, repo)

	_, err := svc.Register(context.Background(), domain.Registration{
		Email: "race@example.com", Password: "secret1", Role: domain.RoleCommon,
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_LookupFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection reset")
	svc, _ := newAuthSvc(t, repo)

	_, err := svc.Register(context.Background(), domain.Registration{
		Email: "x@example.com", Password: "secret1", Role: domain.RoleCommon,
	})
	if err == nil || errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc, creds := newAuthSvc(t, repo)

	reg, err := svc.Register(context.Background(), domain.Registration{
		Email: "carol@example.com", Password: "s3cret", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), domain.Credentials{Email: "carol@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}

	identity, err := creds.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if identity.ID != reg.User.ID || identity.Role != domain.RoleAdmin {
		t.Fatalf("claims %+v do not match stored user %+v", identity, reg.User)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)

	_, _ = svc.Register(context.Background(), domain.Registration{Email: "dave@example.com", Password: "goodpass", Role: domain.RoleCommon})
	if _, err := svc.Login(context.Background(), domain.Credentials{Email: "dave@example.com", Password: "badpass"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo())

	if _, err := svc.Login(context.Background(), domain.Credentials{Email: "ghost@example.com", Password: "pass"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_GetUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)

	reg, err := svc.Register(context.Background(), domain.Registration{Email: "eve@example.com", Password: "secret1", Role: domain.RoleCommon})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := svc.GetUser(context.Background(), reg.User.ID)
	if err != nil || got.Email != "eve@example.com" {
		t.Fatalf("unexpected result: %+v %v", got, err)
	}

	if _, err := svc.GetUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
