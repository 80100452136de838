package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alerquim/commerce-platform/internal/identity/domain"
	"github.com/alerquim/commerce-platform/pkg/auth"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memoryRepo) Add(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *memoryRepo) Get(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email domain.Email) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email.String() == email.String() {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newTestService() (*Service, *memoryRepo) {
	repo := newMemoryRepo()
	issuer := auth.NewIssuer("test-secret", time.Hour)
	svc := NewService(slog.New(slog.DiscardHandler), repo, NewBcryptHasher(), issuer)
	return svc, repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()

	view, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ana",
		Email:    "Ana@Example.com",
		Password: "correct-horse",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %q", view.Email)
	}

	token, err := svc.Login(context.Background(), "ana@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService()
	_, _ = svc.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "correct-horse",
	})

	if _, err := svc.Login(context.Background(), "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Register(context.Background(), RegisterRequest{Name: "Ana", Email: "not-an-email", Password: "correct-horse"}); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "short"}); !errors.Is(err, domain.ErrPasswordTooWeak) {
		t.Errorf("expected ErrPasswordTooWeak, got %v", err)
	}

	_, _ = svc.Register(context.Background(), RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "correct-horse"})
	if _, err := svc.Register(context.Background(), RegisterRequest{Name: "Other", Email: "ana@example.com", Password: "correct-horse"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUnknownRoleDefaultsToCustomer(t *testing.T) {
	svc, _ := newTestService()
	view, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "correct-horse", Role: "superuser",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Role != domain.RoleCustomer {
		t.Errorf("expected customer role, got %q", view.Role)
	}
}
