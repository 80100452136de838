package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alerquim/commerce-platform/internal/identity/domain"
	"github.com/alerquim/commerce-platform/pkg/auth"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Service struct {
	log    *slog.Logger
	repo   UserRepository
	hasher PasswordHasher
	issuer *auth.Issuer
}

func NewService(log *slog.Logger, repo UserRepository, hasher PasswordHasher, issuer *auth.Issuer) *Service {
	return &Service{log: log, repo: repo, hasher: hasher, issuer: issuer}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (UserView, error) {
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		return UserView{}, err
	}
	if len(req.Password) < 8 {
		return UserView{}, domain.ErrPasswordTooWeak
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return UserView{}, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return UserView{}, err
	}
	user, err := domain.NewUser(req.Name, email, hash, req.Role)
	if err != nil {
		return UserView{}, err
	}
	if err := s.repo.Add(ctx, user); err != nil {
		return UserView{}, err
	}
	s.log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return viewOf(user), nil
}

// Login verifies credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, emailRaw, password string) (string, error) {
	email, err := domain.NewEmail(emailRaw)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return s.issuer.Sign(user.ID.String(), user.Email.String(), user.Role)
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (UserView, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return UserView{}, err
	}
	return viewOf(user), nil
}

func viewOf(u *domain.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email.String(), Role: u.Role}
}
