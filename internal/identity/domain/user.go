package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrPasswordTooWeak = errors.New("password must have at least 8 characters")
	ErrEmailTaken      = errors.New("email already registered")
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Email is a validated, lower-cased address.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	if trimmed == "" {
		return Email{}, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: trimmed}, nil
}

func (e Email) String() string { return e.value }

type User struct {
	ID           uuid.UUID
	Name         string
	Email        Email
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

func NewUser(name string, email Email, passwordHash, role string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if role != RoleAdmin && role != RoleCustomer {
		role = RoleCustomer
	}
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
