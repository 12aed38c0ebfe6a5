package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"mockchat/internal/domain"
)

// UserService provides contact operations.
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

type UserCreateInput struct {
	Name  string
	Phone string
}

// CreateUser registers a new contact. The email address is synthesized from
// the name (lower-cased, whitespace runs collapsed to dots) and the avatar
// is a placeholder image. The phone number is accepted but not stored.
func (s *UserService) CreateUser(ctx context.Context, in UserCreateInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	u := &domain.User{
		Name:     name,
		Email:    synthesizeEmail(name),
		Avatar:   "/placeholder.svg?height=40&width=40&query=" + url.QueryEscape(name),
		IsOnline: true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func synthesizeEmail(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), ".") + "@example.com"
}
