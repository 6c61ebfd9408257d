package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage/user"
)

type userReader interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// UserService handles user lookups for authentication.
type UserService struct {
	users userReader
}

func NewUserService(users userReader) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	return s.users.FindByID(ctx, id)
}

// FindForLogin resolves a login identifier: anything containing "@" is
// treated as an email first, falling back to a username lookup.
func (s *UserService) FindForLogin(ctx context.Context, identifier string) (*user.User, error) {
	if strings.Contains(identifier, "@") {
		u, err := s.users.FindByEmail(ctx, identifier)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, ledger.ErrNotFound) {
			return nil, err
		}
	}
	return s.users.FindByUsername(ctx, identifier)
}
