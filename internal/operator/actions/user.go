package actions

import (
	"context"
	"errors"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage"
)

type RegisterUser struct {
	Username     string
	Email        string
	PasswordHash string
	Theme        string
	IAction

	ID int64
}

func (u *RegisterUser) Perform(ctx context.Context, writer *storage.Writer) error {
	if existing, err := writer.Users.FindByUsername(ctx, u.Username); err != nil && !errors.Is(err, ledger.ErrNotFound) {
		return err
	} else if existing != nil {
		return ledger.ErrDuplicate
	}
	if existing, err := writer.Users.FindByEmail(ctx, u.Email); err != nil && !errors.Is(err, ledger.ErrNotFound) {
		return err
	} else if existing != nil {
		return ledger.ErrDuplicate
	}

	id, err := writer.Users.Insert(ctx, u.Username, u.Email, u.PasswordHash, u.Theme)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

type UpdateTheme struct {
	UserID int64
	Theme  string
	IAction
}

func (u *UpdateTheme) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Users.FindByID(ctx, u.UserID); err != nil {
		return err
	}
	return writer.Users.UpdateTheme(ctx, u.UserID, u.Theme)
}
