package actions

import (
	"context"
	"errors"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage"
)

type CreateCategory struct {
	OwnerID int64
	Name    string
	Color   string
	IAction

	ID int64
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := categoryNameFree(ctx, writer, c.OwnerID, c.Name, 0); err != nil {
		return err
	}

	id, err := writer.Categories.Insert(ctx, c.OwnerID, c.Name, c.Color)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

type UpdateCategory struct {
	OwnerID int64
	ID      int64
	Name    *string
	Color   *string
	IAction
}

func (c *UpdateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Categories.FindByID(ctx, c.OwnerID, c.ID)
	if err != nil {
		return err
	}

	if c.Name != nil {
		if err := categoryNameFree(ctx, writer, c.OwnerID, *c.Name, c.ID); err != nil {
			return err
		}
		existing.Name = *c.Name
	}
	if c.Color != nil {
		existing.Color = *c.Color
	}

	return writer.Categories.Update(ctx, existing)
}

type DeleteCategory struct {
	OwnerID int64
	ID      int64
	IAction
}

// Perform removes the category. Entries referencing it keep their amounts and
// balances; the foreign key nulls their category_id.
func (c *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Categories.FindByID(ctx, c.OwnerID, c.ID); err != nil {
		return err
	}
	return writer.Categories.Delete(ctx, c.ID)
}

// categoryNameFree reports ErrDuplicate when another category of the owner
// already carries the name. exceptID skips the category being renamed.
func categoryNameFree(ctx context.Context, writer *storage.Writer, ownerID int64, name string, exceptID int64) error {
	existing, err := writer.Categories.FindByName(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != exceptID {
		return ledger.ErrDuplicate
	}
	return nil
}
