package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// UserRepository stores account owners. Lookups of a missing user fail
// with domainerror.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail expects an already normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user together with every ledger entry it owns.
	Delete(ctx context.Context, id uuid.UUID) error
}
