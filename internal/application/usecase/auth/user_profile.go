package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

func findUser(ctx context.Context, repo adapter.UserRepository, id uuid.UUID) (*entity.User, error) {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, findUserError(err)
	}
	return user, nil
}

// GetCurrentUserInput represents the input for fetching the caller's profile.
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// GetCurrentUserOutput represents the caller's profile.
type GetCurrentUserOutput struct {
	User *entity.User
}

// GetCurrentUserUseCase returns the authenticated user.
type GetCurrentUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetCurrentUserUseCase creates a new GetCurrentUserUseCase instance.
func NewGetCurrentUserUseCase(userRepo adapter.UserRepository) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{userRepo: userRepo}
}

// Execute fetches the user.
func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, input GetCurrentUserInput) (*GetCurrentUserOutput, error) {
	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetCurrentUserOutput{User: user}, nil
}

// UpdateUserNameInput represents the input for renaming the caller.
type UpdateUserNameInput struct {
	UserID uuid.UUID
	Name   string
}

// UpdateUserNameOutput represents the renamed user.
type UpdateUserNameOutput struct {
	User *entity.User
}

// UpdateUserNameUseCase changes the display name of the authenticated user.
type UpdateUserNameUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateUserNameUseCase creates a new UpdateUserNameUseCase instance.
func NewUpdateUserNameUseCase(userRepo adapter.UserRepository) *UpdateUserNameUseCase {
	return &UpdateUserNameUseCase{userRepo: userRepo}
}

// Execute performs the rename.
func (uc *UpdateUserNameUseCase) Execute(ctx context.Context, input UpdateUserNameInput) (*UpdateUserNameOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	user.Rename(name)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &UpdateUserNameOutput{User: user}, nil
}
