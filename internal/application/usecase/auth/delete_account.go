package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DeleteAccountConfirmation must be typed by the user to delete the account.
const DeleteAccountConfirmation = "DELETE"

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

// DeleteAccountOutput represents the output of account deletion.
type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase removes a user together with every category,
// transaction and investment they own.
type DeleteAccountUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	if input.Confirmation != DeleteAccountConfirmation {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			fmt.Sprintf("confirmation must be exactly '%s'", DeleteAccountConfirmation),
			domainerror.ErrInvalidArgument,
		)
	}

	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid password",
			domainerror.ErrInvalidCredentials,
		)
	}

	if err := uc.tokenService.InvalidateAllUserTokens(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to invalidate user tokens: %w", err)
	}

	if err := uc.userRepo.Delete(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	slog.InfoContext(ctx, "Deleted user account", "userID", user.ID)

	return &DeleteAccountOutput{
		Success: true,
	}, nil
}

func findUserError(err error) error {
	if errors.Is(err, domainerror.ErrUserNotFound) {
		return domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}
	return fmt.Errorf("failed to find user: %w", err)
}
