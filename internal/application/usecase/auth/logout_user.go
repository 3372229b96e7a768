package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout. With AllDevices set,
// every refresh token of UserID is revoked instead of RefreshToken alone.
type LogoutUserInput struct {
	UserID       uuid.UUID
	RefreshToken string
	AllDevices   bool
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute performs the user logout.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	if input.AllDevices {
		if err := uc.tokenService.InvalidateAllUserTokens(ctx, input.UserID); err != nil {
			return nil, fmt.Errorf("failed to invalidate user tokens: %w", err)
		}
		return &LogoutUserOutput{Message: "Logged out from all devices"}, nil
	}

	// An unknown or already revoked token is not an error.
	_ = uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken)

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
