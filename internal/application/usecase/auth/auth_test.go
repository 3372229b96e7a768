package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/persistencetest"
)

const testPassword = "correct-horse"

type fixture struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

func newFixture(t *testing.T) *fixture {
	db := persistencetest.NewDB(t)
	return &fixture{
		users:     persistence.NewUserRepository(db),
		passwords: adapters.NewPasswordService(bcrypt.MinCost),
		tokens:    adapters.NewTokenService("test-secret", persistence.NewTokenRepository(db)),
	}
}

func (f *fixture) register(t *testing.T, email string) *RegisterUserOutput {
	t.Helper()
	out, err := NewRegisterUserUseCase(f.users, f.passwords, f.tokens).Execute(context.Background(), RegisterUserInput{
		Email:    email,
		Name:     "Ada",
		Password: testPassword,
	})
	require.NoError(t, err)
	return out
}

func authCode(t *testing.T, err error) domainerror.AuthErrorCode {
	t.Helper()
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr), "expected an AuthError, got %v", err)
	return authErr.Code
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the email and issues tokens", func(t *testing.T) {
		f := newFixture(t)
		out := f.register(t, "  Ada@Example.COM ")

		assert.Equal(t, "ada@example.com", out.User.Email)
		assert.NotEmpty(t, out.AccessToken)
		assert.NotEmpty(t, out.RefreshToken)
		assert.NotEqual(t, testPassword, out.User.PasswordHash)

		stored, err := f.users.FindByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, out.User.ID, stored.ID)
	})

	t.Run("duplicate email ignoring case", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "ada@example.com")

		_, err := NewRegisterUserUseCase(f.users, f.passwords, f.tokens).Execute(ctx, RegisterUserInput{
			Email:    "ADA@example.com",
			Name:     "Other",
			Password: testPassword,
		})
		assert.True(t, errors.Is(err, domainerror.ErrEmailAlreadyExists))
		assert.Equal(t, domainerror.ErrCodeEmailExists, authCode(t, err))
	})

	tests := []struct {
		name  string
		input RegisterUserInput
		code  domainerror.AuthErrorCode
	}{
		{"invalid email", RegisterUserInput{Email: "not-an-email", Name: "Ada", Password: testPassword}, domainerror.ErrCodeInvalidEmail},
		{"email without domain dot", RegisterUserInput{Email: "ada@localhost", Name: "Ada", Password: testPassword}, domainerror.ErrCodeInvalidEmail},
		{"display name form", RegisterUserInput{Email: "Ada <ada@example.com>", Name: "Ada", Password: testPassword}, domainerror.ErrCodeInvalidEmail},
		{"blank name", RegisterUserInput{Email: "ada@example.com", Name: "   ", Password: testPassword}, domainerror.ErrCodeMissingFields},
		{"long name", RegisterUserInput{Email: "ada@example.com", Name: strings.Repeat("a", MaxNameLength+1), Password: testPassword}, domainerror.ErrCodeMissingFields},
		{"weak password", RegisterUserInput{Email: "ada@example.com", Name: "Ada", Password: "short"}, domainerror.ErrCodeWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := NewRegisterUserUseCase(f.users, f.passwords, f.tokens).Execute(ctx, tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, authCode(t, err))
		})
	}
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	registered := f.register(t, "ada@example.com")
	login := NewLoginUserUseCase(f.users, f.passwords, f.tokens)

	t.Run("valid credentials", func(t *testing.T) {
		out, err := login.Execute(ctx, LoginUserInput{Email: "ADA@example.com", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, out.User.ID)

		claims, err := f.tokens.ValidateAccessToken(ctx, out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, claims.UserID)
	})

	t.Run("wrong password and unknown email fail alike", func(t *testing.T) {
		_, wrongPassword := login.Execute(ctx, LoginUserInput{Email: "ada@example.com", Password: "incorrect"})
		_, unknownEmail := login.Execute(ctx, LoginUserInput{Email: "bob@example.com", Password: testPassword})

		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, wrongPassword))
		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, unknownEmail))
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada@example.com")
		refresh := NewRefreshTokenUseCase(f.users, f.tokens)

		out, err := refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
		require.NoError(t, err)
		assert.NotEqual(t, registered.RefreshToken, out.RefreshToken)

		_, err = refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
		assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))

		_, err = refresh.Execute(ctx, RefreshTokenInput{RefreshToken: out.RefreshToken})
		assert.NoError(t, err)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada@example.com")

		_, err := NewRefreshTokenUseCase(f.users, f.tokens).Execute(ctx, RefreshTokenInput{RefreshToken: registered.AccessToken})
		assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewRefreshTokenUseCase(f.users, f.tokens).Execute(ctx, RefreshTokenInput{RefreshToken: "garbage"})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidToken))
	})
}

func TestLogoutUser(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the presented token", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada@example.com")

		_, err := NewLogoutUserUseCase(f.tokens).Execute(ctx, LogoutUserInput{RefreshToken: registered.RefreshToken})
		require.NoError(t, err)

		valid, err := f.tokens.IsRefreshTokenValid(ctx, registered.RefreshToken)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("all devices", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada@example.com")
		second, err := NewLoginUserUseCase(f.users, f.passwords, f.tokens).Execute(ctx, LoginUserInput{
			Email:    "ada@example.com",
			Password: testPassword,
		})
		require.NoError(t, err)

		_, err = NewLogoutUserUseCase(f.tokens).Execute(ctx, LogoutUserInput{UserID: registered.User.ID, AllDevices: true})
		require.NoError(t, err)

		for _, token := range []string{registered.RefreshToken, second.RefreshToken} {
			valid, err := f.tokens.IsRefreshTokenValid(ctx, token)
			require.NoError(t, err)
			assert.False(t, valid)
		}
	})

	t.Run("unknown token is fine", func(t *testing.T) {
		f := newFixture(t)
		out, err := NewLogoutUserUseCase(f.tokens).Execute(ctx, LogoutUserInput{RefreshToken: "unknown"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Message)
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("requires the confirmation word", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada@example.com")

		_, err := NewDeleteAccountUseCase(f.users, f.passwords, f.tokens).Execute(ctx, DeleteAccountInput{
			UserID:       registered.User.ID,
			Password:     testPassword,
			Confirmation: "delete",
		})
		assert.Equal(t, domainerror.ErrCodeInvalidConfirmation, authCode(t, err))
	})

	t.Run("requires the password", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada@example.com")

		_, err := NewDeleteAccountUseCase(f.users, f.passwords, f.tokens).Execute(ctx, DeleteAccountInput{
			UserID:       registered.User.ID,
			Password:     "incorrect",
			Confirmation: DeleteAccountConfirmation,
		})
		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err))
	})

	t.Run("removes the user and their sessions", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada@example.com")

		out, err := NewDeleteAccountUseCase(f.users, f.passwords, f.tokens).Execute(ctx, DeleteAccountInput{
			UserID:       registered.User.ID,
			Password:     testPassword,
			Confirmation: DeleteAccountConfirmation,
		})
		require.NoError(t, err)
		assert.True(t, out.Success)

		_, err = f.users.FindByID(ctx, registered.User.ID)
		assert.True(t, errors.Is(err, domainerror.ErrUserNotFound))

		_, err = NewRefreshTokenUseCase(f.users, f.tokens).Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidToken))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewDeleteAccountUseCase(f.users, f.passwords, f.tokens).Execute(ctx, DeleteAccountInput{
			UserID:       uuid.New(),
			Password:     testPassword,
			Confirmation: DeleteAccountConfirmation,
		})
		assert.Equal(t, domainerror.ErrCodeUserNotFound, authCode(t, err))
	})
}

func TestUserProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	registered := f.register(t, "ada@example.com")

	t.Run("get current user", func(t *testing.T) {
		out, err := NewGetCurrentUserUseCase(f.users).Execute(ctx, GetCurrentUserInput{UserID: registered.User.ID})
		require.NoError(t, err)
		assert.Equal(t, "Ada", out.User.Name)
	})

	t.Run("rename", func(t *testing.T) {
		out, err := NewUpdateUserNameUseCase(f.users).Execute(ctx, UpdateUserNameInput{
			UserID: registered.User.ID,
			Name:   "  Ada Lovelace ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", out.User.Name)

		stored, err := f.users.FindByID(ctx, registered.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", stored.Name)
		assert.Equal(t, "ada@example.com", stored.Email)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := NewUpdateUserNameUseCase(f.users).Execute(ctx, UpdateUserNameInput{UserID: registered.User.ID, Name: ""})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidArgument))
	})
}
