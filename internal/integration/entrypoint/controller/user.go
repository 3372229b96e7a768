package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/auth"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// UserController handles endpoints of the authenticated user.
type UserController struct {
	getCurrentUserUseCase *auth.GetCurrentUserUseCase
	updateNameUseCase     *auth.UpdateUserNameUseCase
	logoutUseCase         *auth.LogoutUserUseCase
	deleteAccountUseCase  *auth.DeleteAccountUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getCurrentUserUseCase *auth.GetCurrentUserUseCase,
	updateNameUseCase *auth.UpdateUserNameUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
	deleteAccountUseCase *auth.DeleteAccountUseCase,
) *UserController {
	return &UserController{
		getCurrentUserUseCase: getCurrentUserUseCase,
		updateNameUseCase:     updateNameUseCase,
		logoutUseCase:         logoutUseCase,
		deleteAccountUseCase:  deleteAccountUseCase,
	}
}

// Me handles GET /users/me requests.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getCurrentUserUseCase.Execute(ctx.Request.Context(), auth.GetCurrentUserInput{UserID: userID})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// UpdateName handles PATCH /users/me/name requests.
func (c *UserController) UpdateName(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateNameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.updateNameUseCase.Execute(ctx.Request.Context(), auth.UpdateUserNameInput{
		UserID: userID,
		Name:   req.Name,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// LogoutAll handles POST /users/me/logout-all requests.
func (c *UserController) LogoutAll(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.logoutUseCase.Execute(ctx.Request.Context(), auth.LogoutUserInput{
		UserID:     userID,
		AllDevices: true,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: output.Message,
	})
}

// DeleteAccount handles DELETE /users/me requests.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingFields))
		return
	}

	_, err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		UserID:       userID,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
