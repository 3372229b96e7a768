package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// handleDomainError writes the response for an error returned by a use case.
// Coded domain errors keep their code and message; uncoded input errors keep
// their message; anything else is reported as an internal error.
func handleDomainError(ctx *gin.Context, err error) {
	status := statusCodeFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx.Request.Context(), "Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(status, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	code, message := describe(err)
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// statusCodeFor maps domain error kinds to HTTP status codes.
func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, domainerror.ErrInvalidArgument),
		errors.Is(err, domainerror.ErrInvalidRate),
		errors.Is(err, domainerror.ErrCategoryTypeMismatch),
		errors.Is(err, domainerror.ErrInvalidEmail),
		errors.Is(err, domainerror.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, domainerror.ErrInvalidCredentials),
		errors.Is(err, domainerror.ErrInvalidToken),
		errors.Is(err, domainerror.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domainerror.ErrOwnerMismatch),
		errors.Is(err, domainerror.ErrNotAuthorizedToModifyCategory),
		errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction),
		errors.Is(err, domainerror.ErrNotAuthorizedToModifyInvestment):
		return http.StatusForbidden
	case errors.Is(err, domainerror.ErrUserNotFound),
		errors.Is(err, domainerror.ErrCategoryNotFound),
		errors.Is(err, domainerror.ErrTransactionNotFound),
		errors.Is(err, domainerror.ErrInvestmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerror.ErrDuplicateTransaction),
		errors.Is(err, domainerror.ErrCategoryLabelExists),
		errors.Is(err, domainerror.ErrCategoryInUse),
		errors.Is(err, domainerror.ErrEmailAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// describe extracts the code and message of a coded domain error.
func describe(err error) (code, message string) {
	var (
		authErr *domainerror.AuthError
		catErr  *domainerror.CategoryError
		txnErr  *domainerror.TransactionError
		invErr  *domainerror.InvestmentError
		dashErr *domainerror.DashboardError
	)
	switch {
	case errors.As(err, &authErr):
		return string(authErr.Code), authErr.Message
	case errors.As(err, &catErr):
		return string(catErr.Code), catErr.Message
	case errors.As(err, &txnErr):
		return string(txnErr.Code), txnErr.Message
	case errors.As(err, &invErr):
		return string(invErr.Code), invErr.Message
	case errors.As(err, &dashErr):
		return string(dashErr.Code), dashErr.Message
	default:
		return "", err.Error()
	}
}

func badRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// requireUser returns the authenticated user or writes a 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the :id route parameter or writes a 400.
func pathID(ctx *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid "+what+" ID format", "")
		return uuid.Nil, false
	}
	return id, true
}
