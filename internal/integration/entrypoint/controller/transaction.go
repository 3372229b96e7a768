package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transactions requests.
// Query parameters: begin, until (YYYY-MM-DD), categoryId, recurrence.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	filter, err := parseFilter(ctx)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		UserID: userID,
		Filter: filter,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "transaction")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	input, err := createTransactionInput(userID, req)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		TransactionResponse: dto.ToTransactionResponse(output.Transaction),
		CategoryCreated:     output.CategoryCreated,
	})
}

func createTransactionInput(userID uuid.UUID, req dto.CreateTransactionRequest) (transaction.CreateTransactionInput, error) {
	input := transaction.CreateTransactionInput{
		UserID:        userID,
		Description:   req.Description,
		Recurrence:    bool(req.Recurrence),
		CategoryLabel: req.CategoryLabel,
	}

	value, err := req.Value.Money()
	if err != nil {
		return input, err
	}
	input.Value = value

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return input, err
	}
	input.Date = date

	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := parseUUID(*req.CategoryID, "categoryId")
		if err != nil {
			return input, err
		}
		input.CategoryID = &id
	}
	if req.CategoryType != "" {
		categoryType, err := entity.ParseCategoryType(req.CategoryType)
		if err != nil {
			return input, err
		}
		input.CategoryType = categoryType
	}
	return input, nil
}

// UpdateDescription handles PATCH /transactions/:id/description requests.
func (c *TransactionController) UpdateDescription(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateTransactionRequest, input *transaction.UpdateTransactionInput) error {
		if req.Description == nil {
			return missingField("description")
		}
		input.Description = req.Description
		return nil
	})
}

// UpdateValue handles PATCH /transactions/:id/value requests.
func (c *TransactionController) UpdateValue(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateTransactionRequest, input *transaction.UpdateTransactionInput) error {
		if req.Value == nil {
			return missingField("value")
		}
		value, err := req.Value.Money()
		if err != nil {
			return err
		}
		input.Value = &value
		return nil
	})
}

// UpdateDate handles PATCH /transactions/:id/date requests.
func (c *TransactionController) UpdateDate(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateTransactionRequest, input *transaction.UpdateTransactionInput) error {
		if req.Date == nil {
			return missingField("date")
		}
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return err
		}
		input.Date = &date
		return nil
	})
}

// UpdateCategory handles PATCH /transactions/:id/category requests.
func (c *TransactionController) UpdateCategory(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateTransactionRequest, input *transaction.UpdateTransactionInput) error {
		if req.CategoryID == nil {
			return missingField("categoryId")
		}
		id, err := parseUUID(*req.CategoryID, "categoryId")
		if err != nil {
			return err
		}
		input.CategoryID = &id
		return nil
	})
}

// UpdateRecurrence handles PATCH /transactions/:id/recurrence requests.
func (c *TransactionController) UpdateRecurrence(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateTransactionRequest, input *transaction.UpdateTransactionInput) error {
		if req.Recurrence == nil {
			return missingField("recurrence")
		}
		recurrence := bool(*req.Recurrence)
		input.Recurrence = &recurrence
		return nil
	})
}

func (c *TransactionController) update(
	ctx *gin.Context,
	set func(dto.UpdateTransactionRequest, *transaction.UpdateTransactionInput) error,
) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	}
	if err := set(req, &input); err != nil {
		handleDomainError(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "transaction")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseFilter reads the listing filter shared by transactions and investments.
func parseFilter(ctx *gin.Context) (entity.TransactionFilter, error) {
	var (
		filter entity.TransactionFilter
		err    error
	)
	if filter.Begin, err = dto.ParseOptionalDate(ctx.Query("begin")); err != nil {
		return filter, err
	}
	if filter.Until, err = dto.ParseOptionalDate(ctx.Query("until")); err != nil {
		return filter, err
	}
	if raw := ctx.Query("categoryId"); raw != "" {
		id, err := parseUUID(raw, "categoryId")
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &id
	}
	if raw := ctx.Query("recurrence"); raw != "" {
		recurrence, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, domainerror.NewTransactionError(
				domainerror.ErrCodeMissingTransactionFields,
				"recurrence must be true or false",
				domainerror.ErrInvalidArgument,
			)
		}
		filter.Recurrence = &recurrence
	}
	return filter, nil
}

func parseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"invalid "+field+" format",
			domainerror.ErrInvalidArgument,
		)
	}
	return id, nil
}

func missingField(field string) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeMissingTransactionFields,
		field+" is required",
		domainerror.ErrInvalidArgument,
	)
}
