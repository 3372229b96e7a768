package controller

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/usecase/investment"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// InvestmentController handles investment endpoints.
type InvestmentController struct {
	listUseCase       *investment.ListInvestmentsUseCase
	getUseCase        *investment.GetInvestmentUseCase
	createUseCase     *investment.CreateInvestmentUseCase
	updateUseCase     *investment.UpdateInvestmentUseCase
	deleteUseCase     *investment.DeleteInvestmentUseCase
	valuationUseCase  *investment.GetValuationUseCase
	projectionUseCase *investment.GetProjectionUseCase
}

// NewInvestmentController creates a new investment controller instance.
func NewInvestmentController(
	listUseCase *investment.ListInvestmentsUseCase,
	getUseCase *investment.GetInvestmentUseCase,
	createUseCase *investment.CreateInvestmentUseCase,
	updateUseCase *investment.UpdateInvestmentUseCase,
	deleteUseCase *investment.DeleteInvestmentUseCase,
	valuationUseCase *investment.GetValuationUseCase,
	projectionUseCase *investment.GetProjectionUseCase,
) *InvestmentController {
	return &InvestmentController{
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		valuationUseCase:  valuationUseCase,
		projectionUseCase: projectionUseCase,
	}
}

// List handles GET /investments requests.
func (c *InvestmentController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	filter, err := parseFilter(ctx)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), investment.ListInvestmentsInput{
		UserID: userID,
		Filter: filter,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvestmentListResponse(output.Investments))
}

// Get handles GET /investments/:id requests.
func (c *InvestmentController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	investmentID, ok := pathID(ctx, "investment")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), investment.GetInvestmentInput{
		InvestmentID: investmentID,
		UserID:       userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvestmentResponse(output.Investment))
}

// Create handles POST /investments requests.
func (c *InvestmentController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateInvestmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingInvestmentFields))
		return
	}

	input, err := createInvestmentInput(userID, req)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvestmentResponse(output.Investment))
}

func createInvestmentInput(userID uuid.UUID, req dto.CreateInvestmentRequest) (investment.CreateInvestmentInput, error) {
	input := investment.CreateInvestmentInput{
		UserID:      userID,
		Description: req.Description,
		Recurrence:  bool(req.Recurrence),
	}

	var err error
	if input.Value, err = req.Value.Money(); err != nil {
		return input, err
	}
	if input.Date, err = dto.ParseDate(req.Date); err != nil {
		return input, err
	}
	if input.Rate, err = req.Rate.Float(); err != nil {
		return input, err
	}
	if input.Entrance, err = req.Entrance.Money(); err != nil {
		return input, err
	}
	if input.RecurrenceAdd, err = req.RecurrenceAdd.MoneyOr(valueobject.ZeroMoney()); err != nil {
		return input, err
	}
	if input.MonthsDuration, err = req.MonthsDuration.Int(); err != nil {
		return input, err
	}
	return input, nil
}

// UpdateDescription handles PATCH /investments/:id/description requests.
func (c *InvestmentController) UpdateDescription(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateInvestmentRequest, input *investment.UpdateInvestmentInput) error {
		if req.Description == nil {
			return missingInvestmentField("description")
		}
		input.Description = req.Description
		return nil
	})
}

// UpdateValue handles PATCH /investments/:id/value requests.
func (c *InvestmentController) UpdateValue(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateInvestmentRequest, input *investment.UpdateInvestmentInput) error {
		value, err := moneyField(req.Value, "value")
		input.Value = value
		return err
	})
}

// UpdateDate handles PATCH /investments/:id/date requests.
func (c *InvestmentController) UpdateDate(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateInvestmentRequest, input *investment.UpdateInvestmentInput) error {
		if req.Date == nil {
			return missingInvestmentField("date")
		}
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return err
		}
		input.Date = &date
		return nil
	})
}

// UpdateRecurrence handles PATCH /investments/:id/recurrence requests.
func (c *InvestmentController) UpdateRecurrence(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateInvestmentRequest, input *investment.UpdateInvestmentInput) error {
		if req.Recurrence == nil {
			return missingInvestmentField("recurrence")
		}
		recurrence := bool(*req.Recurrence)
		input.Recurrence = &recurrence
		return nil
	})
}

// UpdateRate handles PATCH /investments/:id/rate requests.
func (c *InvestmentController) UpdateRate(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateInvestmentRequest, input *investment.UpdateInvestmentInput) error {
		if req.Rate == nil {
			return missingInvestmentField("rate")
		}
		rate, err := req.Rate.Float()
		if err != nil {
			return err
		}
		input.Rate = &rate
		return nil
	})
}

// UpdateEntrance handles PATCH /investments/:id/entrance requests.
func (c *InvestmentController) UpdateEntrance(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateInvestmentRequest, input *investment.UpdateInvestmentInput) error {
		entrance, err := moneyField(req.Entrance, "entrance")
		input.Entrance = entrance
		return err
	})
}

// UpdateRecurrenceAdd handles PATCH /investments/:id/recurrence-add requests.
func (c *InvestmentController) UpdateRecurrenceAdd(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateInvestmentRequest, input *investment.UpdateInvestmentInput) error {
		add, err := moneyField(req.RecurrenceAdd, "recurrenceAdd")
		input.RecurrenceAdd = add
		return err
	})
}

// UpdateMonthsDuration handles PATCH /investments/:id/months-duration requests.
func (c *InvestmentController) UpdateMonthsDuration(ctx *gin.Context) {
	c.update(ctx, func(req dto.UpdateInvestmentRequest, input *investment.UpdateInvestmentInput) error {
		if req.MonthsDuration == nil {
			return missingInvestmentField("monthsDuration")
		}
		months, err := req.MonthsDuration.Int()
		if err != nil {
			return err
		}
		input.MonthsDuration = &months
		return nil
	})
}

func (c *InvestmentController) update(
	ctx *gin.Context,
	set func(dto.UpdateInvestmentRequest, *investment.UpdateInvestmentInput) error,
) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	investmentID, ok := pathID(ctx, "investment")
	if !ok {
		return
	}

	var req dto.UpdateInvestmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingInvestmentFields))
		return
	}

	input := investment.UpdateInvestmentInput{
		InvestmentID: investmentID,
		UserID:       userID,
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

	ctx.JSON(http.StatusOK, dto.ToInvestmentResponse(output.Investment))
}

// Delete handles DELETE /investments/:id requests.
func (c *InvestmentController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	investmentID, ok := pathID(ctx, "investment")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), investment.DeleteInvestmentInput{
		InvestmentID: investmentID,
		UserID:       userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Valuation handles GET /investments/:id/valuation requests.
// With ?date=YYYY-MM-DD the position is valued on that date; otherwise
// ?at=now (default) or ?at=horizon. The body is the bare, unrounded value.
func (c *InvestmentController) Valuation(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	investmentID, ok := pathID(ctx, "investment")
	if !ok {
		return
	}

	input := investment.ValuationInput{
		InvestmentID: investmentID,
		UserID:       userID,
		Mode:         investment.ValuationMode(ctx.DefaultQuery("at", string(investment.ValuationNow))),
	}
	if raw := ctx.Query("date"); raw != "" {
		date, err := dto.ParseDate(raw)
		if err != nil {
			handleDomainError(ctx, err)
			return
		}
		input.Mode = investment.ValuationOnDate
		input.Date = date
	}

	output, err := c.valuationUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	if !isFinite(output.Value) {
		valuationOutOfRange(ctx)
		return
	}

	ctx.JSON(http.StatusOK, output.Value)
}

// Projection handles GET /investments/:id/projection requests.
// ?months= defaults to the planned duration of the investment.
func (c *InvestmentController) Projection(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	investmentID, ok := pathID(ctx, "investment")
	if !ok {
		return
	}

	input := investment.ProjectionInput{
		InvestmentID: investmentID,
		UserID:       userID,
	}
	if raw := ctx.Query("months"); raw != "" {
		months, err := dto.Numeric(raw).Int()
		if err != nil {
			handleDomainError(ctx, err)
			return
		}
		input.Months = &months
	}

	output, err := c.projectionUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	for _, point := range output.Points {
		if !isFinite(point.Value) {
			valuationOutOfRange(ctx)
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.ProjectionResponse{
		InvestmentID: output.Investment.ID.String(),
		Points:       output.Points,
	})
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// valuationOutOfRange answers for values JSON cannot encode.
func valuationOutOfRange(ctx *gin.Context) {
	ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
		Error: "valuation is out of the representable range",
		Code:  string(domainerror.ErrCodeValuationOutOfRange),
	})
}

func moneyField(n *dto.Numeric, field string) (*valueobject.Money, error) {
	if n == nil {
		return nil, missingInvestmentField(field)
	}
	m, err := n.Money()
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func missingInvestmentField(field string) error {
	return domainerror.NewInvestmentError(
		domainerror.ErrCodeMissingInvestmentFields,
		field+" is required",
		domainerror.ErrInvalidArgument,
	)
}
