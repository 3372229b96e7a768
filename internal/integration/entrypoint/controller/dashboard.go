package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/dashboard"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getDataRangeUseCase           *dashboard.GetDataRangeUseCase
	getCategoryBreakdownUseCase   *dashboard.GetCategoryBreakdownUseCase
	getMonthlyTotalsUseCase       *dashboard.GetMonthlyTotalsUseCase
	getRecurrenceBreakdownUseCase *dashboard.GetRecurrenceBreakdownUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getDataRangeUseCase *dashboard.GetDataRangeUseCase,
	getCategoryBreakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
	getMonthlyTotalsUseCase *dashboard.GetMonthlyTotalsUseCase,
	getRecurrenceBreakdownUseCase *dashboard.GetRecurrenceBreakdownUseCase,
) *DashboardController {
	return &DashboardController{
		getDataRangeUseCase:           getDataRangeUseCase,
		getCategoryBreakdownUseCase:   getCategoryBreakdownUseCase,
		getMonthlyTotalsUseCase:       getMonthlyTotalsUseCase,
		getRecurrenceBreakdownUseCase: getRecurrenceBreakdownUseCase,
	}
}

// GetDataRange handles GET /dashboard/data-range requests.
func (c *DashboardController) GetDataRange(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getDataRangeUseCase.Execute(ctx.Request.Context(), dashboard.GetDataRangeInput{UserID: userID})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDataRangeResponse(output))
}

// GetCategoryBreakdown handles GET /dashboard/categories requests.
func (c *DashboardController) GetCategoryBreakdown(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	period, ok := parsePeriod(ctx)
	if !ok {
		return
	}

	output, err := c.getCategoryBreakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetCategoryBreakdownInput{
		UserID: userID,
		Period: period,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// GetMonthlyTotals handles GET /dashboard/monthly requests.
func (c *DashboardController) GetMonthlyTotals(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	period, ok := parsePeriod(ctx)
	if !ok {
		return
	}

	output, err := c.getMonthlyTotalsUseCase.Execute(ctx.Request.Context(), dashboard.GetMonthlyTotalsInput{
		UserID: userID,
		Period: period,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyTotalsResponse(output))
}

// GetRecurrenceBreakdown handles GET /dashboard/recurrence requests.
func (c *DashboardController) GetRecurrenceBreakdown(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	period, ok := parsePeriod(ctx)
	if !ok {
		return
	}

	output, err := c.getRecurrenceBreakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetRecurrenceBreakdownInput{
		UserID: userID,
		Period: period,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurrenceBreakdownResponse(output))
}

// parsePeriod reads the optional startDate and endDate query parameters.
func parsePeriod(ctx *gin.Context) (dashboard.Period, bool) {
	var period dashboard.Period
	var err error

	if period.StartDate, err = dto.ParseOptionalDate(ctx.Query("startDate")); err != nil {
		badRequest(ctx, "startDate must be a date (YYYY-MM-DD)", string(domainerror.ErrCodeInvalidDateFormat))
		return period, false
	}
	if period.EndDate, err = dto.ParseOptionalDate(ctx.Query("endDate")); err != nil {
		badRequest(ctx, "endDate must be a date (YYYY-MM-DD)", string(domainerror.ErrCodeInvalidDateFormat))
		return period, false
	}
	return period, true
}
