package dto

import (
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valuation"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// CreateInvestmentRequest represents the request body for investment creation.
type CreateInvestmentRequest struct {
	Description    string   `json:"description" binding:"max=255"`
	Value          Numeric  `json:"value" binding:"required"`
	Date           string   `json:"date" binding:"required"`
	Recurrence     BoolLike `json:"recurrence"`
	Rate           Numeric  `json:"rate" binding:"required"`
	Entrance       Numeric  `json:"entrance" binding:"required"`
	RecurrenceAdd  Numeric  `json:"recurrenceAdd"`
	MonthsDuration Numeric  `json:"monthsDuration" binding:"required"`
}

// UpdateInvestmentRequest carries one edited field. Each PATCH route reads
// only the field it is named after.
type UpdateInvestmentRequest struct {
	Description    *string   `json:"description,omitempty"`
	Value          *Numeric  `json:"value,omitempty"`
	Date           *string   `json:"date,omitempty"`
	Recurrence     *BoolLike `json:"recurrence,omitempty"`
	Rate           *Numeric  `json:"rate,omitempty"`
	Entrance       *Numeric  `json:"entrance,omitempty"`
	RecurrenceAdd  *Numeric  `json:"recurrenceAdd,omitempty"`
	MonthsDuration *Numeric  `json:"monthsDuration,omitempty"`
}

// InvestmentResponse represents a single investment in API responses.
type InvestmentResponse struct {
	TransactionResponse
	Rate           float64           `json:"rate"`
	Entrance       valueobject.Money `json:"entrance"`
	RecurrenceAdd  valueobject.Money `json:"recurrenceAdd"`
	MonthsDuration int               `json:"monthsDuration"`
}

// InvestmentListResponse represents the response for listing investments.
type InvestmentListResponse struct {
	Investments []InvestmentResponse `json:"investments"`
}

// ProjectionResponse is the month-by-month value series of an investment.
type ProjectionResponse struct {
	InvestmentID string            `json:"investmentId"`
	Points       []valuation.Point `json:"points"`
}

// ToInvestmentResponse converts a domain investment to an InvestmentResponse DTO.
func ToInvestmentResponse(inv *entity.Investment) InvestmentResponse {
	return InvestmentResponse{
		TransactionResponse: ToTransactionResponse(&inv.Transaction),
		Rate:                inv.Rate,
		Entrance:            inv.Entrance,
		RecurrenceAdd:       inv.RecurrenceAdd,
		MonthsDuration:      inv.MonthsDuration,
	}
}

// ToInvestmentListResponse converts a list of investments to an InvestmentListResponse.
func ToInvestmentListResponse(investments []*entity.Investment) InvestmentListResponse {
	items := make([]InvestmentResponse, len(investments))
	for i, inv := range investments {
		items[i] = ToInvestmentResponse(inv)
	}
	return InvestmentListResponse{
		Investments: items,
	}
}
