package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/dashboard"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// DataRangeResponse represents the response for the data range API.
type DataRangeResponse struct {
	OldestDate   *string `json:"oldestDate"`
	NewestDate   *string `json:"newestDate"`
	TotalEntries int     `json:"totalEntries"`
	HasData      bool    `json:"hasData"`
}

// TotalsResponse holds the per-type sums of a set of entries.
type TotalsResponse struct {
	Cost       valueobject.Money `json:"cost"`
	Gain       valueobject.Money `json:"gain"`
	Investment valueobject.Money `json:"investment"`
	Net        valueobject.Money `json:"net"`
	Count      int               `json:"count"`
}

// CategoryTotalResponse is the sum of one category over the period.
type CategoryTotalResponse struct {
	CategoryID string            `json:"categoryId"`
	Label      string            `json:"label"`
	Type       string            `json:"type"`
	Total      valueobject.Money `json:"total"`
	Count      int               `json:"count"`
	Percentage float64           `json:"percentage"`
}

// CategoryBreakdownResponse represents the response for the per-category view.
type CategoryBreakdownResponse struct {
	Categories []CategoryTotalResponse `json:"categories"`
	Totals     TotalsResponse          `json:"totals"`
}

// MonthTotalResponse holds the totals of one calendar month.
type MonthTotalResponse struct {
	Month string `json:"month"`
	TotalsResponse
}

// MonthlyTotalsResponse represents the response for the per-month view.
type MonthlyTotalsResponse struct {
	Months []MonthTotalResponse `json:"months"`
}

// RecurringItemResponse groups recurring entries sharing a description.
type RecurringItemResponse struct {
	Description string            `json:"description"`
	Type        string            `json:"type"`
	Total       valueobject.Money `json:"total"`
	Count       int               `json:"count"`
}

// RecurrenceBreakdownResponse represents the response for the recurrence view.
type RecurrenceBreakdownResponse struct {
	Recurring TotalsResponse          `json:"recurring"`
	OneOff    TotalsResponse          `json:"oneOff"`
	Items     []RecurringItemResponse `json:"items"`
}

// ToDataRangeResponse converts a GetDataRangeOutput to its DTO.
func ToDataRangeResponse(output *dashboard.GetDataRangeOutput) DataRangeResponse {
	resp := DataRangeResponse{
		TotalEntries: output.TotalEntries,
		HasData:      output.HasData,
	}
	if output.OldestDate != nil {
		oldest := FormatDate(*output.OldestDate)
		resp.OldestDate = &oldest
	}
	if output.NewestDate != nil {
		newest := FormatDate(*output.NewestDate)
		resp.NewestDate = &newest
	}
	return resp
}

// ToTotalsResponse converts dashboard totals to their DTO.
func ToTotalsResponse(t dashboard.Totals) TotalsResponse {
	return TotalsResponse{
		Cost:       money(t.Cost),
		Gain:       money(t.Gain),
		Investment: money(t.Investment),
		Net:        money(t.Net()),
		Count:      t.Count,
	}
}

// ToCategoryBreakdownResponse converts a GetCategoryBreakdownOutput to its DTO.
func ToCategoryBreakdownResponse(output *dashboard.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	categories := make([]CategoryTotalResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryTotalResponse{
			CategoryID: c.CategoryID.String(),
			Label:      c.Label,
			Type:       string(c.Type),
			Total:      money(c.Total),
			Count:      c.Count,
			Percentage: c.Percentage,
		}
	}
	return CategoryBreakdownResponse{
		Categories: categories,
		Totals:     ToTotalsResponse(output.Totals),
	}
}

// ToMonthlyTotalsResponse converts a GetMonthlyTotalsOutput to its DTO.
func ToMonthlyTotalsResponse(output *dashboard.GetMonthlyTotalsOutput) MonthlyTotalsResponse {
	months := make([]MonthTotalResponse, len(output.Months))
	for i, m := range output.Months {
		months[i] = MonthTotalResponse{
			Month:          m.Month.Format("2006-01"),
			TotalsResponse: ToTotalsResponse(m.Totals),
		}
	}
	return MonthlyTotalsResponse{
		Months: months,
	}
}

// ToRecurrenceBreakdownResponse converts a GetRecurrenceBreakdownOutput to its DTO.
func ToRecurrenceBreakdownResponse(output *dashboard.GetRecurrenceBreakdownOutput) RecurrenceBreakdownResponse {
	items := make([]RecurringItemResponse, len(output.Items))
	for i, item := range output.Items {
		items[i] = RecurringItemResponse{
			Description: item.Description,
			Type:        string(item.Type),
			Total:       money(item.Total),
			Count:       item.Count,
		}
	}
	return RecurrenceBreakdownResponse{
		Recurring: ToTotalsResponse(output.Recurring),
		OneOff:    ToTotalsResponse(output.OneOff),
		Items:     items,
	}
}

func money(d decimal.Decimal) valueobject.Money {
	return valueobject.NewMoney(d)
}
