package dto

import (
	"time"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// CreateTransactionRequest represents the request body for transaction creation.
// The category is given by CategoryID, or by CategoryLabel and CategoryType.
type CreateTransactionRequest struct {
	Description   string   `json:"description" binding:"max=255"`
	Value         Numeric  `json:"value" binding:"required"`
	Date          string   `json:"date" binding:"required"`
	Recurrence    BoolLike `json:"recurrence"`
	CategoryID    *string  `json:"categoryId,omitempty"`
	CategoryLabel string   `json:"categoryLabel,omitempty"`
	CategoryType  string   `json:"categoryType,omitempty"`
}

// UpdateTransactionRequest carries one edited field. Each PATCH route reads
// only the field it is named after.
type UpdateTransactionRequest struct {
	Description *string   `json:"description,omitempty"`
	Value       *Numeric  `json:"value,omitempty"`
	Date        *string   `json:"date,omitempty"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	Recurrence  *BoolLike `json:"recurrence,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Value       valueobject.Money `json:"value"`
	Date        string            `json:"date"`
	Recurrence  bool              `json:"recurrence"`
	CategoryID  string            `json:"categoryId"`
	Category    *CategoryResponse `json:"category,omitempty"`
	UserID      string            `json:"userId"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// CreateTransactionResponse adds whether the category was created on the fly.
type CreateTransactionResponse struct {
	TransactionResponse
	CategoryCreated bool `json:"categoryCreated"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain transaction to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID.String(),
		Description: t.Description,
		Value:       t.Value,
		Date:        FormatDate(t.Date),
		Recurrence:  t.Recurrence,
		CategoryID:  t.CategoryID.String(),
		UserID:      t.UserID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Category != nil {
		cat := ToCategoryResponse(t.Category)
		resp.Category = &cat
	}
	return resp
}

// ToTransactionListResponse converts a list of transactions to a TransactionListResponse.
func ToTransactionListResponse(transactions []*entity.Transaction) TransactionListResponse {
	items := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		items[i] = ToTransactionResponse(t)
	}
	return TransactionListResponse{
		Transactions: items,
	}
}
