package dto

import (
	"time"

	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Label string `json:"label" binding:"required"`
	Type  string `json:"type" binding:"required"`
}

// UpdateCategoryLabelRequest represents the request body for renaming a category.
type UpdateCategoryLabelRequest struct {
	Label string `json:"label" binding:"required"`
}

// UpdateCategoryTypeRequest represents the request body for retyping a category.
type UpdateCategoryTypeRequest struct {
	Type string `json:"type" binding:"required"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Type      string    `json:"type"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// CategorySuggestionResponse is a category close to a queried label.
type CategorySuggestionResponse struct {
	Category CategoryResponse `json:"category"`
	Distance int              `json:"distance"`
}

// CategorySuggestionListResponse represents the response for label suggestions.
type CategorySuggestionListResponse struct {
	Suggestions []CategorySuggestionResponse `json:"suggestions"`
}

// ToCategoryResponse converts a domain category to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.TransactionCategory) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID.String(),
		Label:     cat.Label,
		Type:      string(cat.Type),
		UserID:    cat.UserID.String(),
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of categories to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.TransactionCategory) CategoryListResponse {
	items := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		items[i] = ToCategoryResponse(cat)
	}
	return CategoryListResponse{
		Categories: items,
	}
}

// ToCategorySuggestionListResponse converts label suggestions to their DTO.
func ToCategorySuggestionListResponse(suggestions []category.CategorySuggestion) CategorySuggestionListResponse {
	items := make([]CategorySuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		items[i] = CategorySuggestionResponse{
			Category: ToCategoryResponse(s.Category),
			Distance: s.Distance,
		}
	}
	return CategorySuggestionListResponse{
		Suggestions: items,
	}
}
