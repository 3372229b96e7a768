package category

import (
	"context"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// MaxSuggestionDistance is the largest edit distance reported as similar.
const MaxSuggestionDistance = 2

// SuggestCategoriesInput represents the input for label suggestions.
type SuggestCategoriesInput struct {
	UserID       uuid.UUID
	Label        string
	CategoryType *entity.CategoryType
}

// CategorySuggestion is an existing category close to the queried label.
type CategorySuggestion struct {
	Category *entity.TransactionCategory
	Distance int
}

// SuggestCategoriesOutput represents the output of label suggestions.
type SuggestCategoriesOutput struct {
	Suggestions []CategorySuggestion
}

// SuggestCategoriesUseCase finds categories whose label is within a small
// edit distance of a label the user is about to create.
type SuggestCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewSuggestCategoriesUseCase creates a new SuggestCategoriesUseCase instance.
func NewSuggestCategoriesUseCase(categoryRepo adapter.CategoryRepository) *SuggestCategoriesUseCase {
	return &SuggestCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute returns the suggestions ordered by distance, then label.
func (uc *SuggestCategoriesUseCase) Execute(ctx context.Context, input SuggestCategoriesInput) (*SuggestCategoriesOutput, error) {
	query := entity.NormalizeLabel(input.Label)
	output := &SuggestCategoriesOutput{Suggestions: []CategorySuggestion{}}
	if query == "" {
		return output, nil
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID, input.CategoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	for _, category := range categories {
		distance := levenshtein.ComputeDistance(query, category.Label)
		if distance <= MaxSuggestionDistance {
			output.Suggestions = append(output.Suggestions, CategorySuggestion{
				Category: category,
				Distance: distance,
			})
		}
	}

	sort.SliceStable(output.Suggestions, func(i, j int) bool {
		a, b := output.Suggestions[i], output.Suggestions[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return a.Category.Label < b.Category.Label
	})

	return output, nil
}
