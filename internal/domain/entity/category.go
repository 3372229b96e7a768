// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CategoryType represents the direction of the money moved under a category.
type CategoryType string

const (
	CategoryTypeCost       CategoryType = "COST"
	CategoryTypeGain       CategoryType = "GAIN"
	CategoryTypeInvestment CategoryType = "INVESTMENT"
)

// InvestmentCategoryLabel is the label of the category created on demand for investments.
const InvestmentCategoryLabel = "Investment"

// MaxCategoryLabelLength is the maximum length of a normalized label.
const MaxCategoryLabelLength = 50

// CategoryTypes lists every valid category type.
var CategoryTypes = []CategoryType{CategoryTypeCost, CategoryTypeGain, CategoryTypeInvestment}

// IsValid reports whether t is one of the known category types.
func (t CategoryType) IsValid() bool {
	switch t {
	case CategoryTypeCost, CategoryTypeGain, CategoryTypeInvestment:
		return true
	}
	return false
}

// ParseCategoryType parses a category type, ignoring case and surrounding spaces.
func ParseCategoryType(s string) (CategoryType, error) {
	t := CategoryType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			fmt.Sprintf("category type must be one of COST, GAIN or INVESTMENT, got %q", s),
			domainerror.ErrInvalidArgument,
		)
	}
	return t, nil
}

// TransactionCategory is a typed label owned by a user.
type TransactionCategory struct {
	ID        uuid.UUID // uuid.Nil until persisted
	Label     string    // always normalized
	Type      CategoryType
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeLabel lower-cases and trims a label. Labels that normalize to the
// same string name the same category.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// NewTransactionCategory creates a new, not yet persisted category.
func NewTransactionCategory(label string, categoryType CategoryType, userID uuid.UUID) (*TransactionCategory, error) {
	if userID == uuid.Nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category owner is required",
			domainerror.ErrInvalidArgument,
		)
	}

	normalized, err := validateLabel(label)
	if err != nil {
		return nil, err
	}

	if !categoryType.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			fmt.Sprintf("category type must be one of COST, GAIN or INVESTMENT, got %q", categoryType),
			domainerror.ErrInvalidArgument,
		)
	}

	now := time.Now().UTC()
	return &TransactionCategory{
		Label:     normalized,
		Type:      categoryType,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename replaces the label of the category.
func (c *TransactionCategory) Rename(label string) error {
	normalized, err := validateLabel(label)
	if err != nil {
		return err
	}
	c.Label = normalized
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// ChangeType replaces the type of the category.
func (c *TransactionCategory) ChangeType(categoryType CategoryType) error {
	if !categoryType.IsValid() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			fmt.Sprintf("category type must be one of COST, GAIN or INVESTMENT, got %q", categoryType),
			domainerror.ErrInvalidArgument,
		)
	}
	c.Type = categoryType
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// IsPersisted reports whether the category has been assigned an id.
func (c *TransactionCategory) IsPersisted() bool {
	return c.ID != uuid.Nil
}

// Key returns the uniqueness key of the category.
func (c *TransactionCategory) Key() CategoryKey {
	return CategoryKey{UserID: c.UserID, Label: c.Label, Type: c.Type}
}

// CategoryKey is the (owner, normalized label, type) triple that identifies a category.
type CategoryKey struct {
	UserID uuid.UUID
	Label  string
	Type   CategoryType
}

// NewCategoryKey builds a key, normalizing the label.
func NewCategoryKey(userID uuid.UUID, label string, categoryType CategoryType) CategoryKey {
	return CategoryKey{UserID: userID, Label: NormalizeLabel(label), Type: categoryType}
}

// SameCategory reports whether two keys name the same category.
func SameCategory(a, b CategoryKey) bool {
	return a.UserID == b.UserID && NormalizeLabel(a.Label) == NormalizeLabel(b.Label) && a.Type == b.Type
}

// CheckCategoryUnique fails with a label conflict when any of existing, other
// than candidate itself, has the same key as candidate.
func CheckCategoryUnique(candidate *TransactionCategory, existing []*TransactionCategory) error {
	for _, other := range existing {
		if other == nil || (candidate.IsPersisted() && other.ID == candidate.ID) {
			continue
		}
		if SameCategory(candidate.Key(), other.Key()) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryLabelExists,
				fmt.Sprintf("category %q of type %s already exists", candidate.Label, candidate.Type),
				domainerror.ErrCategoryLabelExists,
			)
		}
	}
	return nil
}

func validateLabel(label string) (string, error) {
	normalized := NormalizeLabel(label)
	if normalized == "" {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeEmptyCategoryLabel,
			"category label is required",
			domainerror.ErrInvalidArgument,
		)
	}
	if len([]rune(normalized)) > MaxCategoryLabelLength {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryLabelTooLong,
			fmt.Sprintf("category label must be at most %d characters", MaxCategoryLabelLength),
			domainerror.ErrInvalidArgument,
		)
	}
	return normalized, nil
}
