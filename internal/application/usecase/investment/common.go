// Package investment contains investment-related use cases.
package investment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// findOwnedInvestment loads an investment and checks that userID owns it.
func findOwnedInvestment(ctx context.Context, repo adapter.InvestmentRepository, id, userID uuid.UUID) (*entity.Investment, error) {
	investment, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvestmentNotFound) {
			return nil, domainerror.NewInvestmentError(
				domainerror.ErrCodeInvestmentNotFound,
				"investment not found",
				domainerror.ErrInvestmentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find investment: %w", err)
	}

	if investment.UserID != userID {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeNotAuthorizedInvestment,
			"not authorized to access this investment",
			domainerror.ErrNotAuthorizedToModifyInvestment,
		)
	}
	return investment, nil
}

// guardOccurrence rejects the investment when another ledger entry of the
// same user shares its date, category and value.
func guardOccurrence(ctx context.Context, repo adapter.InvestmentRepository, investment *entity.Investment) error {
	candidate := investment.Occurrence()
	existing, err := repo.FindOccurrences(ctx, candidate.Key)
	if err != nil {
		return fmt.Errorf("failed to check duplicate investments: %w", err)
	}
	if err := entity.GuardOccurrence(candidate, existing); err != nil {
		slog.InfoContext(ctx, "Rejected duplicate investment",
			"userID", investment.UserID,
			"date", investment.Date.Format(entity.DateLayout),
			"value", investment.Value.String())
		return err
	}
	return nil
}

func wrapPersistError(action string, err error) error {
	if errors.Is(err, domainerror.ErrDuplicateTransaction) {
		return err
	}
	return fmt.Errorf("failed to %s investment: %w", action, err)
}

func event(eventType adapter.EventType, investment *entity.Investment) adapter.LedgerEvent {
	return adapter.LedgerEvent{
		Event:      eventType,
		EntityType: adapter.EntityInvestment,
		EntityID:   investment.ID,
		UserID:     investment.UserID,
		OccurredAt: investment.UpdatedAt,
	}
}
