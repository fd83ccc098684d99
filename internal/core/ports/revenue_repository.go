package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/revenue"
)

// RevenueRepository persists the process-wide revenue ledger.
type RevenueRepository interface {
	// Get returns the current ledger; a store with no ledger yet yields a zero one.
	Get(ctx context.Context) (revenue.Ledger, error)

	// GetForUpdate is Get holding a row lock until the transaction ends.
	GetForUpdate(ctx context.Context) (revenue.Ledger, error)

	Save(ctx context.Context, ledger revenue.Ledger) error
}
