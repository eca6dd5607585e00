package repository

import (
	"context"

	"homestyle-ai/internal/domain/model"
)

// -----------------------------
// Credits
// -----------------------------

type CreditRepository interface {
	GetCredits(ctx context.Context, tx Tx, userID string) (int, error)
	SetCredits(ctx context.Context, tx Tx, userID string, credits int) error
	AppendLedger(ctx context.Context, tx Tx, entry *model.CreditTransaction) error
}
