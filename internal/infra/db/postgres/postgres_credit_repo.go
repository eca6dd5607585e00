package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"homestyle-ai/internal/domain"
	"homestyle-ai/internal/domain/model"
	"homestyle-ai/internal/domain/ports/repository"
)

var _ repository.CreditRepository = (*creditRepo)(nil)

// creditRepo is the external credit store: one balance row per user plus an
// append-only transaction ledger.
type creditRepo struct{ pool *pgxpool.Pool }

func NewCreditRepo(pool *pgxpool.Pool) *creditRepo {
	return &creditRepo{pool: pool}
}

func (r *creditRepo) GetCredits(ctx context.Context, tx repository.Tx, userID string) (int, error) {
	const q = `SELECT credits FROM user_credits WHERE user_id = $1;`
	var credits int
	if err := pickRow(ctx, r.pool, tx, q, userID).Scan(&credits); err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get credits: %w", err)
	}
	return credits, nil
}

func (r *creditRepo) SetCredits(ctx context.Context, tx repository.Tx, userID string, credits int) error {
	if credits < 0 {
		return domain.ErrInvalidArgument
	}
	const q = `
INSERT INTO user_credits (user_id, credits, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (user_id) DO UPDATE SET credits = EXCLUDED.credits, updated_at = NOW();`
	if _, err := execSQL(ctx, r.pool, tx, q, userID, credits); err != nil {
		return fmt.Errorf("set credits: %w", err)
	}
	return nil
}

func (r *creditRepo) AppendLedger(ctx context.Context, tx repository.Tx, entry *model.CreditTransaction) error {
	const q = `
INSERT INTO credit_transactions (user_id, action, credits, created_at)
VALUES ($1, $2, $3, COALESCE($4, NOW()));`
	if _, err := execSQL(ctx, r.pool, tx, q, entry.UserID, entry.Action, entry.Delta, entry.CreatedAt); err != nil {
		return fmt.Errorf("append ledger: %w", err)
	}
	return nil
}
