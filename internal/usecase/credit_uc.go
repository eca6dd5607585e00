package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"homestyle-ai/internal/domain"
	"homestyle-ai/internal/domain/model"
	"homestyle-ai/internal/domain/ports/repository"
	"homestyle-ai/internal/infra/metrics"
	"homestyle-ai/internal/infra/worker"
)

// Compile-time check
var _ CreditUseCase = (*creditUC)(nil)

// CreditUseCase fronts the external credit store. Reads are synchronous;
// writes triggered by chat activity happen optimistically on the engine's
// local state and are propagated here as fire-and-forget tasks. A failed
// propagation is a reconciliation concern, never a rollback.
type CreditUseCase interface {
	Balance(ctx context.Context, userID string) (int, error)
	// Sync pushes the new balance plus a ledger entry to the store in the
	// background. It never blocks the caller and never reports an error.
	Sync(userID string, credits int, action string, delta int)
}

// TaskRunner is the slice of the worker pool the use case needs.
type TaskRunner interface {
	Submit(task worker.Task) error
}

type creditUC struct {
	repo repository.CreditRepository
	run  TaskRunner
	log  *zerolog.Logger
}

func NewCreditUseCase(repo repository.CreditRepository, run TaskRunner, logger *zerolog.Logger) *creditUC {
	return &creditUC{repo: repo, run: run, log: logger}
}

// Balance reads the stored balance, backfilling the signup grant for users
// the store has never seen.
func (c *creditUC) Balance(ctx context.Context, userID string) (int, error) {
	credits, err := c.repo.GetCredits(ctx, repository.NoTX, userID)
	if err == nil {
		return credits, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}

	if err := c.repo.SetCredits(ctx, repository.NoTX, userID, model.SignupCredits); err != nil {
		return 0, err
	}
	entry := &model.CreditTransaction{
		UserID:    userID,
		Action:    model.CreditActionSignup,
		Delta:     model.SignupCredits,
		CreatedAt: time.Now(),
	}
	if err := c.repo.AppendLedger(ctx, repository.NoTX, entry); err != nil {
		c.log.Warn().Str("user_id", userID).Err(err).Msg("signup ledger append failed")
	}
	return model.SignupCredits, nil
}

func (c *creditUC) Sync(userID string, credits int, action string, delta int) {
	task := func(ctx context.Context) error {
		if err := c.repo.SetCredits(ctx, repository.NoTX, userID, credits); err != nil {
			c.reconcile(userID, action, err)
			return nil
		}
		entry := &model.CreditTransaction{
			UserID:    userID,
			Action:    action,
			Delta:     delta,
			CreatedAt: time.Now(),
		}
		if err := c.repo.AppendLedger(ctx, repository.NoTX, entry); err != nil {
			c.reconcile(userID, action, err)
		}
		return nil
	}
	if err := c.run.Submit(task); err != nil {
		c.reconcile(userID, action, err)
	}
}

// reconcile logs a propagation failure. Local engine state stays as-is:
// the product favors the chat experience over strict billing consistency.
func (c *creditUC) reconcile(userID, action string, err error) {
	metrics.CreditSyncFailed(action)
	c.log.Error().
		Str("user_id", userID).
		Str("action", action).
		Err(err).
		Msg("credit store out of sync; reconcile")
}
