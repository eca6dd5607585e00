package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"homestyle-ai/internal/config"
	"homestyle-ai/internal/domain/ports/repository"
)

// Compile-time check
var _ ConsultantUseCase = (*consultantUC)(nil)

// ConsultantUseCase hands out one engine per user. Engines are created on
// first touch (which also performs the daily-reset check) and live for the
// process lifetime; a single browsing session per account is assumed.
type ConsultantUseCase interface {
	Engine(ctx context.Context, userID string) (*ConsultantEngine, error)
}

type consultantUC struct {
	history  repository.ChatHistoryRepository
	counters repository.DailyCounterRepository
	credits  CreditUseCase
	cfg      config.ChatConfig
	log      *zerolog.Logger

	mu      sync.Mutex
	engines map[string]*ConsultantEngine
}

func NewConsultantUseCase(
	history repository.ChatHistoryRepository,
	counters repository.DailyCounterRepository,
	credits CreditUseCase,
	cfg config.ChatConfig,
	logger *zerolog.Logger,
) *consultantUC {
	return &consultantUC{
		history:  history,
		counters: counters,
		credits:  credits,
		cfg:      cfg,
		log:      logger,
		engines:  make(map[string]*ConsultantEngine),
	}
}

func (c *consultantUC) Engine(ctx context.Context, userID string) (*ConsultantEngine, error) {
	c.mu.Lock()
	if e, ok := c.engines[userID]; ok {
		c.mu.Unlock()
		return e, nil
	}
	c.mu.Unlock()

	// Engine init reads the credit store; keep that outside the map lock.
	e, err := NewConsultantEngine(ctx, userID, c.history, c.counters, c.credits, c.cfg, c.log)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.engines[userID]; ok {
		e.Close()
		return existing, nil
	}
	c.engines[userID] = e
	return e, nil
}

// Shutdown closes every live engine.
func (c *consultantUC) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.engines {
		e.Close()
	}
}
