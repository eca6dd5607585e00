package usecase

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"homestyle-ai/internal/config"
	"homestyle-ai/internal/domain"
	"homestyle-ai/internal/domain/model"
	"homestyle-ai/internal/domain/ports/repository"
	"homestyle-ai/internal/infra/logging"
	"homestyle-ai/internal/infra/metrics"
)

// EngineState is the consultant engine's send/receive phase. Blocked is not
// a phase: it is derived from the quota snapshot and only gates new sends.
type EngineState string

const (
	StateIdle      EngineState = "idle"
	StateAwaiting  EngineState = "awaiting_response"
	StateStreaming EngineState = "streaming"
)

// Snapshot is the view the presentation shell renders from.
type Snapshot struct {
	SessionID         string              `json:"sessionId"`
	Messages          []model.ChatMessage `json:"messages"`
	StreamingText     string              `json:"streamingText"`
	IsStreaming       bool                `json:"isStreaming"`
	State             EngineState         `json:"state"`
	Blocked           bool                `json:"blocked"`
	ShowCreditsPrompt bool                `json:"showCreditsPrompt"`
	Credits           int                 `json:"credits"`
	DailyCount        int                 `json:"dailyCount"`
	DailyMax          int                 `json:"dailyMax"`
}

// ConsultantEngine drives one user's conversation: ordered messages, the
// simulated token-by-token reveal, the per-day quota and the persisted
// history. Single-writer: every mutation happens under mu, and the reveal
// ticker plus the delayed credits prompt are cancellable tasks the engine
// owns.
type ConsultantEngine struct {
	mu sync.Mutex

	userID  string
	session *model.ChatSession
	state   EngineState
	reveal  string // revealed prefix of the in-flight response
	prompt  bool   // out-of-credits prompt visible
	quota   model.CreditState

	history  repository.ChatHistoryRepository
	counters repository.DailyCounterRepository
	credits  CreditUseCase
	cfg      config.ChatConfig
	log      *zerolog.Logger

	responses []string
	pick      func(n int) int
	now       func() time.Time

	// gen invalidates timers and the reveal loop of superseded operations.
	gen         uint64
	respTimer   *time.Timer
	promptTimer *time.Timer
	closed      bool
}

// NewConsultantEngine loads the quota snapshot (credits from the store, day
// count from the day-scoped counter keyed by the current local date, which
// is also the once-per-init daily reset) and starts Idle with no session.
func NewConsultantEngine(
	ctx context.Context,
	userID string,
	history repository.ChatHistoryRepository,
	counters repository.DailyCounterRepository,
	credits CreditUseCase,
	cfg config.ChatConfig,
	logger *zerolog.Logger,
) (*ConsultantEngine, error) {
	balance, err := credits.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	day := model.DayKey(time.Now())
	count, err := counters.Load(ctx, userID, day)
	if err != nil {
		logger.Warn().Str("user_id", userID).Err(err).Msg("day counter load failed; assuming zero")
		count = 0
	}

	e := &ConsultantEngine{
		userID:    userID,
		state:     StateIdle,
		quota:     model.CreditState{Credits: balance, DailyCount: count, DayMarker: day},
		history:   history,
		counters:  counters,
		credits:   credits,
		cfg:       cfg,
		log:       logger,
		responses: consultantResponses,
		pick:      rand.Intn,
		now:       time.Now,
	}
	return e, nil
}

// SendMessage accepts one user message. The defined no-op cases come back
// as sentinel errors (ErrEmptyMessage, ErrInsufficientCredits,
// ErrDailyLimitReached) so the transport can map them; none of them mutate
// engine state beyond raising the out-of-credits prompt.
func (e *ConsultantEngine) SendMessage(ctx context.Context, text string) error {
	defer logging.TraceDuration(e.log, "ConsultantEngine.SendMessage")()

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrEmptyMessage
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return domain.ErrNotFound
	}

	if e.quota.Credits <= 0 {
		e.prompt = true
		metrics.SendBlocked("credits")
		return domain.ErrInsufficientCredits
	}
	if e.quota.DailyCount >= model.DailyMessageMax {
		e.prompt = true
		metrics.SendBlocked("daily")
		return domain.ErrDailyLimitReached
	}

	// A fresh send supersedes any in-flight reveal.
	e.cancelPendingLocked()

	if e.session == nil {
		e.session = model.NewChatSession(uuid.NewString(), e.userID)
	}
	e.session.Append(model.ChatMessage{
		ID:        ulid.Make().String(),
		Text:      text,
		IsUser:    true,
		CreatedAt: e.now(),
	})
	metrics.MessageAppended("user")
	e.persistLocked(ctx)

	e.quota.Credits--
	e.quota.DailyCount++
	if err := e.counters.Store(ctx, e.userID, e.quota.DayMarker, e.quota.DailyCount); err != nil {
		e.log.Warn().Str("user_id", e.userID).Err(err).Msg("day counter store failed")
	}
	e.credits.Sync(e.userID, e.quota.Credits, model.CreditActionChat, -1)

	gen := e.gen
	if e.quota.Credits == 0 {
		// The prompt fires on its own delay so it never holds up the
		// response pipeline.
		e.promptTimer = time.AfterFunc(e.cfg.CreditsPromptDelay, func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if e.gen == gen && !e.closed {
				e.prompt = true
			}
		})
	}

	e.state = StateAwaiting
	response := e.responses[e.pick(len(e.responses))]
	e.respTimer = time.AfterFunc(e.cfg.ResponseDelay, func() {
		e.startStream(gen, response)
	})
	return nil
}

// startStream moves Awaiting -> Streaming and runs the reveal loop in its
// own goroutine. Each tick strictly extends the revealed prefix by one
// rune; completion appends the full text as an immutable assistant message.
func (e *ConsultantEngine) startStream(gen uint64, full string) {
	e.mu.Lock()
	if e.gen != gen || e.closed {
		e.mu.Unlock()
		return
	}
	e.state = StateStreaming
	e.reveal = ""
	e.mu.Unlock()

	go func() {
		start := time.Now()
		runes := []rune(full)
		ticker := time.NewTicker(e.cfg.TickInterval)
		defer ticker.Stop()

		for i := 1; i <= len(runes); i++ {
			<-ticker.C
			e.mu.Lock()
			if e.gen != gen || e.closed {
				e.mu.Unlock()
				metrics.StreamCancelled()
				return
			}
			e.reveal = string(runes[:i])
			e.mu.Unlock()
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		if e.gen != gen || e.closed {
			metrics.StreamCancelled()
			return
		}
		e.session.Append(model.ChatMessage{
			ID:        ulid.Make().String(),
			Text:      full,
			IsUser:    false,
			CreatedAt: e.now(),
		})
		metrics.MessageAppended("assistant")
		metrics.ObserveStreamDuration(time.Since(start).Milliseconds())
		e.persistLocked(context.Background())
		e.reveal = ""
		e.state = StateIdle
	}()
}

// NewChat clears the current conversation. The current session was already
// persisted on every append, so only the transient state needs tearing down.
func (e *ConsultantEngine) NewChat(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.session.Empty() {
		e.persistLocked(ctx)
	}
	e.cancelPendingLocked()
	e.session = nil
	e.reveal = ""
	e.state = StateIdle
}

// SelectChat swaps in a stored session. An unknown id is a silent no-op.
func (e *ConsultantEngine) SelectChat(ctx context.Context, sessionID string) error {
	s, err := e.history.Find(ctx, e.userID, sessionID)
	if err != nil || s == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelPendingLocked()
	e.session = s
	e.reveal = ""
	e.state = StateIdle
	return nil
}

// DeleteChat removes a session from history; deleting the current session
// also clears it (same as NewChat).
func (e *ConsultantEngine) DeleteChat(ctx context.Context, sessionID string) error {
	if err := e.history.Delete(ctx, e.userID, sessionID); err != nil {
		e.log.Warn().Str("session_id", sessionID).Err(err).Msg("history delete failed")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil && e.session.ID == sessionID {
		e.cancelPendingLocked()
		e.session = nil
		e.reveal = ""
		e.state = StateIdle
	}
	return nil
}

// History lists stored sessions, most recently updated first.
func (e *ConsultantEngine) History(ctx context.Context) ([]model.ChatSessionSummary, error) {
	sessions, err := e.history.List(ctx, e.userID)
	if err != nil {
		return nil, err
	}
	out := make([]model.ChatSessionSummary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Summary())
	}
	return out, nil
}

// Referral applies the refer-a-friend reward: balance back to the daily
// maximum, day count cleared, prompt closed. Propagation is fire-and-forget.
func (e *ConsultantEngine) Referral(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.quota.Credits = model.DailyMessageMax
	e.quota.DailyCount = 0
	e.prompt = false
	if err := e.counters.Store(ctx, e.userID, e.quota.DayMarker, 0); err != nil {
		e.log.Warn().Str("user_id", e.userID).Err(err).Msg("day counter reset failed")
	}
	e.credits.Sync(e.userID, e.quota.Credits, model.CreditActionReferral, model.DailyMessageMax)
}

// DismissCreditsPrompt closes the out-of-credits prompt without rewarding.
func (e *ConsultantEngine) DismissCreditsPrompt() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prompt = false
}

// Snapshot returns a consistent copy of the renderable state.
func (e *ConsultantEngine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		StreamingText:     e.reveal,
		IsStreaming:       e.state == StateStreaming,
		State:             e.state,
		Blocked:           !e.quota.CanSend(),
		ShowCreditsPrompt: e.prompt,
		Credits:           e.quota.Credits,
		DailyCount:        e.quota.DailyCount,
		DailyMax:          model.DailyMessageMax,
	}
	if e.session != nil {
		snap.SessionID = e.session.ID
		snap.Messages = append([]model.ChatMessage(nil), e.session.Messages...)
	} else {
		snap.Messages = []model.ChatMessage{}
	}
	return snap
}

// Close cancels all pending timers and the reveal loop. The engine rejects
// further sends afterwards; used when the owning view unmounts.
func (e *ConsultantEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelPendingLocked()
	e.closed = true
}

// cancelPendingLocked bumps the generation and stops both timers. The
// reveal goroutine observes the bump on its next tick and exits without
// mutating anything; at most one reveal loop is live per generation.
func (e *ConsultantEngine) cancelPendingLocked() {
	e.gen++
	if e.respTimer != nil {
		e.respTimer.Stop()
		e.respTimer = nil
	}
	if e.promptTimer != nil {
		e.promptTimer.Stop()
		e.promptTimer = nil
	}
}

// persistLocked upserts the current session into history. Failures are
// logged and swallowed: history is best-effort local persistence.
func (e *ConsultantEngine) persistLocked(ctx context.Context) {
	if e.session.Empty() {
		return
	}
	if err := e.history.Upsert(ctx, e.userID, e.session); err != nil {
		e.log.Warn().Str("session_id", e.session.ID).Err(err).Msg("history upsert failed")
	}
}
