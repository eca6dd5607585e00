// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sort"
	"sync"

	"homestyle-ai/internal/domain"
	"homestyle-ai/internal/domain/model"
	"homestyle-ai/internal/domain/ports/repository"
	"homestyle-ai/internal/infra/worker"
)

// memDesignRepo is a small in-memory catalog used by unit tests.
type memDesignRepo struct {
	mu      sync.RWMutex
	designs []model.DesignRecord
	loadErr error
}

func (m *memDesignRepo) FindAllPublished(ctx context.Context, tx repository.Tx) ([]model.DesignRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.DesignRecord, len(m.designs))
	copy(out, m.designs)
	return out, nil
}

func (m *memDesignRepo) Save(ctx context.Context, tx repository.Tx, d *model.DesignRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.designs = append(m.designs, *d)
	return nil
}

// memHistoryRepo mirrors the bounded history store contract: upsert keyed
// by session id, list by updated timestamp descending, cap of
// repository.HistoryCap with least-recently-updated eviction.
type memHistoryRepo struct {
	mu    sync.Mutex
	seq   int
	byKey map[string]*histEntry // userID + "/" + sessionID
}

type histEntry struct {
	seq     int
	session model.ChatSession
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{byKey: map[string]*histEntry{}}
}

func (m *memHistoryRepo) key(userID, id string) string { return userID + "/" + id }

func (m *memHistoryRepo) Upsert(ctx context.Context, userID string, s *model.ChatSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	cp := *s
	cp.Messages = append([]model.ChatMessage(nil), s.Messages...)
	m.byKey[m.key(userID, s.ID)] = &histEntry{seq: m.seq, session: cp}
	m.trimLocked(userID)
	return nil
}

func (m *memHistoryRepo) trimLocked(userID string) {
	entries := m.entriesLocked(userID)
	for len(entries) > repository.HistoryCap {
		oldest := entries[len(entries)-1]
		delete(m.byKey, m.key(userID, oldest.session.ID))
		entries = entries[:len(entries)-1]
	}
}

// entriesLocked returns the user's sessions newest-updated first; ties
// break on insertion order.
func (m *memHistoryRepo) entriesLocked(userID string) []*histEntry {
	var out []*histEntry
	prefix := userID + "/"
	for k, e := range m.byKey {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].session.UpdatedAt.Equal(out[j].session.UpdatedAt) {
			return out[i].session.UpdatedAt.After(out[j].session.UpdatedAt)
		}
		return out[i].seq > out[j].seq
	})
	return out
}

func (m *memHistoryRepo) List(ctx context.Context, userID string) ([]*model.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.entriesLocked(userID)
	out := make([]*model.ChatSession, 0, len(entries))
	for _, e := range entries {
		cp := e.session
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memHistoryRepo) Find(ctx context.Context, userID, sessionID string) (*model.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byKey[m.key(userID, sessionID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := e.session
	cp.Messages = append([]model.ChatMessage(nil), e.session.Messages...)
	return &cp, nil
}

func (m *memHistoryRepo) Delete(ctx context.Context, userID, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byKey, m.key(userID, sessionID))
	return nil
}

// memCounterRepo keys counts by userID + "/" + dayKey.
type memCounterRepo struct {
	mu     sync.Mutex
	counts map[string]int
}

func newMemCounterRepo() *memCounterRepo {
	return &memCounterRepo{counts: map[string]int{}}
}

func (m *memCounterRepo) Load(ctx context.Context, userID, dayKey string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[userID+"/"+dayKey], nil
}

func (m *memCounterRepo) Store(ctx context.Context, userID, dayKey string, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[userID+"/"+dayKey] = count
	return nil
}

// memCreditRepo is the in-memory credit store plus ledger.
type memCreditRepo struct {
	mu      sync.Mutex
	store   map[string]int
	ledger  []model.CreditTransaction
	setErr  error
	saveErr error
}

func newMemCreditRepo() *memCreditRepo {
	return &memCreditRepo{store: map[string]int{}}
}

func (m *memCreditRepo) GetCredits(ctx context.Context, tx repository.Tx, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.store[userID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return c, nil
}

func (m *memCreditRepo) SetCredits(ctx context.Context, tx repository.Tx, userID string, credits int) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[userID] = credits
	return nil
}

func (m *memCreditRepo) AppendLedger(ctx context.Context, tx repository.Tx, entry *model.CreditTransaction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = append(m.ledger, *entry)
	return nil
}

func (m *memCreditRepo) lastLedger() (model.CreditTransaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ledger) == 0 {
		return model.CreditTransaction{}, false
	}
	return m.ledger[len(m.ledger)-1], true
}

// syncRunner executes submitted tasks inline so tests see propagation
// effects without timing games.
type syncRunner struct{}

func (syncRunner) Submit(task worker.Task) error {
	return task(context.Background())
}
