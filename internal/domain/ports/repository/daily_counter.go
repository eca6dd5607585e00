package repository

import "context"

// -----------------------------
// Day-scoped counters
// -----------------------------

// DailyCounterRepository persists (day marker, message count) pairs per
// user. Load for a marker with no stored count returns zero, not an error.
type DailyCounterRepository interface {
	Load(ctx context.Context, userID, dayKey string) (int, error)
	Store(ctx context.Context, userID, dayKey string, count int) error
}
