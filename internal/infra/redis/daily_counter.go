package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"homestyle-ai/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.DailyCounterRepository = (*DailyCounterStore)(nil)

// DailyCounterStore persists the per-day message count under a key scoped
// to the local calendar date. Keys expire after two days, so yesterday's
// count simply ages out and a new day reads back zero.
type DailyCounterStore struct {
	client *redClient
}

func NewDailyCounterStore(client *redClient) *DailyCounterStore {
	return &DailyCounterStore{client: client}
}

func counterKey(userID, dayKey string) string {
	return "chat_daily:" + userID + ":" + dayKey
}

func (d *DailyCounterStore) Load(ctx context.Context, userID, dayKey string) (int, error) {
	v, err := d.client.Get(ctx, counterKey(userID, dayKey))
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (d *DailyCounterStore) Store(ctx context.Context, userID, dayKey string, count int) error {
	return d.client.Set(ctx, counterKey(userID, dayKey), strconv.Itoa(count), 48*time.Hour)
}
