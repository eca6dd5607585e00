package repository

import (
	"context"

	"homestyle-ai/internal/domain/model"
)

// -----------------------------
// Design catalog
// -----------------------------

type DesignRepository interface {
	// FindAllPublished returns the full published catalog, ordered by
	// popularity descending. The filter engine works on this snapshot
	// entirely in memory.
	FindAllPublished(ctx context.Context, tx Tx) ([]model.DesignRecord, error)
	Save(ctx context.Context, tx Tx, d *model.DesignRecord) error
}
