package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"homestyle-ai/internal/domain/model"
	"homestyle-ai/internal/domain/ports/repository"
	"homestyle-ai/internal/infra/metrics"
)

// Compile-time check
var _ CatalogUseCase = (*catalogUC)(nil)

// BrowsePage is one recomputed catalog view: the requested slice plus the
// derived counts the sidebar renders.
type BrowsePage struct {
	Designs       []model.DesignRecord `json:"designs"`
	Total         int                  `json:"total"`
	Filtered      int                  `json:"filtered"`
	Page          int                  `json:"page"`
	PageSize      int                  `json:"pageSize"`
	HasNext       bool                 `json:"hasNext"`
	ActiveFilters int                  `json:"activeFilters"`
}

type CatalogUseCase interface {
	// Browse recomputes the filtered, sorted, paginated view for one
	// filter state. Deterministic: the same (catalog, state, page) input
	// always yields the same ordered output.
	Browse(ctx context.Context, f model.FilterState, page int) (*BrowsePage, error)
	// Refresh reloads the catalog snapshot from the repository.
	Refresh(ctx context.Context) error
}

type catalogUC struct {
	designs repository.DesignRepository
	log     *zerolog.Logger

	mu       sync.RWMutex
	snapshot []model.DesignRecord
	loaded   bool
}

func NewCatalogUseCase(designs repository.DesignRepository, logger *zerolog.Logger) *catalogUC {
	return &catalogUC{designs: designs, log: logger}
}

func (c *catalogUC) Refresh(ctx context.Context) error {
	all, err := c.designs.FindAllPublished(ctx, repository.NoTX)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.snapshot = all
	c.loaded = true
	c.mu.Unlock()
	c.log.Debug().Int("designs", len(all)).Msg("catalog snapshot refreshed")
	return nil
}

func (c *catalogUC) Browse(ctx context.Context, f model.FilterState, page int) (*BrowsePage, error) {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	c.mu.RLock()
	catalog := c.snapshot
	c.mu.RUnlock()

	f = f.Normalize()
	filtered := ApplyFilters(catalog, f)
	slice, hasNext := Paginate(filtered, page, model.PageSize)
	metrics.CatalogBrowse(string(f.Sort), f.ActiveCount())

	return &BrowsePage{
		Designs:       slice,
		Total:         len(catalog),
		Filtered:      len(filtered),
		Page:          page,
		PageSize:      model.PageSize,
		HasNext:       hasNext,
		ActiveFilters: f.ActiveCount(),
	}, nil
}

// ApplyFilters runs the narrowing predicate chain (room type, style, budget
// ceiling inclusive) and then a stable sort over the whole filtered set.
func ApplyFilters(catalog []model.DesignRecord, f model.FilterState) []model.DesignRecord {
	out := make([]model.DesignRecord, 0, len(catalog))
	for _, d := range catalog {
		if f.RoomType != "" && d.RoomType != f.RoomType {
			continue
		}
		if f.Style != "" && d.Style != f.Style {
			continue
		}
		if d.Price > f.BudgetCeiling {
			continue
		}
		out = append(out, d)
	}

	switch f.Sort {
	case model.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case model.SortNew:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	default: // popular
		sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	}
	return out
}

// Paginate returns the zero-based page slice and whether a further page
// exists. Out-of-range pages yield an empty slice; a negative page floors
// at zero.
func Paginate(list []model.DesignRecord, page, size int) ([]model.DesignRecord, bool) {
	if page < 0 {
		page = 0
	}
	start := page * size
	if start >= len(list) {
		return []model.DesignRecord{}, false
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], end < len(list)
}
