// File: internal/usecase/catalog_uc_test.go
package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"homestyle-ai/internal/domain/model"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func mkDesign(id string, room model.RoomType, style model.Style, price int64, popularity int, created time.Time) model.DesignRecord {
	return model.DesignRecord{
		ID:         id,
		Title:      "Design " + id,
		RoomType:   room,
		Style:      style,
		Price:      price,
		Popularity: popularity,
		CreatedAt:  created,
		Published:  true,
	}
}

func ids(list []model.DesignRecord) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.ID)
	}
	return out
}

func sameIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyFiltersScenario(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	catalog := []model.DesignRecord{
		mkDesign("A", model.RoomLivingRoom, model.StyleModern, 30_000, 10, base),
		mkDesign("B", model.RoomKitchen, model.StyleModern, 20_000, 5, base.Add(time.Hour)),
		mkDesign("C", model.RoomLivingRoom, model.StyleBoho, 25_000, 8, base.Add(2*time.Hour)),
	}

	f := model.FilterState{BudgetCeiling: 25_000, Sort: model.SortPriceAsc}.Normalize()
	got := ApplyFilters(catalog, f)
	if !sameIDs(ids(got), "B", "C") {
		t.Fatalf("budget 25000 price_asc = %v, want [B C]", ids(got))
	}

	slice, hasNext := Paginate(got, 0, 2)
	if !sameIDs(ids(slice), "B", "C") || hasNext {
		t.Fatalf("page 0 size 2 = %v hasNext=%v, want [B C] false", ids(slice), hasNext)
	}
}

func TestApplyFiltersIdempotent(t *testing.T) {
	base := time.Now()
	catalog := []model.DesignRecord{
		mkDesign("A", model.RoomLivingRoom, model.StyleModern, 50_000, 900, base),
		mkDesign("B", model.RoomKitchen, model.StyleLuxury, 120_000, 950, base.Add(time.Minute)),
		mkDesign("C", model.RoomDining, model.StyleMinimal, 80_000, 950, base.Add(2*time.Minute)),
		mkDesign("D", model.RoomBalcony, model.StyleBoho, 200_000, 700, base.Add(3*time.Minute)),
	}
	f := model.FilterState{BudgetCeiling: 150_000, Sort: model.SortPopular}.Normalize()

	first := ApplyFilters(catalog, f)
	second := ApplyFilters(catalog, f)
	if !sameIDs(ids(first), ids(second)...) {
		t.Fatalf("same input produced different orders: %v vs %v", ids(first), ids(second))
	}
}

func TestApplyFiltersBudgetBoundary(t *testing.T) {
	catalog := []model.DesignRecord{
		mkDesign("at", model.RoomLivingRoom, model.StyleModern, 100_000, 1, time.Now()),
		mkDesign("over", model.RoomLivingRoom, model.StyleModern, 100_001, 2, time.Now()),
	}
	f := model.FilterState{BudgetCeiling: 100_000, Sort: model.SortPriceAsc}.Normalize()

	got := ApplyFilters(catalog, f)
	if !sameIDs(ids(got), "at") {
		t.Fatalf("ceiling is inclusive: got %v, want [at]", ids(got))
	}
}

func TestApplyFiltersStableSortOnTies(t *testing.T) {
	base := time.Now()
	catalog := []model.DesignRecord{
		mkDesign("first", model.RoomLivingRoom, model.StyleModern, 60_000, 500, base),
		mkDesign("second", model.RoomKitchen, model.StyleModern, 60_000, 500, base),
		mkDesign("third", model.RoomDining, model.StyleModern, 60_000, 500, base),
	}

	for _, sortKey := range []model.SortKey{model.SortPriceAsc, model.SortPopular, model.SortNew} {
		f := model.FilterState{BudgetCeiling: model.MaxBudget, Sort: sortKey}
		got := ApplyFilters(catalog, f)
		if !sameIDs(ids(got), "first", "second", "third") {
			t.Fatalf("sort %s broke catalog order on ties: %v", sortKey, ids(got))
		}
	}
}

func TestApplyFiltersSortNewZeroTimestampsLast(t *testing.T) {
	catalog := []model.DesignRecord{
		mkDesign("undated", model.RoomLivingRoom, model.StyleModern, 60_000, 1, time.Time{}),
		mkDesign("dated", model.RoomKitchen, model.StyleModern, 60_000, 2, time.Now()),
	}
	f := model.FilterState{BudgetCeiling: model.MaxBudget, Sort: model.SortNew}

	got := ApplyFilters(catalog, f)
	if !sameIDs(ids(got), "dated", "undated") {
		t.Fatalf("zero timestamps should sort as oldest: %v", ids(got))
	}
}

func TestPaginateReconstruction(t *testing.T) {
	base := time.Now()
	var catalog []model.DesignRecord
	for i := 0; i < 7; i++ {
		catalog = append(catalog, mkDesign(string(rune('a'+i)), model.RoomLivingRoom, model.StyleModern, int64(30_000+i), i, base))
	}
	f := model.FilterState{BudgetCeiling: model.MaxBudget, Sort: model.SortPriceAsc}
	full := ApplyFilters(catalog, f)

	var rebuilt []model.DesignRecord
	for page := 0; ; page++ {
		slice, hasNext := Paginate(full, page, 3)
		rebuilt = append(rebuilt, slice...)
		if hasNext && len(slice) == 0 {
			t.Fatal("hasNext reported with an empty page")
		}
		if !hasNext {
			break
		}
	}
	if !sameIDs(ids(rebuilt), ids(full)...) {
		t.Fatalf("pages do not reconstruct the full list: %v vs %v", ids(rebuilt), ids(full))
	}
}

func TestPaginateEdges(t *testing.T) {
	list := []model.DesignRecord{
		mkDesign("a", model.RoomLivingRoom, model.StyleModern, 1, 1, time.Now()),
		mkDesign("b", model.RoomLivingRoom, model.StyleModern, 2, 2, time.Now()),
	}

	slice, hasNext := Paginate(list, -3, 1)
	if !sameIDs(ids(slice), "a") || !hasNext {
		t.Fatalf("negative page should floor at zero: %v hasNext=%v", ids(slice), hasNext)
	}

	slice, hasNext = Paginate(list, 9, 1)
	if len(slice) != 0 || hasNext {
		t.Fatalf("out-of-range page should be empty: %v hasNext=%v", ids(slice), hasNext)
	}

	slice, hasNext = Paginate(nil, 0, 1)
	if len(slice) != 0 || hasNext {
		t.Fatalf("empty list should page empty: %v hasNext=%v", ids(slice), hasNext)
	}
}

func TestBrowseCountsAndDefaults(t *testing.T) {
	base := time.Now()
	repo := &memDesignRepo{}
	for i := 0; i < 25; i++ {
		d := mkDesign(string(rune('A'+i)), model.RoomLivingRoom, model.StyleModern, 400_000, 1000-i, base)
		if i%2 == 0 {
			d.RoomType = model.RoomKitchen
		}
		repo.designs = append(repo.designs, d)
	}

	uc := NewCatalogUseCase(repo, testLogger())
	ctx := context.Background()

	page, err := uc.Browse(ctx, model.DefaultFilterState(), 0)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if page.Total != 25 || page.Filtered != 25 {
		t.Fatalf("default filters should keep everything: total=%d filtered=%d", page.Total, page.Filtered)
	}
	if len(page.Designs) != model.PageSize || !page.HasNext {
		t.Fatalf("page 0 of 25 should be full with a next page: len=%d hasNext=%v", len(page.Designs), page.HasNext)
	}
	if page.ActiveFilters != 0 {
		t.Fatalf("cleared filters should count zero active, got %d", page.ActiveFilters)
	}

	page, err = uc.Browse(ctx, model.FilterState{RoomType: model.RoomKitchen, BudgetCeiling: model.MaxBudget, Sort: model.SortPopular}, 0)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if page.Filtered != 13 || page.Total != 25 {
		t.Fatalf("room filter: filtered=%d total=%d, want 13/25", page.Filtered, page.Total)
	}
	if page.ActiveFilters != 1 {
		t.Fatalf("one filter active, got %d", page.ActiveFilters)
	}
	if page.HasNext {
		t.Fatalf("13 results fit one page of %d", model.PageSize)
	}
}

func TestBrowseNormalizesRawInput(t *testing.T) {
	repo := &memDesignRepo{designs: []model.DesignRecord{
		mkDesign("a", model.RoomLivingRoom, model.StyleModern, model.MinBudget, 1, time.Now()),
	}}
	uc := NewCatalogUseCase(repo, testLogger())

	// Junk enum values and an out-of-range budget fall back to defaults.
	raw := model.FilterState{RoomType: "Garage", Style: "Brutalist", BudgetCeiling: 5, Sort: "cheapest"}
	page, err := uc.Browse(context.Background(), raw, 0)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if page.Filtered != 1 {
		t.Fatalf("normalized junk input should keep the %d-priced design, filtered=%d", model.MinBudget, page.Filtered)
	}
}
