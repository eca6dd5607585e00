package model

// Budget slider bounds (INR).
const (
	MinBudget int64 = 20_000
	MaxBudget int64 = 500_000
)

// PageSize is the fixed catalog page length.
const PageSize = 20

type SortKey string

const (
	SortPriceAsc SortKey = "price_asc"
	SortPopular  SortKey = "popular"
	SortNew      SortKey = "new"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortPriceAsc, SortPopular, SortNew:
		return true
	}
	return false
}

// FilterState is one UI session's filter/sort selection. It is never
// persisted; zero values for RoomType/Style mean "no filter".
type FilterState struct {
	RoomType      RoomType `json:"roomType"`
	Style         Style    `json:"style"`
	BudgetCeiling int64    `json:"budget"`
	Sort          SortKey  `json:"sort"`
}

// DefaultFilterState is the cleared selection: no room/style filter, budget
// at the ceiling maximum, popularity sort.
func DefaultFilterState() FilterState {
	return FilterState{BudgetCeiling: MaxBudget, Sort: SortPopular}
}

// Normalize clamps the budget into [MinBudget, MaxBudget] and falls back to
// defaults for unknown enum values, so a FilterState built from raw query
// parameters is always safe to apply.
func (f FilterState) Normalize() FilterState {
	if f.RoomType != "" && !f.RoomType.Valid() {
		f.RoomType = ""
	}
	if f.Style != "" && !f.Style.Valid() {
		f.Style = ""
	}
	if f.BudgetCeiling == 0 {
		f.BudgetCeiling = MaxBudget
	}
	if f.BudgetCeiling < MinBudget {
		f.BudgetCeiling = MinBudget
	}
	if f.BudgetCeiling > MaxBudget {
		f.BudgetCeiling = MaxBudget
	}
	if !f.Sort.Valid() {
		f.Sort = SortPopular
	}
	return f
}

// ActiveCount is the filter badge number: one per room filter, style filter,
// and lowered budget ceiling. The sort key never counts.
func (f FilterState) ActiveCount() int {
	n := 0
	if f.RoomType != "" {
		n++
	}
	if f.Style != "" {
		n++
	}
	if f.BudgetCeiling < MaxBudget {
		n++
	}
	return n
}
