// Package position computes integer ordering keys for cards inside a board column.
//
// New keys are allocated in the gap between two neighbours. Keys are spaced Gap apart when a card lands
// at either end of a column, and a column is re-laid out by Rebalance once neighbouring keys get too
// close to split.
package position

import (
	"sort"
)

// Gap is the spacing between adjacent positions at the ends of a column and after a rebalance.
const Gap int64 = 1024

// DefaultMinGap is the smallest neighbour distance that still yields a distinct midpoint.
const DefaultMinGap int64 = 2

// CalculatePosition returns the position for a card placed between above and below.
// A nil neighbour means the card goes to that end of the column.
func CalculatePosition(above, below *int64) int64 {
	switch {
	case above == nil && below == nil:
		return 0
	case above == nil:
		return *below - Gap
	case below == nil:
		return *above + Gap
	default:
		return floorHalf(*above + *below)
	}
}

// floorHalf divides by two rounding towards negative infinity; plain / truncates towards zero.
func floorHalf(n int64) int64 {
	return n >> 1
}

// Between returns the neighbours of a card inserted at index into a column whose positions are sorted
// ascending. index is clamped to [0, len(positions)].
func Between(positions []int64, index int) (above, below *int64) {
	if len(positions) == 0 {
		return nil, nil
	}
	if index <= 0 {
		return nil, &positions[0]
	}
	if index >= len(positions) {
		return &positions[len(positions)-1], nil
	}
	return &positions[index-1], &positions[index]
}

// NeedsRebalance reports whether the neighbours are too close for CalculatePosition to produce a
// position strictly between them.
func NeedsRebalance(above, below *int64, minGap int64) bool {
	if above == nil || below == nil {
		return false
	}
	if minGap < DefaultMinGap {
		minGap = DefaultMinGap
	}
	return *below-*above < minGap
}

// Placement is the ordering key assigned to one item.
type Placement struct {
	ID       uint  `json:"id"`
	Position int64 `json:"position"`
}

// Rebalance lays items out again as Gap, 2*Gap, 3*Gap... keeping their input order.
func Rebalance(items []Placement) []Placement {
	out := make([]Placement, len(items))
	for i, item := range items {
		out[i] = Placement{ID: item.ID, Position: Gap * int64(i+1)}
	}
	return out
}

// SortAndRebalance orders items by their current position before rebalancing them.
// Items with equal positions keep their relative order.
func SortAndRebalance(items []Placement) []Placement {
	sorted := make([]Placement, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return Rebalance(sorted)
}
