// Package engine implements the computation core of the ledger: split
// resolution, balance aggregation, settlement planning, and cross-group
// netting. Every function is pure — it takes an immutable snapshot of
// ledger data and returns a result with no retained references — so
// concurrent calls never interfere and results are always recomputed
// rather than cached.
package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"fairsplit/internal/models"
)

// Split is one participant's resolved share of an expense, in minor
// currency units. Splits are derived, never stored.
type Split struct {
	UserID string
	Amount int64
}

var (
	oneHundred = decimal.NewFromInt(100)

	// shareTolerance is how far percentage weights may stray from summing
	// to exactly 100 before the policy is rejected.
	shareTolerance = decimal.RequireFromString("0.01")
)

// ResolveSplits converts an expense into exact per-participant allocations.
// The returned splits always sum to exactly e.Amount: integer division
// remainders are handed out one cent at a time under a deterministic rule
// (documented per policy below), so no unit is ever lost or created.
func ResolveSplits(e *models.Expense) ([]Split, error) {
	if e.Amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNonPositiveAmount, e.Amount)
	}
	if len(e.Shares) == 0 {
		return nil, ErrEmptyParticipantSet
	}
	seen := make(map[string]bool, len(e.Shares))
	for _, s := range e.Shares {
		if seen[s.UserID] {
			return nil, fmt.Errorf("%w: duplicate participant %s", ErrInvalidSplitPolicy, s.UserID)
		}
		seen[s.UserID] = true
	}

	switch e.SplitType {
	case models.SplitEqual:
		return resolveEqual(e), nil
	case models.SplitPercentage:
		return resolvePercentage(e)
	default:
		return nil, fmt.Errorf("%w: unknown split type %q", ErrInvalidSplitPolicy, e.SplitType)
	}
}

// resolveEqual divides the amount evenly. The remainder (always smaller than
// the participant count) goes one cent at a time to participants in
// ascending user ID order, so the allocation is reproducible and no
// participant ends up more than one cent above any other.
func resolveEqual(e *models.Expense) []Split {
	ids := e.Participants()
	sort.Strings(ids)

	n := int64(len(ids))
	base := e.Amount / n
	remainder := e.Amount % n

	splits := make([]Split, len(ids))
	for i, id := range ids {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		splits[i] = Split{UserID: id, Amount: amount}
	}
	return splits
}

// resolvePercentage allocates floor(amount * weight / 100) to each
// participant, then distributes the leftover cents in descending order of
// fractional remainder (ties by ascending user ID). That ordering minimizes
// each participant's deviation from their ideal fractional share.
func resolvePercentage(e *models.Expense) ([]Split, error) {
	sum := decimal.Zero
	for _, s := range e.Shares {
		if s.Weight.IsNegative() {
			return nil, fmt.Errorf("%w: negative weight %s for %s", ErrInvalidSplitPolicy, s.Weight, s.UserID)
		}
		sum = sum.Add(s.Weight)
	}
	if sum.Sub(oneHundred).Abs().GreaterThan(shareTolerance) {
		return nil, fmt.Errorf("%w: weights sum to %s, want 100", ErrInvalidSplitPolicy, sum)
	}

	amount := decimal.NewFromInt(e.Amount)

	type alloc struct {
		userID string
		floor  int64
		frac   decimal.Decimal
	}
	allocs := make([]alloc, len(e.Shares))
	var allocated int64
	for i, s := range e.Shares {
		ideal := amount.Mul(s.Weight).Div(oneHundred)
		floor := ideal.Floor()
		allocs[i] = alloc{
			userID: s.UserID,
			floor:  floor.IntPart(),
			frac:   ideal.Sub(floor),
		}
		allocated += allocs[i].floor
	}

	sort.Slice(allocs, func(i, j int) bool {
		if !allocs[i].frac.Equal(allocs[j].frac) {
			return allocs[i].frac.GreaterThan(allocs[j].frac)
		}
		return allocs[i].userID < allocs[j].userID
	})

	// Leftover is usually < len(allocs), but weights may legally sum to
	// slightly under (or over) 100, so wrap around rather than assume one
	// pass. On overshoot, take cents back from the smallest fractions
	// first, skipping anyone already at zero so no split goes negative.
	n := int64(len(allocs))
	leftover := e.Amount - allocated
	for i := int64(0); i < leftover; i++ {
		allocs[i%n].floor++
	}
	for deficit := -leftover; deficit > 0; {
		for i := n - 1; i >= 0 && deficit > 0; i-- {
			if allocs[i].floor > 0 {
				allocs[i].floor--
				deficit--
			}
		}
	}

	splits := make([]Split, len(allocs))
	for i, a := range allocs {
		splits[i] = Split{UserID: a.userID, Amount: a.floor}
	}
	sort.Slice(splits, func(i, j int) bool { return splits[i].UserID < splits[j].UserID })
	return splits, nil
}
