package engine

import (
	"fmt"
	"sort"
)

// GroupContribution records how much of a merged balance came from one
// group. Callers need this provenance to warn when a global plan routes a
// payment between users who share no group.
type GroupContribution struct {
	GroupID string
	Amount  int64
}

// MergedBalance is one user's net position summed across groups, with the
// per-group breakdown that produced it.
type MergedBalance struct {
	UserID        string
	Amount        int64
	Contributions []GroupContribution
}

// MergeBalances sums per-group balance maps into one global balance per
// user, keeping provenance. Zero per-group entries are skipped in the
// contribution list but a user present in any group always appears in the
// output, even at a merged total of zero.
//
// Output and contributions are ordered by ascending user and group ID, so
// merging is deterministic regardless of map iteration order.
func MergeBalances(byGroup map[string]map[string]int64) []MergedBalance {
	groupIDs := make([]string, 0, len(byGroup))
	for id := range byGroup {
		groupIDs = append(groupIDs, id)
	}
	sort.Strings(groupIDs)

	merged := make(map[string]*MergedBalance)
	for _, groupID := range groupIDs {
		for userID, amount := range byGroup[groupID] {
			mb, ok := merged[userID]
			if !ok {
				mb = &MergedBalance{UserID: userID}
				merged[userID] = mb
			}
			mb.Amount += amount
			if amount != 0 {
				mb.Contributions = append(mb.Contributions, GroupContribution{
					GroupID: groupID,
					Amount:  amount,
				})
			}
		}
	}

	out := make([]MergedBalance, 0, len(merged))
	for _, mb := range merged {
		out = append(out, *mb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// NetAcrossGroups computes a "smart" settlement plan over balances merged
// across every group in the input scope. Two users with offsetting debts in
// different groups cancel before any payment is suggested, so the total
// transferred amount never exceeds the sum of independent per-group plans.
//
// The scope is whatever group set the caller passes in — all groups a user
// belongs to, or all groups system-wide. Netting itself is purely a balance
// merge; the planner is reused unchanged on the merged mapping.
func NetAcrossGroups(byGroup map[string]map[string]int64) ([]MergedBalance, []Transaction, error) {
	merged := MergeBalances(byGroup)

	totals := make(map[string]int64, len(merged))
	for _, mb := range merged {
		totals[mb.UserID] = mb.Amount
	}
	plan, err := Plan(totals)
	if err != nil {
		return nil, nil, fmt.Errorf("net across %d groups: %w", len(byGroup), err)
	}
	return merged, plan, nil
}
