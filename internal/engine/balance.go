package engine

import (
	"fmt"
	"sort"

	"fairsplit/internal/models"
)

// Balance is one user's net position within a scope (group or global), in
// minor currency units. Positive means the user is owed money; negative
// means the user owes money.
type Balance struct {
	UserID string
	Amount int64
}

// GroupBalances folds a group's expenses into one net balance per member.
// Every member starts at zero, so members with no expenses still appear.
// For each expense the payer gains the full amount and every participant
// loses their resolved split; a payer who also participates nets naturally.
//
// The result depends only on the expense set: splits are exact integers and
// addition commutes, so processing order cannot change the output.
func GroupBalances(group *models.Group, expenses []*models.Expense) (map[string]int64, error) {
	balances := make(map[string]int64, len(group.Members))
	for _, m := range group.Members {
		balances[m] = 0
	}

	for _, e := range expenses {
		if _, ok := balances[e.PaidBy]; !ok {
			return nil, fmt.Errorf("%w: payer %s in group %s", ErrUnknownUserInGroup, e.PaidBy, group.ID)
		}
		splits, err := ResolveSplits(e)
		if err != nil {
			return nil, fmt.Errorf("resolve expense %s: %w", e.ID, err)
		}

		balances[e.PaidBy] += e.Amount
		for _, s := range splits {
			if _, ok := balances[s.UserID]; !ok {
				return nil, fmt.Errorf("%w: participant %s in group %s", ErrUnknownUserInGroup, s.UserID, group.ID)
			}
			balances[s.UserID] -= s.Amount
		}
	}

	// A non-zero sum means the resolver created or lost money. Surface it
	// instead of correcting it; silent repair would hide the bug.
	var sum int64
	for _, amount := range balances {
		sum += amount
	}
	if sum != 0 {
		return nil, fmt.Errorf("%w: group %s sums to %d", ErrUnbalancedInput, group.ID, sum)
	}

	return balances, nil
}

// SortedBalances converts a balance map into a slice ordered by ascending
// user ID, the canonical ordering for responses and test fixtures.
func SortedBalances(balances map[string]int64) []Balance {
	out := make([]Balance, 0, len(balances))
	for userID, amount := range balances {
		out = append(out, Balance{UserID: userID, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
