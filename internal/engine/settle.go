package engine

import (
	"fmt"
	"sort"
)

// Transaction is one suggested payment: FromUserID pays ToUserID Amount
// minor currency units. Amount is always positive.
type Transaction struct {
	FromUserID string
	ToUserID   string
	Amount     int64
}

// Plan produces a settlement plan: an ordered list of payments that drives
// every balance in the input to exactly zero.
//
// The algorithm is the classic greedy debt simplification: repeatedly match
// the largest remaining creditor with the largest remaining debtor and move
// min(credit, debt) between them. Each step zeroes at least one party, so
// the plan holds at most n-1 transactions for n non-zero balances. True
// minimum-transaction settlement is NP-hard; this greedy bound is the
// accepted practical approximation, not a defect.
//
// Ties on amount break by ascending user ID, and output order is emission
// order, so the plan is fully deterministic for a given input.
func Plan(balances map[string]int64) ([]Transaction, error) {
	var sum int64
	for _, amount := range balances {
		sum += amount
	}
	if sum != 0 {
		return nil, fmt.Errorf("%w: sum is %d", ErrUnbalancedInput, sum)
	}

	var creditors, debtors []Balance
	for userID, amount := range balances {
		switch {
		case amount > 0:
			creditors = append(creditors, Balance{UserID: userID, Amount: amount})
		case amount < 0:
			debtors = append(debtors, Balance{UserID: userID, Amount: -amount})
		}
	}
	// Initial ascending-ID order makes the max scans below deterministic.
	sort.Slice(creditors, func(i, j int) bool { return creditors[i].UserID < creditors[j].UserID })
	sort.Slice(debtors, func(i, j int) bool { return debtors[i].UserID < debtors[j].UserID })

	var plan []Transaction
	for len(creditors) > 0 && len(debtors) > 0 {
		c := largest(creditors)
		d := largest(debtors)

		amount := min(creditors[c].Amount, debtors[d].Amount)
		plan = append(plan, Transaction{
			FromUserID: debtors[d].UserID,
			ToUserID:   creditors[c].UserID,
			Amount:     amount,
		})

		creditors[c].Amount -= amount
		debtors[d].Amount -= amount
		if creditors[c].Amount == 0 {
			creditors = append(creditors[:c], creditors[c+1:]...)
		}
		if debtors[d].Amount == 0 {
			debtors = append(debtors[:d], debtors[d+1:]...)
		}
	}

	return plan, nil
}

// largest returns the index of the entry with the highest amount. Entries
// are kept in ascending user ID order, so the strict > comparison breaks
// amount ties toward the lower user ID.
func largest(entries []Balance) int {
	best := 0
	for i := 1; i < len(entries); i++ {
		if entries[i].Amount > entries[best].Amount {
			best = i
		}
	}
	return best
}
