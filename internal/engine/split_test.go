package engine

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"fairsplit/internal/models"
)

func equalShares(userIDs ...string) []models.Share {
	shares := make([]models.Share, len(userIDs))
	for i, id := range userIDs {
		shares[i] = models.Share{UserID: id}
	}
	return shares
}

func percentShares(weights map[string]string) []models.Share {
	shares := make([]models.Share, 0, len(weights))
	for id, w := range weights {
		shares = append(shares, models.Share{UserID: id, Weight: decimal.RequireFromString(w)})
	}
	return shares
}

func splitAmounts(splits []Split) map[string]int64 {
	out := make(map[string]int64, len(splits))
	for _, s := range splits {
		out[s.UserID] = s.Amount
	}
	return out
}

func TestResolveSplits(t *testing.T) {
	tests := []struct {
		name         string
		expense      *models.Expense
		wantErr      error
		validateFunc func(t *testing.T, splits []Split)
	}{
		{
			name: "equal split with no remainder",
			expense: &models.Expense{
				Amount:    5000,
				SplitType: models.SplitEqual,
				Shares:    equalShares("alice", "bob"),
			},
			validateFunc: func(t *testing.T, splits []Split) {
				got := splitAmounts(splits)
				if got["alice"] != 2500 || got["bob"] != 2500 {
					t.Errorf("splits = %v, want 2500 each", got)
				}
			},
		},
		{
			name: "equal split of 100 among 3 gives remainder to lowest id",
			expense: &models.Expense{
				Amount:    100,
				SplitType: models.SplitEqual,
				Shares:    equalShares("carol", "alice", "bob"),
			},
			validateFunc: func(t *testing.T, splits []Split) {
				got := splitAmounts(splits)
				want := map[string]int64{"alice": 34, "bob": 33, "carol": 33}
				for id, amount := range want {
					if got[id] != amount {
						t.Errorf("split[%s] = %d, want %d", id, got[id], amount)
					}
				}
			},
		},
		{
			name: "equal split single participant",
			expense: &models.Expense{
				Amount:    999,
				SplitType: models.SplitEqual,
				Shares:    equalShares("alice"),
			},
			validateFunc: func(t *testing.T, splits []Split) {
				if len(splits) != 1 || splits[0].Amount != 999 {
					t.Errorf("splits = %v, want alice=999", splits)
				}
			},
		},
		{
			name: "percentage split 1000 at 33.33/33.33/33.34 sums exactly",
			expense: &models.Expense{
				Amount:    1000,
				SplitType: models.SplitPercentage,
				Shares: percentShares(map[string]string{
					"alice": "33.33",
					"bob":   "33.33",
					"carol": "33.34",
				}),
			},
			validateFunc: func(t *testing.T, splits []Split) {
				got := splitAmounts(splits)
				// Floors are 333 each; carol's fraction (.4) is largest,
				// so the leftover cent lands on carol.
				want := map[string]int64{"alice": 333, "bob": 333, "carol": 334}
				for id, amount := range want {
					if got[id] != amount {
						t.Errorf("split[%s] = %d, want %d", id, got[id], amount)
					}
				}
			},
		},
		{
			name: "percentage fractional tie breaks by ascending id",
			expense: &models.Expense{
				Amount:    101,
				SplitType: models.SplitPercentage,
				Shares: percentShares(map[string]string{
					"bob":   "50",
					"alice": "50",
				}),
			},
			validateFunc: func(t *testing.T, splits []Split) {
				got := splitAmounts(splits)
				// Both fractions are 0.5; alice wins the tie.
				if got["alice"] != 51 || got["bob"] != 50 {
					t.Errorf("splits = %v, want alice=51 bob=50", got)
				}
			},
		},
		{
			name: "percentage weights slightly under 100 still allocate fully",
			expense: &models.Expense{
				Amount:    200000,
				SplitType: models.SplitPercentage,
				Shares: percentShares(map[string]string{
					"alice": "50",
					"bob":   "49.99",
				}),
			},
			validateFunc: func(t *testing.T, splits []Split) {
				got := splitAmounts(splits)
				if got["alice"]+got["bob"] != 200000 {
					t.Errorf("splits sum to %d, want 200000", got["alice"]+got["bob"])
				}
			},
		},
		{
			name: "percentage weights slightly over 100 with zero-weight participant",
			expense: &models.Expense{
				Amount:    10000,
				SplitType: models.SplitPercentage,
				Shares: percentShares(map[string]string{
					"alice": "100.01",
					"bob":   "0",
				}),
			},
			validateFunc: func(t *testing.T, splits []Split) {
				got := splitAmounts(splits)
				// alice's floor overshoots the total by one cent; the
				// correction must come out of her share, not bob's zero.
				if got["alice"] != 10000 || got["bob"] != 0 {
					t.Errorf("splits = %v, want alice=10000 bob=0", got)
				}
			},
		},
		{
			name: "zero amount rejected",
			expense: &models.Expense{
				Amount:    0,
				SplitType: models.SplitEqual,
				Shares:    equalShares("alice"),
			},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name: "negative amount rejected",
			expense: &models.Expense{
				Amount:    -500,
				SplitType: models.SplitEqual,
				Shares:    equalShares("alice"),
			},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name: "empty participant set rejected",
			expense: &models.Expense{
				Amount:    500,
				SplitType: models.SplitEqual,
			},
			wantErr: ErrEmptyParticipantSet,
		},
		{
			name: "duplicate participant rejected",
			expense: &models.Expense{
				Amount:    500,
				SplitType: models.SplitEqual,
				Shares:    append(equalShares("alice"), equalShares("alice")...),
			},
			wantErr: ErrInvalidSplitPolicy,
		},
		{
			name: "percentage weights not summing to 100 rejected",
			expense: &models.Expense{
				Amount:    500,
				SplitType: models.SplitPercentage,
				Shares: percentShares(map[string]string{
					"alice": "60",
					"bob":   "30",
				}),
			},
			wantErr: ErrInvalidSplitPolicy,
		},
		{
			name: "negative percentage weight rejected",
			expense: &models.Expense{
				Amount:    500,
				SplitType: models.SplitPercentage,
				Shares: percentShares(map[string]string{
					"alice": "150",
					"bob":   "-50",
				}),
			},
			wantErr: ErrInvalidSplitPolicy,
		},
		{
			name: "unknown split type rejected",
			expense: &models.Expense{
				Amount:    500,
				SplitType: models.SplitType("exact"),
				Shares:    equalShares("alice"),
			},
			wantErr: ErrInvalidSplitPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ResolveSplits(tt.expense)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveSplits() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveSplits() unexpected error: %v", err)
			}

			var sum int64
			for _, s := range splits {
				if s.Amount < 0 {
					t.Errorf("split[%s] = %d, want >= 0", s.UserID, s.Amount)
				}
				sum += s.Amount
			}
			if sum != tt.expense.Amount {
				t.Errorf("splits sum to %d, want %d", sum, tt.expense.Amount)
			}

			if tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func TestResolveSplitsEqualSpreadBound(t *testing.T) {
	// No participant may receive more than one cent above any other.
	expense := &models.Expense{
		Amount:    1003,
		SplitType: models.SplitEqual,
		Shares:    equalShares("a", "b", "c", "d", "e"),
	}
	splits, err := ResolveSplits(expense)
	if err != nil {
		t.Fatalf("ResolveSplits() error: %v", err)
	}

	minAmt, maxAmt := splits[0].Amount, splits[0].Amount
	for _, s := range splits {
		if s.Amount < minAmt {
			minAmt = s.Amount
		}
		if s.Amount > maxAmt {
			maxAmt = s.Amount
		}
	}
	if maxAmt-minAmt > 1 {
		t.Errorf("max-min spread = %d, want <= 1", maxAmt-minAmt)
	}
}

func TestResolveSplitsDeterministic(t *testing.T) {
	expense := &models.Expense{
		Amount:    777,
		SplitType: models.SplitPercentage,
		Shares: percentShares(map[string]string{
			"alice": "12.5",
			"bob":   "37.5",
			"carol": "25",
			"dave":  "25",
		}),
	}

	first, err := ResolveSplits(expense)
	if err != nil {
		t.Fatalf("ResolveSplits() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := ResolveSplits(expense)
		if err != nil {
			t.Fatalf("ResolveSplits() error: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d returned %d splits, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d split[%d] = %v, want %v", i, j, again[j], first[j])
			}
		}
	}
}
