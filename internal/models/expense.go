package models

import "github.com/shopspring/decimal"

// SplitType identifies how an expense amount is divided among participants.
// The set is closed: resolution switches over it exhaustively and rejects
// anything else.
type SplitType string

const (
	// SplitEqual divides the amount evenly among all participants.
	SplitEqual SplitType = "equal"

	// SplitPercentage divides the amount by per-participant percentage
	// weights that must sum to 100.
	SplitPercentage SplitType = "percentage"
)

// Share declares one participant of an expense.
// For SplitPercentage, Weight is the participant's percentage (0-100).
// For SplitEqual, Weight is ignored; the entry only marks participation.
type Share struct {
	UserID string
	Weight decimal.Decimal
}

// Expense represents a single immutable ledger entry: who paid, how much,
// and how the amount is split among participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is the human-readable label (e.g., "Dinner", "Fuel").
	Description string

	// Amount is the total expense amount in minor currency units (cents).
	// Always positive.
	Amount int64

	// PaidBy is the user ID of the payer.
	PaidBy string

	// SplitType selects the split policy.
	SplitType SplitType

	// Shares lists the participants (and their weights for percentage
	// splits). The payer may or may not be a participant.
	Shares []Share

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Participants returns the participant user IDs in declaration order.
func (e *Expense) Participants() []string {
	ids := make([]string, len(e.Shares))
	for i, s := range e.Shares {
		ids[i] = s.UserID
	}
	return ids
}
