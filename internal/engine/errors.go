package engine

import "errors"

var (
	// ErrInvalidSplitPolicy signals malformed split input: an unknown split
	// type, a negative weight, a duplicate participant, or percentage
	// weights that do not sum to 100 within tolerance.
	ErrInvalidSplitPolicy = errors.New("invalid split policy")

	// ErrNonPositiveAmount signals an expense amount <= 0.
	ErrNonPositiveAmount = errors.New("expense amount must be positive")

	// ErrEmptyParticipantSet signals an expense with no participants.
	ErrEmptyParticipantSet = errors.New("expense has no participants")

	// ErrUnknownUserInGroup signals a payer or participant that is not a
	// member of the expense's group.
	ErrUnknownUserInGroup = errors.New("user is not a member of the group")

	// ErrUnbalancedInput signals balances that do not sum to zero. Given a
	// correct resolver and aggregator this is unreachable; seeing it means
	// an internal invariant was violated, not that the caller sent bad
	// input, so callers should treat it as fatal and log it loudly.
	ErrUnbalancedInput = errors.New("balances do not sum to zero")
)
