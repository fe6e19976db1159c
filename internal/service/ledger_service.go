package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fairsplit/internal/engine"
	"fairsplit/internal/models"
	"fairsplit/internal/storage"
)

// LedgerService orchestrates the engine against the ledger store: it
// validates and records expenses, and derives balances and settlement plans
// on every read. Nothing derived is ever persisted.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// ExpenseInput carries the fields needed to record an expense.
type ExpenseInput struct {
	Description string
	Amount      int64
	PaidBy      string
	SplitType   models.SplitType
	Shares      []models.Share
}

// ExpenseWithSplits pairs a stored expense with its resolved allocations.
type ExpenseWithSplits struct {
	Expense *models.Expense
	Splits  []engine.Split
}

// GroupBalanceResult is the balance view of one group: net positions, the
// per-group settlement plan, and the smart plan netted across all groups.
type GroupBalanceResult struct {
	Balances          []engine.Balance
	Transactions      []engine.Transaction
	SmartTransactions []engine.Transaction
}

// UserBalanceResult is the balance view for one user: every group they
// belong to, plus a global position merged over exactly those groups.
//
// The smart plan here may route a payment between two users who share no
// group; MergedBalances carries the per-group provenance callers need to
// warn about that.
type UserBalanceResult struct {
	Groups            map[string]*GroupBalanceResult
	MergedBalances    []engine.MergedBalance
	SmartTransactions []engine.Transaction
}

// AddExpense validates and records an expense in a group. The split policy
// is resolved before anything is written, so malformed expenses are
// rejected with the engine's error taxonomy and never reach the ledger.
func (s *LedgerService) AddExpense(ctx context.Context, groupID string, in ExpenseInput) (*ExpenseWithSplits, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !group.HasMember(in.PaidBy) {
		return nil, fmt.Errorf("%w: payer %s", engine.ErrUnknownUserInGroup, in.PaidBy)
	}
	for _, share := range in.Shares {
		if !group.HasMember(share.UserID) {
			return nil, fmt.Errorf("%w: participant %s", engine.ErrUnknownUserInGroup, share.UserID)
		}
	}

	expense := &models.Expense{
		GroupID:     groupID,
		Description: in.Description,
		Amount:      in.Amount,
		PaidBy:      in.PaidBy,
		SplitType:   in.SplitType,
		Shares:      in.Shares,
	}

	splits, err := engine.ResolveSplits(expense)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	slog.Info("expense recorded",
		"expense_id", expense.ID,
		"group_id", groupID,
		"amount", expense.Amount,
		"split_type", expense.SplitType,
	)
	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// GroupExpenses returns a group's expenses with their splits recomputed.
func (s *LedgerService) GroupExpenses(ctx context.Context, groupID string) ([]*ExpenseWithSplits, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	expenses, err := s.store.ExpensesForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	out := make([]*ExpenseWithSplits, len(expenses))
	for i, e := range expenses {
		splits, err := engine.ResolveSplits(e)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		out[i] = &ExpenseWithSplits{Expense: e, Splits: splits}
	}
	return out, nil
}

// GroupBalances derives a group's net balances, its settlement plan, and a
// smart plan netted across every group in the system.
func (s *LedgerService) GroupBalances(ctx context.Context, groupID string) (*GroupBalanceResult, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances, err := s.groupBalances(ctx, group)
	if err != nil {
		return nil, err
	}
	plan, err := engine.Plan(balances)
	if err != nil {
		return nil, s.checkInvariant(err, "group", groupID)
	}

	// Smart plan scope is system-wide here, matching the group-balances
	// view clients already have. The per-user endpoint nets over only the
	// user's own groups.
	allGroups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	byGroup, err := s.balancesByGroup(ctx, allGroups)
	if err != nil {
		return nil, err
	}
	_, smartPlan, err := engine.NetAcrossGroups(byGroup)
	if err != nil {
		return nil, s.checkInvariant(err, "group", groupID)
	}

	return &GroupBalanceResult{
		Balances:          engine.SortedBalances(balances),
		Transactions:      plan,
		SmartTransactions: smartPlan,
	}, nil
}

// UserBalances derives per-group balances for every group the user belongs
// to, and a global plan netted over exactly those groups.
func (s *LedgerService) UserBalances(ctx context.Context, userID string) (*UserBalanceResult, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	groups, err := s.store.GroupsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byGroup, err := s.balancesByGroup(ctx, groups)
	if err != nil {
		return nil, err
	}

	results := make(map[string]*GroupBalanceResult, len(groups))
	for groupID, balances := range byGroup {
		plan, err := engine.Plan(balances)
		if err != nil {
			return nil, s.checkInvariant(err, "group", groupID)
		}
		results[groupID] = &GroupBalanceResult{
			Balances:     engine.SortedBalances(balances),
			Transactions: plan,
		}
	}

	merged, smartPlan, err := engine.NetAcrossGroups(byGroup)
	if err != nil {
		return nil, s.checkInvariant(err, "user", userID)
	}

	return &UserBalanceResult{
		Groups:            results,
		MergedBalances:    merged,
		SmartTransactions: smartPlan,
	}, nil
}

func (s *LedgerService) groupBalances(ctx context.Context, group *models.Group) (map[string]int64, error) {
	expenses, err := s.store.ExpensesForGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	balances, err := engine.GroupBalances(group, expenses)
	if err != nil {
		return nil, s.checkInvariant(err, "group", group.ID)
	}
	return balances, nil
}

func (s *LedgerService) balancesByGroup(ctx context.Context, groups []*models.Group) (map[string]map[string]int64, error) {
	byGroup := make(map[string]map[string]int64, len(groups))
	for _, group := range groups {
		balances, err := s.groupBalances(ctx, group)
		if err != nil {
			return nil, err
		}
		byGroup[group.ID] = balances
	}
	return byGroup, nil
}

// checkInvariant logs unbalanced-input errors loudly: they mean the
// resolver or aggregator violated the zero-sum invariant, not that the
// caller sent bad input.
func (s *LedgerService) checkInvariant(err error, scope, id string) error {
	if errors.Is(err, engine.ErrUnbalancedInput) {
		slog.Error("zero-sum invariant violated", "scope", scope, "id", id, "error", err)
	}
	return err
}
