package api

import (
	"github.com/shopspring/decimal"

	"fairsplit/internal/engine"
	"fairsplit/internal/models"
	"fairsplit/internal/service"
)

type userJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

type groupJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
	CreatedAt   int64    `json:"created_at"`
}

// shareJSON is one participant entry of an expense request or response.
// For percentage splits, share is the weight; for equal splits it is
// ignored and may be omitted.
type shareJSON struct {
	UserID string          `json:"user_id"`
	Share  decimal.Decimal `json:"share"`
}

type splitJSON struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
}

type expenseJSON struct {
	ID          string      `json:"id"`
	GroupID     string      `json:"group_id"`
	Description string      `json:"description"`
	Amount      int64       `json:"amount"`
	SplitType   string      `json:"split_type"`
	PaidBy      string      `json:"paid_by"`
	Shares      []shareJSON `json:"splits"`
	Resolved    []splitJSON `json:"resolved_splits"`
	CreatedAt   int64       `json:"created_at"`
}

type balanceJSON struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
}

type transactionJSON struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Amount     int64  `json:"amount"`
}

type groupBalancesJSON struct {
	Balances          []balanceJSON     `json:"balances"`
	Transactions      []transactionJSON `json:"transactions"`
	SmartTransactions []transactionJSON `json:"smart_transactions,omitempty"`
}

type contributionJSON struct {
	GroupID string `json:"group_id"`
	Amount  int64  `json:"amount"`
}

type mergedBalanceJSON struct {
	UserID        string             `json:"user_id"`
	Amount        int64              `json:"amount"`
	Contributions []contributionJSON `json:"contributions"`
}

type userBalancesJSON struct {
	GroupBalances     map[string]groupBalancesJSON `json:"group_balances"`
	MergedBalances    []mergedBalanceJSON          `json:"merged_balances"`
	SmartTransactions []transactionJSON            `json:"smart_transactions"`
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toGroupJSON(g *models.Group) groupJSON {
	members := g.Members
	if members == nil {
		members = []string{}
	}
	return groupJSON{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Members:     members,
		CreatedAt:   g.CreatedAt,
	}
}

func toExpenseJSON(e *service.ExpenseWithSplits) expenseJSON {
	shares := make([]shareJSON, len(e.Expense.Shares))
	for i, s := range e.Expense.Shares {
		shares[i] = shareJSON{UserID: s.UserID, Share: s.Weight}
	}
	resolved := make([]splitJSON, len(e.Splits))
	for i, s := range e.Splits {
		resolved[i] = splitJSON{UserID: s.UserID, Amount: s.Amount}
	}
	return expenseJSON{
		ID:          e.Expense.ID,
		GroupID:     e.Expense.GroupID,
		Description: e.Expense.Description,
		Amount:      e.Expense.Amount,
		SplitType:   string(e.Expense.SplitType),
		PaidBy:      e.Expense.PaidBy,
		Shares:      shares,
		Resolved:    resolved,
		CreatedAt:   e.Expense.CreatedAt,
	}
}

func toBalancesJSON(balances []engine.Balance) []balanceJSON {
	out := make([]balanceJSON, len(balances))
	for i, b := range balances {
		out[i] = balanceJSON{UserID: b.UserID, Amount: b.Amount}
	}
	return out
}

func toTransactionsJSON(plan []engine.Transaction) []transactionJSON {
	out := make([]transactionJSON, len(plan))
	for i, t := range plan {
		out[i] = transactionJSON{FromUserID: t.FromUserID, ToUserID: t.ToUserID, Amount: t.Amount}
	}
	return out
}

func toGroupBalancesJSON(r *service.GroupBalanceResult) groupBalancesJSON {
	return groupBalancesJSON{
		Balances:          toBalancesJSON(r.Balances),
		Transactions:      toTransactionsJSON(r.Transactions),
		SmartTransactions: toTransactionsJSON(r.SmartTransactions),
	}
}

func toMergedBalancesJSON(merged []engine.MergedBalance) []mergedBalanceJSON {
	out := make([]mergedBalanceJSON, len(merged))
	for i, mb := range merged {
		contributions := make([]contributionJSON, len(mb.Contributions))
		for j, c := range mb.Contributions {
			contributions[j] = contributionJSON{GroupID: c.GroupID, Amount: c.Amount}
		}
		out[i] = mergedBalanceJSON{
			UserID:        mb.UserID,
			Amount:        mb.Amount,
			Contributions: contributions,
		}
	}
	return out
}
