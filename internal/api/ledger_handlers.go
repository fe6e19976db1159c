package api

import (
	"net/http"

	"fairsplit/internal/models"
	"fairsplit/internal/service"
)

type createExpenseRequest struct {
	Description string      `json:"description"`
	Amount      int64       `json:"amount"`
	SplitType   string      `json:"split_type"`
	PaidBy      string      `json:"paid_by"`
	Splits      []shareJSON `json:"splits"`
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	shares := make([]models.Share, len(req.Splits))
	for i, sp := range req.Splits {
		shares[i] = models.Share{UserID: sp.UserID, Weight: sp.Share}
	}

	expense, err := s.ledger.AddExpense(r.Context(), r.PathValue("id"), service.ExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		PaidBy:      req.PaidBy,
		SplitType:   models.SplitType(req.SplitType),
		Shares:      shares,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseJSON(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.GroupExpenses(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]expenseJSON, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseJSON(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	result, err := s.ledger.GroupBalances(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupBalancesJSON(result))
}

func (s *Server) handleUserBalances(w http.ResponseWriter, r *http.Request) {
	result, err := s.ledger.UserBalances(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	groups := make(map[string]groupBalancesJSON, len(result.Groups))
	for groupID, gb := range result.Groups {
		groups[groupID] = toGroupBalancesJSON(gb)
	}
	writeJSON(w, http.StatusOK, userBalancesJSON{
		GroupBalances:     groups,
		MergedBalances:    toMergedBalancesJSON(result.MergedBalances),
		SmartTransactions: toTransactionsJSON(result.SmartTransactions),
	})
}
