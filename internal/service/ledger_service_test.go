package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fairsplit/internal/engine"
	"fairsplit/internal/models"
	"fairsplit/internal/storage/sqlite"
)

func newTestLedger(t *testing.T) (*LedgerService, *sqlite.SQLiteStore) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "fairsplit-svc-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewLedgerService(store), store
}

func createUserAndGroup(t *testing.T, store *sqlite.SQLiteStore, groupName string, userNames ...string) (*models.Group, []*models.User) {
	t.Helper()
	ctx := context.Background()

	users := make([]*models.User, len(userNames))
	memberIDs := make([]string, len(userNames))
	for i, name := range userNames {
		user := models.NewUser(name, name+"+"+groupName+"@example.com", "")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", name, err)
		}
		users[i] = user
		memberIDs[i] = user.ID
	}

	group := &models.Group{Name: groupName, Members: memberIDs}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup(%s) failed: %v", groupName, err)
	}
	return group, users
}

func equalInput(paidBy string, amount int64, participants ...*models.User) ExpenseInput {
	shares := make([]models.Share, len(participants))
	for i, u := range participants {
		shares[i] = models.Share{UserID: u.ID}
	}
	return ExpenseInput{
		Description: "shared",
		Amount:      amount,
		PaidBy:      paidBy,
		SplitType:   models.SplitEqual,
		Shares:      shares,
	}
}

func TestAddExpenseRejectsNonMembers(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()

	group, users := createUserAndGroup(t, store, "pair", "alice", "bob")
	outsider := models.NewUser("mallory", "mallory@example.com", "")
	if err := store.CreateUser(ctx, outsider); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	_, err := ledger.AddExpense(ctx, group.ID, equalInput(outsider.ID, 1000, users[0], users[1]))
	if !errors.Is(err, engine.ErrUnknownUserInGroup) {
		t.Errorf("AddExpense with outside payer: error = %v, want ErrUnknownUserInGroup", err)
	}

	_, err = ledger.AddExpense(ctx, group.ID, equalInput(users[0].ID, 1000, users[0], outsider))
	if !errors.Is(err, engine.ErrUnknownUserInGroup) {
		t.Errorf("AddExpense with outside participant: error = %v, want ErrUnknownUserInGroup", err)
	}

	// Rejected expenses must leave the ledger untouched.
	expenses, err := ledger.GroupExpenses(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupExpenses failed: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("ledger has %d expenses after rejections, want 0", len(expenses))
	}
}

func TestUserBalancesScopesNettingToOwnGroups(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()

	// alice and bob share two groups; carol and dave have an unrelated one.
	shared1, sharedUsers := createUserAndGroup(t, store, "trip", "alice", "bob")
	alice, bob := sharedUsers[0], sharedUsers[1]

	shared2 := &models.Group{Name: "house", Members: []string{alice.ID, bob.ID}}
	if err := store.CreateGroup(ctx, shared2); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	otherGroup, otherUsers := createUserAndGroup(t, store, "other", "carol", "dave")
	carol, dave := otherUsers[0], otherUsers[1]

	if _, err := ledger.AddExpense(ctx, shared1.ID, equalInput(bob.ID, 2000, alice, bob)); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := ledger.AddExpense(ctx, shared2.ID, equalInput(alice.ID, 6000, alice, bob)); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := ledger.AddExpense(ctx, otherGroup.ID, equalInput(carol.ID, 1000, carol, dave)); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	result, err := ledger.UserBalances(ctx, alice.ID)
	if err != nil {
		t.Fatalf("UserBalances failed: %v", err)
	}

	if len(result.Groups) != 2 {
		t.Fatalf("user balance groups = %d, want 2 (carol's group excluded)", len(result.Groups))
	}
	for _, mb := range result.MergedBalances {
		if mb.UserID == carol.ID || mb.UserID == dave.ID {
			t.Errorf("merged balances include %s, who shares no group with alice", mb.UserID)
		}
	}

	if len(result.SmartTransactions) != 1 {
		t.Fatalf("smart transactions = %v, want one", result.SmartTransactions)
	}
	smart := result.SmartTransactions[0]
	if smart.FromUserID != bob.ID || smart.ToUserID != alice.ID || smart.Amount != 2000 {
		t.Errorf("smart transaction = %+v, want bob->alice 2000", smart)
	}
}

func TestGroupBalancesSmartPlanIsSystemWide(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()

	group1, users1 := createUserAndGroup(t, store, "g1", "alice", "bob")
	group2, users2 := createUserAndGroup(t, store, "g2", "carol", "dave")

	if _, err := ledger.AddExpense(ctx, group1.ID, equalInput(users1[0].ID, 1000, users1[0], users1[1])); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := ledger.AddExpense(ctx, group2.ID, equalInput(users2[0].ID, 3000, users2[0], users2[1])); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	result, err := ledger.GroupBalances(ctx, group1.ID)
	if err != nil {
		t.Fatalf("GroupBalances failed: %v", err)
	}

	// The per-group plan covers only group1; the smart plan spans every
	// group in the system, so it settles both debts.
	if len(result.Transactions) != 1 {
		t.Errorf("transactions = %v, want one", result.Transactions)
	}
	if len(result.SmartTransactions) != 2 {
		t.Errorf("smart transactions = %v, want two (one per indebted pair)", result.SmartTransactions)
	}
}
