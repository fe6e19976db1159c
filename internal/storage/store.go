// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"fairsplit/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// The store owns write serialization: expense creation within a group is a
// single transaction, so balance reads never observe a half-written expense.
// Reads run against a consistent snapshot with no locking in the engine.
type Store interface {
	// CreateUser persists a new user. The user's ID must be set.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all users ordered by creation time.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// DeleteUser removes a user along with their memberships, paid
	// expenses, and expense shares.
	DeleteUser(ctx context.Context, userID string) error

	// CreateGroup persists a new group and its member list.
	// The group.ID and group.CreatedAt fields are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, including its member list.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns all groups including their member lists.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// GroupsForUser returns every group the user is a member of.
	GroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// DeleteGroup removes a group, its memberships, and its expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists an expense and its shares atomically.
	// The expense.ID and expense.CreatedAt fields are populated by the
	// store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ExpensesForGroup returns all expenses of a group, shares included,
	// ordered by creation time.
	ExpensesForGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
