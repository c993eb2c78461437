// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitr/backend/internal/models"
)

// ErrNotFound is returned by point lookups when no record matches.
// Callers distinguish it from infrastructure failures with errors.Is.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for Splitr storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. Fails if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns (nil, nil) if no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, ErrNotFound) if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users by ID, keyed by user ID.
	// IDs that do not resolve are omitted from the result rather than
	// failing the lookup.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateExpense persists a new expense with its splits atomically.
	// Populates ID and CreatedAt when unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, splits included.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByPayer retrieves expenses with the given payer and
	// group ID. An empty groupID matches personal expenses only.
	ListExpensesByPayer(ctx context.Context, payerID, groupID string) ([]*models.Expense, error)

	// ListPersonalExpenses retrieves all expenses not attached to any group.
	ListPersonalExpenses(ctx context.Context) ([]*models.Expense, error)

	// ListExpensesByGroup retrieves all expenses attached to a group.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// CreateGroup persists a new group and its full member list as a
	// single atomic write. Populates ID and CreatedAt when unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, members included.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByMember retrieves every group whose membership contains
	// the given user.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// Close releases any resources held by the store.
	Close() error
}
