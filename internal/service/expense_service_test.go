package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitr/backend/internal/apperror"
)

func TestCreateExpenseValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store)

	alice := seedUser(t, store, "Alice", "alice@example.com")
	bob := seedUser(t, store, "Bob", "bob@example.com")

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := svc.CreateExpense(context.Background(), nil, CreateExpenseInput{})
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := svc.CreateExpense(context.Background(), alice, CreateExpenseInput{
			Amount: 0,
			Splits: []SplitInput{{UserID: bob.ID, Amount: 0}},
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("no splits", func(t *testing.T) {
		_, err := svc.CreateExpense(context.Background(), alice, CreateExpenseInput{Amount: 10})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("duplicate split user", func(t *testing.T) {
		_, err := svc.CreateExpense(context.Background(), alice, CreateExpenseInput{
			Amount: 10,
			Splits: []SplitInput{{UserID: bob.ID, Amount: 5}, {UserID: bob.ID, Amount: 5}},
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("unknown split user", func(t *testing.T) {
		_, err := svc.CreateExpense(context.Background(), alice, CreateExpenseInput{
			Amount: 10,
			Splits: []SplitInput{{UserID: "ghost", Amount: 10}},
		})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := svc.CreateExpense(context.Background(), alice, CreateExpenseInput{
			Amount:  10,
			GroupID: "no-such-group",
			Splits:  []SplitInput{{UserID: bob.ID, Amount: 10}},
		})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestCreateExpenseDefaultsPayerToCurrentUser(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store)

	alice := seedUser(t, store, "Alice", "alice@example.com")
	bob := seedUser(t, store, "Bob", "bob@example.com")

	expenseID, err := svc.CreateExpense(context.Background(), alice, CreateExpenseInput{
		Description: "Cab",
		Amount:      12,
		Splits:      []SplitInput{{UserID: bob.ID, Amount: 12}},
	})
	require.NoError(t, err)

	expense, err := store.GetExpense(context.Background(), expenseID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, expense.PaidByUserID)
	assert.Equal(t, "Cab", expense.Description)
	assert.Empty(t, expense.GroupID)
}

func TestCreateExpenseGroupMembershipRequired(t *testing.T) {
	store := newTestStore(t)
	expenseSvc := NewExpenseService(store)
	groupSvc := NewGroupService(store)

	alice := seedUser(t, store, "Alice", "alice@example.com")
	bob := seedUser(t, store, "Bob", "bob@example.com")
	mallory := seedUser(t, store, "Mallory", "mallory@example.com")

	groupID, err := groupSvc.CreateGroup(context.Background(), alice, CreateGroupInput{
		Name:      "Trip",
		MemberIDs: []string{bob.ID},
	})
	require.NoError(t, err)

	_, err = expenseSvc.CreateExpense(context.Background(), mallory, CreateExpenseInput{
		Amount:  50,
		GroupID: groupID,
		Splits:  []SplitInput{{UserID: bob.ID, Amount: 50}},
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound, "non-members cannot add group expenses")

	expenseID, err := expenseSvc.CreateExpense(context.Background(), alice, CreateExpenseInput{
		Amount:  50,
		GroupID: groupID,
		Splits:  []SplitInput{{UserID: bob.ID, Amount: 50}},
	})
	require.NoError(t, err)

	expenses, err := expenseSvc.ListGroupExpenses(context.Background(), bob, groupID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, expenseID, expenses[0].ID)
}

func TestGetExpenseParticipantsOnly(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store)

	alice := seedUser(t, store, "Alice", "alice@example.com")
	bob := seedUser(t, store, "Bob", "bob@example.com")
	mallory := seedUser(t, store, "Mallory", "mallory@example.com")

	expenseID, err := svc.CreateExpense(context.Background(), alice, CreateExpenseInput{
		Description: "Dinner",
		Amount:      30,
		Splits:      []SplitInput{{UserID: bob.ID, Amount: 30}},
	})
	require.NoError(t, err)

	// Payer and split participant can read it.
	_, err = svc.GetExpense(context.Background(), alice, expenseID)
	assert.NoError(t, err)
	_, err = svc.GetExpense(context.Background(), bob, expenseID)
	assert.NoError(t, err)

	// Outsiders get NotFound.
	_, err = svc.GetExpense(context.Background(), mallory, expenseID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
