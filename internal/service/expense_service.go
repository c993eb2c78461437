package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/splitr/backend/internal/apperror"
	"github.com/splitr/backend/internal/models"
	"github.com/splitr/backend/internal/storage"
)

// ExpenseService records and reads the expense ledger that contact
// discovery aggregates over.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// SplitInput is one participant's share in a CreateExpense call.
type SplitInput struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
}

// CreateExpenseInput is the caller-supplied payload for CreateExpense.
type CreateExpenseInput struct {
	Description  string       `json:"description"`
	Amount       float64      `json:"amount"`
	PaidByUserID string       `json:"paidByUserId"` // defaults to the current user
	GroupID      string       `json:"groupId"`      // empty for a personal expense
	Splits       []SplitInput `json:"splits"`
}

// CreateExpense validates and persists a new expense, returning its ID.
// Every split must reference an existing user; the payer need not appear in
// the splits. A group expense requires the current user to be a member of
// the group.
func (s *ExpenseService) CreateExpense(ctx context.Context, currentUser *models.User, in CreateExpenseInput) (string, error) {
	if currentUser == nil {
		return "", apperror.Unauthenticated()
	}

	if in.Amount <= 0 {
		return "", apperror.InvalidArgument("expense amount must be positive")
	}
	if len(in.Splits) == 0 {
		return "", apperror.InvalidArgument("expense must have at least one split")
	}
	for _, split := range in.Splits {
		if split.Amount < 0 {
			return "", apperror.InvalidArgument("split amounts cannot be negative")
		}
	}

	payerID := in.PaidByUserID
	if payerID == "" {
		payerID = currentUser.ID
	}

	// Collect every referenced user: payer plus split participants.
	refSet := map[string]struct{}{payerID: {}}
	seen := make(map[string]struct{}, len(in.Splits))
	splits := make([]models.Split, 0, len(in.Splits))
	for _, split := range in.Splits {
		if _, dup := seen[split.UserID]; dup {
			return "", apperror.InvalidArgument("duplicate split user " + split.UserID)
		}
		seen[split.UserID] = struct{}{}
		refSet[split.UserID] = struct{}{}
		splits = append(splits, models.Split{UserID: split.UserID, Amount: split.Amount})
	}

	ids := make([]string, 0, len(refSet))
	for id := range refSet {
		ids = append(ids, id)
	}

	// User existence and group membership checks are independent reads;
	// run them concurrently.
	var users map[string]*models.User
	var group *models.Group
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.store.GetUsersByIDs(gctx, ids)
		return err
	})
	if in.GroupID != "" {
		g.Go(func() error {
			var err error
			group, err = s.store.GetGroup(gctx, in.GroupID)
			if err == storage.ErrNotFound {
				return nil // reported as NotFound below, not as a storage failure
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("CreateExpense validation reads failed", "user_id", currentUser.ID, "error", err)
		return "", apperror.Unavailable("verify expense references", err)
	}

	for _, id := range ids {
		if _, ok := users[id]; !ok {
			return "", apperror.NotFound("user", id)
		}
	}

	if in.GroupID != "" {
		if group == nil {
			return "", apperror.NotFound("group", in.GroupID)
		}
		if !isMember(group, currentUser.ID) {
			return "", apperror.NotFound("group", in.GroupID)
		}
	}

	expense := &models.Expense{
		Description:  strings.TrimSpace(in.Description),
		Amount:       in.Amount,
		PaidByUserID: payerID,
		GroupID:      in.GroupID,
		Splits:       splits,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "user_id", currentUser.ID, "error", err)
		return "", apperror.Unavailable("create expense", err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"paid_by", payerID,
		"group_id", in.GroupID,
		"splits_count", len(splits),
	)

	return expense.ID, nil
}

// GetExpense retrieves an expense the current user participates in, either
// as payer or through a split.
func (s *ExpenseService) GetExpense(ctx context.Context, currentUser *models.User, expenseID string) (*models.Expense, error) {
	if currentUser == nil {
		return nil, apperror.Unauthenticated()
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err == storage.ErrNotFound {
		return nil, apperror.NotFound("expense", expenseID)
	}
	if err != nil {
		slog.Error("GetExpense failed", "expense_id", expenseID, "error", err)
		return nil, apperror.Unavailable("get expense", err)
	}

	if expense.PaidByUserID != currentUser.ID && !owesShare(expense, currentUser.ID) {
		return nil, apperror.NotFound("expense", expenseID)
	}

	return expense, nil
}

// ListGroupExpenses retrieves all expenses of a group the current user
// belongs to.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, currentUser *models.User, groupID string) ([]*models.Expense, error) {
	if currentUser == nil {
		return nil, apperror.Unauthenticated()
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err == storage.ErrNotFound {
		return nil, apperror.NotFound("group", groupID)
	}
	if err != nil {
		slog.Error("ListGroupExpenses group lookup failed", "group_id", groupID, "error", err)
		return nil, apperror.Unavailable("get group", err)
	}
	if !isMember(group, currentUser.ID) {
		return nil, apperror.NotFound("group", groupID)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		slog.Error("ListGroupExpenses failed", "group_id", groupID, "error", err)
		return nil, apperror.Unavailable("list group expenses", err)
	}

	return expenses, nil
}
