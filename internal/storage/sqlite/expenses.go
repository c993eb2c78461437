package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitr/backend/internal/models"
	"github.com/splitr/backend/internal/storage"
)

// CreateExpense persists a new expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID and timestamp if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// A personal expense stores NULL for group_id so the
	// (paid_by_user_id, group_id IS NULL) index queries stay simple.
	var groupID interface{}
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, description, amount, paid_by_user_id, group_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Description, expense.Amount, expense.PaidByUserID, groupID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, amount) VALUES (?, ?, ?)",
			expense.ID, split.UserID, split.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var groupID sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, description, amount, paid_by_user_id, group_id, created_at FROM expenses WHERE id = ?",
		expenseID,
	).Scan(&expense.ID, &expense.Description, &expense.Amount, &expense.PaidByUserID, &groupID, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if groupID.Valid {
		expense.GroupID = groupID.String
	}

	splits, err := s.loadSplits(ctx, expense.ID)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits

	return expense, nil
}

// ListExpensesByPayer retrieves expenses paid by a user within a group.
// An empty groupID matches personal expenses (group_id IS NULL).
func (s *SQLiteStore) ListExpensesByPayer(ctx context.Context, payerID, groupID string) ([]*models.Expense, error) {
	var rows *sql.Rows
	var err error
	if groupID == "" {
		rows, err = s.db.QueryContext(ctx,
			"SELECT id, description, amount, paid_by_user_id, group_id, created_at FROM expenses WHERE paid_by_user_id = ? AND group_id IS NULL ORDER BY created_at DESC",
			payerID,
		)
	} else {
		rows, err = s.db.QueryContext(ctx,
			"SELECT id, description, amount, paid_by_user_id, group_id, created_at FROM expenses WHERE paid_by_user_id = ? AND group_id = ? ORDER BY created_at DESC",
			payerID, groupID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by payer: %w", err)
	}
	defer rows.Close()

	return s.collectExpenses(ctx, rows)
}

// ListPersonalExpenses retrieves all expenses not attached to any group.
func (s *SQLiteStore) ListPersonalExpenses(ctx context.Context) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, paid_by_user_id, group_id, created_at FROM expenses WHERE group_id IS NULL ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal expenses: %w", err)
	}
	defer rows.Close()

	return s.collectExpenses(ctx, rows)
}

// ListExpensesByGroup retrieves all expenses attached to a group.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, paid_by_user_id, group_id, created_at FROM expenses WHERE group_id = ? ORDER BY created_at DESC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	return s.collectExpenses(ctx, rows)
}

// collectExpenses scans expense rows and hydrates their splits.
func (s *SQLiteStore) collectExpenses(ctx context.Context, rows *sql.Rows) ([]*models.Expense, error) {
	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var groupID sql.NullString

		if err := rows.Scan(&expense.ID, &expense.Description, &expense.Amount,
			&expense.PaidByUserID, &groupID, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if groupID.Valid {
			expense.GroupID = groupID.String
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		splits, err := s.loadSplits(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Splits = splits
	}

	return expenses, nil
}

// loadSplits retrieves the splits for one expense, ordered by user ID.
func (s *SQLiteStore) loadSplits(ctx context.Context, expenseID string) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, amount FROM expense_splits WHERE expense_id = ? ORDER BY user_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var split models.Split
		if err := rows.Scan(&split.UserID, &split.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return splits, nil
}
