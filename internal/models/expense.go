package models

// Expense represents a paid amount split among users.
// An expense with an empty GroupID is a personal (one-to-one) expense;
// those are the only expenses that feed contact discovery.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is a short human-readable label (e.g., "Dinner", "Cab").
	Description string

	// Amount is the total amount paid.
	Amount float64

	// PaidByUserID is the user who paid the full amount.
	// The payer does not have to appear in Splits.
	PaidByUserID string

	// GroupID is the group this expense belongs to, or empty for a
	// personal expense.
	GroupID string

	// Splits is the per-user share breakdown, one entry per participant
	// owing a share.
	Splits []Split

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Split is one user's share of an expense.
type Split struct {
	// UserID references the user owing this share.
	UserID string

	// Amount is this user's share of the expense.
	Amount float64
}
