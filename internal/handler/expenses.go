package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitr/backend/internal/apperror"
	"github.com/splitr/backend/internal/models"
	"github.com/splitr/backend/internal/service"
)

type splitResponse struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
}

type expenseResponse struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       float64         `json:"amount"`
	PaidByUserID string          `json:"paidByUserId"`
	GroupID      string          `json:"groupId,omitempty"`
	Splits       []splitResponse `json:"splits"`
	CreatedAt    int64           `json:"createdAt"`
}

type createExpenseResponse struct {
	ID string `json:"id"`
}

func toExpenseResponse(expense *models.Expense) expenseResponse {
	splits := make([]splitResponse, len(expense.Splits))
	for i, split := range expense.Splits {
		splits[i] = splitResponse{UserID: split.UserID, Amount: split.Amount}
	}
	return expenseResponse{
		ID:           expense.ID,
		Description:  expense.Description,
		Amount:       expense.Amount,
		PaidByUserID: expense.PaidByUserID,
		GroupID:      expense.GroupID,
		Splits:       splits,
		CreatedAt:    expense.CreatedAt,
	}
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.CreateExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperror.InvalidArgument("invalid JSON body"))
		return
	}

	expenseID, err := h.expenseService.CreateExpense(r.Context(), user, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createExpenseResponse{ID: expenseID})
}

func (h *Handler) getExpense(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	expense, err := h.expenseService.GetExpense(r.Context(), user, chi.URLParam(r, "expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (h *Handler) listGroupExpenses(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	expenses, err := h.expenseService.ListGroupExpenses(r.Context(), user, chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, expense := range expenses {
		resp[i] = toExpenseResponse(expense)
	}

	writeJSON(w, http.StatusOK, resp)
}
