// Package handler exposes the Splitr services over a JSON HTTP API.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitr/backend/internal/apperror"
	"github.com/splitr/backend/internal/auth"
	"github.com/splitr/backend/internal/middleware"
	"github.com/splitr/backend/internal/models"
	"github.com/splitr/backend/internal/service"
)

// Handler wires the service layer to HTTP routes.
type Handler struct {
	authService    *service.AuthService
	contactService *service.ContactService
	groupService   *service.GroupService
	expenseService *service.ExpenseService
	jwtManager     *auth.JWTManager
}

// New creates a Handler over the given services.
func New(
	authService *service.AuthService,
	contactService *service.ContactService,
	groupService *service.GroupService,
	expenseService *service.ExpenseService,
	jwtManager *auth.JWTManager,
) *Handler {
	return &Handler{
		authService:    authService,
		contactService: contactService,
		groupService:   groupService,
		expenseService: expenseService,
		jwtManager:     jwtManager,
	}
}

// Routes builds the full route tree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.jwtManager))

			r.Get("/auth/me", h.me)
			r.Get("/contacts", h.getAllContacts)
			r.Post("/groups", h.createGroup)
			r.Get("/groups", h.listGroups)
			r.Get("/groups/{groupID}", h.getGroup)
			r.Get("/groups/{groupID}/expenses", h.listGroupExpenses)
			r.Post("/expenses", h.createExpense)
			r.Get("/expenses/{expenseID}", h.getExpense)
		})
	})

	return r
}

// currentUser resolves the authenticated user from the request context.
// The resolved user is passed explicitly into the services so they stay
// independent of the transport.
func (h *Handler) currentUser(r *http.Request) (*models.User, error) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		return nil, apperror.Unauthenticated()
	}
	return h.authService.CurrentUser(r.Context(), userID)
}
