package handler

import (
	"net/http"
)

// getAllContacts returns the current user's contact list: users they share
// a one-to-one expense with and groups they belong to, each sorted by name.
func (h *Handler) getAllContacts(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	contacts, err := h.contactService.GetAllContacts(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contacts)
}
