package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitr/backend/internal/apperror"
	"github.com/splitr/backend/internal/models"
	"github.com/splitr/backend/internal/service"
)

type groupMemberResponse struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joinedAt"`
}

type groupResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	CreatedBy   string                `json:"createdBy"`
	Members     []groupMemberResponse `json:"members"`
	CreatedAt   int64                 `json:"createdAt"`
}

type createGroupResponse struct {
	ID string `json:"id"`
}

func toGroupResponse(group *models.Group) groupResponse {
	members := make([]groupMemberResponse, len(group.Members))
	for i, member := range group.Members {
		members[i] = groupMemberResponse{
			UserID:   member.UserID,
			Role:     member.Role,
			JoinedAt: member.JoinedAt,
		}
	}
	return groupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatedBy:   group.CreatedBy,
		Members:     members,
		CreatedAt:   group.CreatedAt,
	}
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.CreateGroupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperror.InvalidArgument("invalid JSON body"))
		return
	}

	groupID, err := h.groupService.CreateGroup(r.Context(), user, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createGroupResponse{ID: groupID})
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	group, err := h.groupService.GetGroup(r.Context(), user, chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	groups, err := h.groupService.ListGroups(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]groupResponse, len(groups))
	for i, group := range groups {
		resp[i] = toGroupResponse(group)
	}

	writeJSON(w, http.StatusOK, resp)
}
