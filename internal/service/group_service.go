package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/splitr/backend/internal/apperror"
	"github.com/splitr/backend/internal/models"
	"github.com/splitr/backend/internal/storage"
)

// GroupService creates and reads expense-sharing groups.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroupInput is the caller-supplied payload for CreateGroup.
type CreateGroupInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"members"`
}

// CreateGroup validates and persists a new group, returning its ID.
//
// The creator is always a member and the only admin, even when omitted from
// (or duplicated in) the supplied member list. Every member ID must resolve
// to an existing user; the first missing one aborts the call before anything
// is written, so a partially-populated group is never visible.
func (s *GroupService) CreateGroup(ctx context.Context, currentUser *models.User, in CreateGroupInput) (string, error) {
	if currentUser == nil {
		return "", apperror.Unauthenticated()
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", apperror.InvalidArgument("group name cannot be empty")
	}

	// Deduplicated union of the supplied members and the creator, iterated
	// in sorted order so membership construction is deterministic.
	memberSet := make(map[string]struct{}, len(in.MemberIDs)+1)
	for _, id := range in.MemberIDs {
		memberSet[id] = struct{}{}
	}
	memberSet[currentUser.ID] = struct{}{}

	ids := make([]string, 0, len(memberSet))
	for id := range memberSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Every member must exist before anything is written (all-or-nothing).
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		slog.Error("CreateGroup member lookup failed", "user_id", currentUser.ID, "error", err)
		return "", apperror.Unavailable("verify group members", err)
	}
	for _, id := range ids {
		if _, ok := users[id]; !ok {
			return "", apperror.NotFound("user", id)
		}
	}

	// One shared timestamp for all founding members.
	now := time.Now().Unix()
	members := make([]models.GroupMember, 0, len(ids))
	for _, id := range ids {
		role := models.RoleMember
		if id == currentUser.ID {
			role = models.RoleAdmin
		}
		members = append(members, models.GroupMember{
			UserID:   id,
			Role:     role,
			JoinedAt: now,
		})
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedBy:   currentUser.ID,
		Members:     members,
		CreatedAt:   now,
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "user_id", currentUser.ID, "error", err)
		return "", apperror.Unavailable("create group", err)
	}

	slog.Info("Group created",
		"group_id", group.ID,
		"created_by", currentUser.ID,
		"members_count", len(members),
	)

	return group.ID, nil
}

// GetGroup retrieves a group the current user belongs to. Non-members get
// NotFound so group existence is not leaked.
func (s *GroupService) GetGroup(ctx context.Context, currentUser *models.User, groupID string) (*models.Group, error) {
	if currentUser == nil {
		return nil, apperror.Unauthenticated()
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err == storage.ErrNotFound {
		return nil, apperror.NotFound("group", groupID)
	}
	if err != nil {
		slog.Error("GetGroup failed", "group_id", groupID, "error", err)
		return nil, apperror.Unavailable("get group", err)
	}

	if !isMember(group, currentUser.ID) {
		return nil, apperror.NotFound("group", groupID)
	}

	return group, nil
}

// ListGroups retrieves every group the current user is a member of.
func (s *GroupService) ListGroups(ctx context.Context, currentUser *models.User) ([]*models.Group, error) {
	if currentUser == nil {
		return nil, apperror.Unauthenticated()
	}

	groups, err := s.store.ListGroupsByMember(ctx, currentUser.ID)
	if err != nil {
		slog.Error("ListGroups failed", "user_id", currentUser.ID, "error", err)
		return nil, apperror.Unavailable("list groups", err)
	}

	return groups, nil
}

// isMember reports whether the user appears in the group's member list.
func isMember(group *models.Group, userID string) bool {
	for _, member := range group.Members {
		if member.UserID == userID {
			return true
		}
	}
	return false
}
