package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitr/backend/internal/apperror"
	"github.com/splitr/backend/internal/models"
)

func TestCreateGroupUnauthenticated(t *testing.T) {
	svc := NewGroupService(newTestStore(t))

	_, err := svc.CreateGroup(context.Background(), nil, CreateGroupInput{Name: "Trip"})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestCreateGroupEmptyName(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	alice := seedUser(t, store, "Alice", "alice@example.com")

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateGroup(context.Background(), alice, CreateGroupInput{Name: name})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument, "name %q", name)
	}
}

// The worked example: "  Trip  " with members [U1, U2, U2] called by U1
// persists name "Trip" and exactly two members, {U1, admin} and {U2, member}.
func TestCreateGroupTrimsAndDeduplicates(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)

	u1 := seedUser(t, store, "Uma", "u1@example.com")
	u2 := seedUser(t, store, "Viktor", "u2@example.com")

	groupID, err := svc.CreateGroup(context.Background(), u1, CreateGroupInput{
		Name:      "  Trip  ",
		MemberIDs: []string{u1.ID, u2.ID, u2.ID},
	})
	require.NoError(t, err)
	require.NotEmpty(t, groupID)

	group, err := store.GetGroup(context.Background(), groupID)
	require.NoError(t, err)

	assert.Equal(t, "Trip", group.Name)
	assert.Equal(t, "", group.Description)
	assert.Equal(t, u1.ID, group.CreatedBy)
	require.Len(t, group.Members, 2)

	roles := make(map[string]string)
	for _, m := range group.Members {
		roles[m.UserID] = m.Role
		assert.NotZero(t, m.JoinedAt)
	}
	assert.Equal(t, models.RoleAdmin, roles[u1.ID])
	assert.Equal(t, models.RoleMember, roles[u2.ID])
}

// The creator is always a member with role admin, exactly once, even when
// omitted from the supplied list.
func TestCreateGroupCreatorAlwaysAdmin(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)

	alice := seedUser(t, store, "Alice", "alice@example.com")
	bob := seedUser(t, store, "Bob", "bob@example.com")

	t.Run("creator omitted from members", func(t *testing.T) {
		groupID, err := svc.CreateGroup(context.Background(), alice, CreateGroupInput{
			Name:      "Lunch",
			MemberIDs: []string{bob.ID},
		})
		require.NoError(t, err)

		group, err := store.GetGroup(context.Background(), groupID)
		require.NoError(t, err)

		admins := 0
		creatorEntries := 0
		for _, m := range group.Members {
			if m.Role == models.RoleAdmin {
				admins++
				assert.Equal(t, alice.ID, m.UserID, "only the creator may be admin")
			}
			if m.UserID == alice.ID {
				creatorEntries++
			}
		}
		assert.Equal(t, 1, admins)
		assert.Equal(t, 1, creatorEntries)
	})

	t.Run("empty member list", func(t *testing.T) {
		groupID, err := svc.CreateGroup(context.Background(), alice, CreateGroupInput{Name: "Solo"})
		require.NoError(t, err)

		group, err := store.GetGroup(context.Background(), groupID)
		require.NoError(t, err)
		require.Len(t, group.Members, 1)
		assert.Equal(t, alice.ID, group.Members[0].UserID)
		assert.Equal(t, models.RoleAdmin, group.Members[0].Role)
	})
}

// One invalid member ID among valid ones aborts the whole call; nothing is
// persisted.
func TestCreateGroupAtomicFailure(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)

	alice := seedUser(t, store, "Alice", "alice@example.com")
	valid := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		u := seedUser(t, store, "User", string(rune('a'+i))+"@example.com")
		valid = append(valid, u.ID)
	}

	_, err := svc.CreateGroup(context.Background(), alice, CreateGroupInput{
		Name:      "Big Group",
		MemberIDs: append(valid, "no-such-user"),
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	groups, err := store.ListGroupsByMember(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, groups, "no group may be created when a member id is invalid")
}

func TestCreateGroupTrimsDescription(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	alice := seedUser(t, store, "Alice", "alice@example.com")

	groupID, err := svc.CreateGroup(context.Background(), alice, CreateGroupInput{
		Name:        "Trip",
		Description: "  beach weekend  ",
	})
	require.NoError(t, err)

	group, err := store.GetGroup(context.Background(), groupID)
	require.NoError(t, err)
	assert.Equal(t, "beach weekend", group.Description)
}

func TestGetGroupMembershipRequired(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)

	alice := seedUser(t, store, "Alice", "alice@example.com")
	mallory := seedUser(t, store, "Mallory", "mallory@example.com")

	groupID, err := svc.CreateGroup(context.Background(), alice, CreateGroupInput{Name: "Private"})
	require.NoError(t, err)

	_, err = svc.GetGroup(context.Background(), mallory, groupID)
	assert.ErrorIs(t, err, apperror.ErrNotFound, "non-members must not see the group")

	group, err := svc.GetGroup(context.Background(), alice, groupID)
	require.NoError(t, err)
	assert.Equal(t, "Private", group.Name)
}
