package models

// Role of a member within a group.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Group represents a named set of members who split expenses together.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string

	// Description is an optional free-text description. Stored as an empty
	// string when omitted, never null.
	Description string

	// CreatedBy is the user ID of the creator. The creator is always a
	// member with RoleAdmin.
	CreatedBy string

	// Members is the group's membership. Contains no duplicate user IDs
	// and exactly one admin entry (the creator) at creation time.
	Members []GroupMember

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// GroupMember is a single membership entry within a group.
type GroupMember struct {
	// UserID references the member.
	UserID string

	// Role is RoleAdmin for the creator, RoleMember for everyone else.
	Role string

	// JoinedAt is the Unix timestamp when the member joined. All founding
	// members share the group's creation timestamp.
	JoinedAt int64
}
