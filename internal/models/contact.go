package models

// Contact kind markers, used by clients to tell user and group entries apart.
const (
	ContactKindUser  = "user"
	ContactKindGroup = "group"
)

// ContactUser is a user the current user shares at least one personal
// expense with. Derived by contact discovery, never persisted.
type ContactUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl"`
	Kind     string `json:"kind"`
}

// ContactGroup is a group the current user belongs to, projected for the
// contact list.
type ContactGroup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int    `json:"memberCount"`
	Kind        string `json:"kind"`
}

// Contacts is the full result of contact discovery: users and groups,
// each sorted ascending by name.
type Contacts struct {
	Users  []ContactUser  `json:"users"`
	Groups []ContactGroup `json:"groups"`
}
