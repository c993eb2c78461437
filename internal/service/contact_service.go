package service

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/splitr/backend/internal/apperror"
	"github.com/splitr/backend/internal/models"
	"github.com/splitr/backend/internal/storage"
)

// ContactService derives the contact list for a user: the people they share
// one-to-one expenses with, and the groups they belong to.
type ContactService struct {
	store storage.Store
}

// NewContactService creates a new ContactService with the given storage backend.
func NewContactService(store storage.Store) *ContactService {
	return &ContactService{store: store}
}

// GetAllContacts returns the current user's contacts: users they share at
// least one personal (non-group) expense with, and groups they are a member
// of. Both lists are sorted ascending by name, case-insensitively.
//
// Group expenses never contribute user contacts; they surface only through
// group membership. A counterparty whose user record no longer resolves is
// dropped rather than failing the whole query.
func (s *ContactService) GetAllContacts(ctx context.Context, currentUser *models.User) (*models.Contacts, error) {
	if currentUser == nil {
		return nil, apperror.Unauthenticated()
	}

	var (
		paidByMe     []*models.Expense
		personal     []*models.Expense
		memberGroups []*models.Group
	)

	// The three reads are independent and read-only; issue them
	// concurrently and merge once all complete. Any failure aborts the
	// whole call: partial contact lists are never returned.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		paidByMe, err = s.store.ListExpensesByPayer(gctx, currentUser.ID, "")
		return err
	})
	g.Go(func() error {
		var err error
		personal, err = s.store.ListPersonalExpenses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		memberGroups, err = s.store.ListGroupsByMember(gctx, currentUser.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("GetAllContacts reads failed", "user_id", currentUser.ID, "error", err)
		return nil, apperror.Unavailable("contact discovery reads", err)
	}

	// Personal expenses involving the current user: the ones they paid,
	// plus the ones someone else paid where they owe a share.
	expenses := make([]*models.Expense, 0, len(paidByMe))
	expenses = append(expenses, paidByMe...)
	for _, expense := range personal {
		if expense.PaidByUserID != currentUser.ID && owesShare(expense, currentUser.ID) {
			expenses = append(expenses, expense)
		}
	}

	// Counterparty user IDs, deduplicated. The current user is excluded by
	// construction, so they can never appear in their own contact list.
	contactIDs := make(map[string]struct{})
	for _, expense := range expenses {
		if expense.PaidByUserID != currentUser.ID {
			contactIDs[expense.PaidByUserID] = struct{}{}
		}
		for _, split := range expense.Splits {
			if split.UserID != currentUser.ID {
				contactIDs[split.UserID] = struct{}{}
			}
		}
	}

	ids := make([]string, 0, len(contactIDs))
	for id := range contactIDs {
		ids = append(ids, id)
	}

	// Batch lookup omits IDs that no longer resolve; a deleted counterparty
	// must not fail contact discovery for the rest.
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		slog.Error("GetAllContacts user resolution failed", "user_id", currentUser.ID, "error", err)
		return nil, apperror.Unavailable("resolve contact users", err)
	}

	contacts := &models.Contacts{
		Users:  make([]models.ContactUser, 0, len(users)),
		Groups: make([]models.ContactGroup, 0, len(memberGroups)),
	}
	for _, user := range users {
		contacts.Users = append(contacts.Users, models.ContactUser{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			ImageURL: user.ImageURL,
			Kind:     models.ContactKindUser,
		})
	}
	for _, group := range memberGroups {
		contacts.Groups = append(contacts.Groups, models.ContactGroup{
			ID:          group.ID,
			Name:        group.Name,
			Description: group.Description,
			MemberCount: len(group.Members),
			Kind:        models.ContactKindGroup,
		})
	}

	sortContacts(contacts)

	slog.Debug("GetAllContacts",
		"user_id", currentUser.ID,
		"contact_users", len(contacts.Users),
		"contact_groups", len(contacts.Groups),
	)

	return contacts, nil
}

// owesShare reports whether the user appears in the expense's splits.
func owesShare(expense *models.Expense, userID string) bool {
	for _, split := range expense.Splits {
		if split.UserID == userID {
			return true
		}
	}
	return false
}

// sortContacts orders users and groups ascending by name using a
// case-insensitive, locale-aware comparison. Missing names resolve to the
// empty string and sort first; ties break on ID so the order is stable
// across calls.
func sortContacts(contacts *models.Contacts) {
	cl := collate.New(language.Und, collate.IgnoreCase)

	sort.Slice(contacts.Users, func(i, j int) bool {
		if c := cl.CompareString(contacts.Users[i].Name, contacts.Users[j].Name); c != 0 {
			return c < 0
		}
		return contacts.Users[i].ID < contacts.Users[j].ID
	})

	sort.Slice(contacts.Groups, func(i, j int) bool {
		if c := cl.CompareString(contacts.Groups[i].Name, contacts.Groups[j].Name); c != 0 {
			return c < 0
		}
		return contacts.Groups[i].ID < contacts.Groups[j].ID
	})
}
