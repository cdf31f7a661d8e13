package model

// Account is a platform user. Friends holds the ids this account has
// added; the relation is directional, so mutual friendship requires
// checking both sides.
type Account struct {
	ID         string     `json:"id" validate:"required"`
	Username   string     `json:"username" validate:"required"`
	Bio        string     `json:"bio,omitempty"`
	Activities []Activity `json:"activities,omitempty" validate:"dive"`
	Friends    []string   `json:"friends,omitempty"`
	Visibility Visibility `json:"visibility"`
}

// Visible reports whether the account may be surfaced in search and
// recommendations. Unlisted accounts are hidden from search but still
// recommendable.
func (a Account) Visible() bool {
	return a.Visibility != VisibilityPrivate
}

// HasFriend reports whether the account has added id as a friend.
func (a Account) HasFriend(id string) bool {
	for _, f := range a.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// FriendSet returns the friend ids as a set.
func (a Account) FriendSet() map[string]struct{} {
	set := make(map[string]struct{}, len(a.Friends))
	for _, f := range a.Friends {
		set[f] = struct{}{}
	}
	return set
}
