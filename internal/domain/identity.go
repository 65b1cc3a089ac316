package domain

// RoleGuest is the JWT role carried by guest sessions.
const RoleGuest = "guest"

// Identity is the request-scoped principal. A zero Identity is anonymous.
// Guest identities grant read access and favorite toggling but no other
// writes; they carry a GuestID instead of a UserID.
type Identity struct {
	UserID  uint
	GuestID string
	Guest   bool
}

// Anonymous reports whether no identity at all is attached.
func (i Identity) Anonymous() bool {
	return i.UserID == 0 && !i.Guest
}

// CanRate reports whether this identity may submit ratings.
// Ratings require a registered account; guests are read-mostly.
func (i Identity) CanRate() bool {
	return !i.Guest && i.UserID != 0
}
