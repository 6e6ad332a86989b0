package auth

import "errors"

var (
	// ErrForbidden is an authorization denial: role or ownership mismatch.
	ErrForbidden = errors.New("you are not allowed to perform this action")
	// ErrSelfDelete protects a principal's own account from deletion.
	ErrSelfDelete = errors.New("you cannot delete your own account")
)

// Action identifies an operation for authorization purposes.
type Action string

const (
	VisitorUpdate Action = "visitor.update"
	VisitorClose  Action = "visitor.close"
	VisitorDelete Action = "visitor.delete"

	UserList   Action = "user.list"
	UserGet    Action = "user.get"
	UserAdd    Action = "user.add"
	UserUpdate Action = "user.update"
	UserDelete Action = "user.delete"
)

// Authorize decides whether p may perform action. targetID is the visitor's
// creator_id for visitor actions and the target user's id for user actions.
//
// Visitor records: admins mutate anything, non-admins only records they
// created. Listing/reading visitors is open to every authenticated principal
// and never goes through here. User records: every action requires the admin
// role, and not even an admin may delete its own account.
func Authorize(p Principal, action Action, targetID int) error {
	switch action {
	case VisitorUpdate, VisitorClose, VisitorDelete:
		if p.IsAdmin || targetID == p.UserID {
			return nil
		}
		return ErrForbidden
	case UserList, UserGet, UserAdd, UserUpdate:
		if !p.IsAdmin {
			return ErrForbidden
		}
		return nil
	case UserDelete:
		if !p.IsAdmin {
			return ErrForbidden
		}
		if targetID == p.UserID {
			return ErrSelfDelete
		}
		return nil
	default:
		return ErrForbidden
	}
}
