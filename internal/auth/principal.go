// Package auth holds the authenticated identity and the authorization
// policy that gates every mutation.
package auth

// Principal is the identity and role context an operation executes under.
type Principal struct {
	UserID      int
	Username    string
	DisplayName string
	IsAdmin     bool
}
