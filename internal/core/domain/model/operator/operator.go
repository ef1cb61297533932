// Package operator describes the store employee driving a wizard session.
package operator

import "strings"

// User is the acting user. Authentication happens upstream; this service only
// receives the identifiers.
type User struct {
	ID      string
	StoreID string
	Name    string
}

// IsIdentified reports whether the user carries an id. Order creation is
// refused for unidentified users.
func (u User) IsIdentified() bool {
	return strings.TrimSpace(u.ID) != ""
}
