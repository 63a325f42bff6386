// Package model contains the application's data types.
package model

// User is a registered student as stored under the `users` key.
// Password holds a bcrypt hash and is never written to API responses.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Marker returns the session marker for u.
func (u User) Marker() SessionMarker {
	return SessionMarker{Name: u.Name, Email: u.Email}
}

// SessionMarker is the denormalised copy of the logged-in user kept under
// the `current_user` key.
type SessionMarker struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PublicUser is the admin listing view of a User.
type PublicUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
