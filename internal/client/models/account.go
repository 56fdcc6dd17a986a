// Package models defines client-side data models used by the Blood Connect CLI.
package models

// Account is a registered credential record as persisted in the accounts slot.
// Password holds plaintext in compatibility mode or an encoded salted hash
// (see cryptox.HashPassword) in hashed mode.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile returns the public part of the account.
func (a Account) Profile() SessionProfile {
	return SessionProfile{ID: a.ID, Name: a.Name, Email: a.Email}
}

// SessionProfile is who is currently signed in. It never carries the password.
type SessionProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
