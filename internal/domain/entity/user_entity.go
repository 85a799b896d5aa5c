package entity

import (
	"strings"
	"time"
)

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

// ParseRole maps a stored role string to a Role, defaulting to RoleCustomer
// for anything unrecognised.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return RoleCustomer
	}
	return r
}

// User is the aggregate root for the credential domain.
// Passwords are stored as bcrypt hashes in Password field and are never serialised.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the client-safe projection of a User.
type PublicUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public returns the projection of u without the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
