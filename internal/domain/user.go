package domain

import "time"

// Role enumerates supported directory roles.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether the value is one of the supported roles.
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// UserStatus enumerates account statuses.
type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"
)

// ValidUserStatus reports whether the value is one of the supported statuses.
func ValidUserStatus(s string) bool {
	switch UserStatus(s) {
	case UserActive, UserBlocked:
		return true
	}
	return false
}

// User represents a registered participant. Email is the identity key.
type User struct {
	ID         string
	Name       string
	Email      string
	Photo      string
	BloodGroup string
	District   string
	Upazila    string
	Role       Role
	Status     UserStatus
	CreatedAt  time.Time
}

// Authorize reports whether the caller's role is in the allowed set.
func Authorize(role Role, allowed ...Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
