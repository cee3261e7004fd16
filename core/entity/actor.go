package entity

import "github.com/google/uuid"

type Role string

const (
	RoleUser  Role = "user"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleHost, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated party behind a request. Authentication happens
// upstream; services only branch on the role already established.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the actor is the referenced owner.
func (a Actor) Owns(ownerID uuid.UUID) bool {
	return a.ID != uuid.Nil && a.ID == ownerID
}
