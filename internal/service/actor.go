package service

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
)

// Actor is the authenticated employee on whose behalf a service call runs.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func ActorOf(e *model.Employee) Actor {
	return Actor{ID: e.ID, Role: e.Role}
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// String is the value stored in audit columns.
func (a Actor) String() string {
	return a.ID.String()
}

// scopeEmployee restricts a requested employee filter to the actor unless the actor is an admin.
func (a Actor) scopeEmployee(requested *uuid.UUID) *uuid.UUID {
	if a.IsAdmin() {
		return requested
	}
	id := a.ID
	return &id
}

func (a Actor) canAccess(owner uuid.UUID) bool {
	return a.IsAdmin() || a.ID == owner
}
