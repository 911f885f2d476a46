// Package auth turns bearer tokens issued elsewhere into an actor identity
// the scheduling core can check ownership against. Token issuance, user
// registration, and password handling live outside this service.
package auth

import (
	"context"

	"github.com/google/uuid"
)

const (
	RolePatient      = "patient"
	RoleProfessional = "professional"
	RoleAdmin        = "admin"
)

// Actor is the authenticated identity behind a request. ID is the patient or
// professional profile id, not the login account id.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsPatient() bool {
	return a.Role == RolePatient
}

func (a Actor) IsProfessional() bool {
	return a.Role == RoleProfessional
}

type contextKey string

const actorKey contextKey = "actor"

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// ActorFromContext retrieves the actor. The second return is false when the
// request never passed through the auth middleware.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey).(Actor)
	return a, ok
}
