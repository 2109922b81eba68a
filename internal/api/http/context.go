package http

import (
	"context"
	"errors"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/security"
)

type contextKey string

const (
	actorKey  contextKey = "actor"
	claimsKey contextKey = "claims"
)

var errNoActor = errors.New("no authenticated actor in request context")

// ActorFromContext extracts the actor placed there by the auth
// middleware.
func ActorFromContext(ctx context.Context) (authz.Actor, error) {
	actor, ok := ctx.Value(actorKey).(authz.Actor)
	if !ok {
		return authz.Actor{}, errNoActor
	}
	return actor, nil
}

// ClaimsFromContext extracts the validated token claims.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, error) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	if !ok {
		return nil, errNoActor
	}
	return claims, nil
}
