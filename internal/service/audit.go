package service

import (
	"context"
	"log/slog"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/logger"
)

// AuditLog emits a structured event for every decision on a sensitive
// verb (role changes, account management, SSO provisioning, force
// deletes). Delivery is the logging sink's concern, not the caller's.
type AuditLog struct {
	log *slog.Logger
}

func NewAuditLog() *AuditLog {
	return &AuditLog{log: logger.WithService("audit")}
}

func (a *AuditLog) Decision(ctx context.Context, actor authz.Actor, verb, resource string, resourceID int32, d authz.Decision) {
	if d.Allowed {
		a.log.InfoContext(ctx, "authorization decision",
			"actor_id", actor.ID, "verb", verb, "resource", resource, "resource_id", resourceID, "allowed", true)
		return
	}
	a.log.WarnContext(ctx, "authorization decision",
		"actor_id", actor.ID, "verb", verb, "resource", resource, "resource_id", resourceID,
		"allowed", false, "reason", string(d.Reason))
}

func (a *AuditLog) RoleChanged(ctx context.Context, actorID, targetID int32, oldRole, newRole string) {
	a.log.InfoContext(ctx, "role changed",
		"actor_id", actorID, "target_id", targetID, "old_role", oldRole, "new_role", newRole)
}

func (a *AuditLog) SSOProvisioned(ctx context.Context, provider string, userID int32, email string, created bool) {
	a.log.InfoContext(ctx, "sso login",
		"provider", provider, "user_id", userID, "email", email, "account_created", created)
}

func (a *AuditLog) SSODenied(ctx context.Context, provider, email, reason string) {
	a.log.WarnContext(ctx, "sso login denied",
		"provider", provider, "email", email, "reason", reason)
}
