package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/repository"
	"bikefleet-backend/internal/security"
)

// AuthMiddleware validates the bearer token and resolves the acting
// user into an authz.Actor. The team context comes from the X-Team-Id
// header when present, otherwise from the user's selected team. The
// header is merely a view selector; every policy re-checks membership.
type AuthMiddleware struct {
	tokens   security.TokenManager
	userRepo repository.UserRepository
}

func NewAuthMiddleware(tokens security.TokenManager, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, userRepo: userRepo}
}

// Require accepts only the listed token types.
func (m *AuthMiddleware) Require(types ...security.TokenType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "authorization token is not provided")
				return
			}

			claims, err := m.tokens.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if !tokenTypeAllowed(claims.Type, types) {
				writeError(w, http.StatusForbidden, "wrong token type for this endpoint")
				return
			}

			user, err := m.userRepo.GetByID(r.Context(), claims.UserID)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if user.DeletedOn != nil {
				writeError(w, http.StatusUnauthorized, "account disabled")
				return
			}

			teamCtx := user.CurrentTeamID
			if raw := r.Header.Get("X-Team-Id"); raw != "" {
				if id, perr := strconv.ParseInt(raw, 10, 32); perr == nil {
					v := int32(id)
					teamCtx = &v
				}
			}

			actor := authz.ActorFor(user, teamCtx)
			ctx := context.WithValue(r.Context(), actorKey, actor)
			ctx = context.WithValue(ctx, claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return header
}

func tokenTypeAllowed(got security.TokenType, allowed []security.TokenType) bool {
	for _, t := range allowed {
		if t == got {
			return true
		}
	}
	return false
}
