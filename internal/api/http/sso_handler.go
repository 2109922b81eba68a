package http

import (
	"net/http"

	"github.com/google/uuid"

	"bikefleet-backend/internal/service"
)

// SSOHandler drives the two OIDC login flows: the staff flow against
// the corporate identity provider and the PWA flow against the consumer
// provider. State is a one-shot nonce stored in a short-lived cookie.
type SSOHandler struct {
	ssoSvc service.SSOService
}

func NewSSOHandler(ssoSvc service.SSOService) *SSOHandler {
	return &SSOHandler{ssoSvc: ssoSvc}
}

const stateCookie = "sso_state"

func (h *SSOHandler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, h.ssoSvc.StaffLoginURL)
}

func (h *SSOHandler) PwaLogin(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, h.ssoSvc.PwaLoginURL)
}

func (h *SSOHandler) redirect(w http.ResponseWriter, r *http.Request, loginURL func(string) string) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, loginURL(state), http.StatusFound)
}

func (h *SSOHandler) StaffCallback(w http.ResponseWriter, r *http.Request) {
	code, ok := h.verifyCallback(w, r)
	if !ok {
		return
	}
	user, access, refresh, err := h.ssoSvc.HandleStaffCallback(r.Context(), code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *SSOHandler) PwaCallback(w http.ResponseWriter, r *http.Request) {
	code, ok := h.verifyCallback(w, r)
	if !ok {
		return
	}
	user, session, err := h.ssoSvc.HandlePwaCallback(r.Context(), code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":          user,
		"session_token": session,
	})
}

func (h *SSOHandler) verifyCallback(w http.ResponseWriter, r *http.Request) (string, bool) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		writeError(w, http.StatusBadGateway, "identity provider error: "+errParam)
		return "", false
	}
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		writeError(w, http.StatusBadRequest, "state mismatch")
		return "", false
	}
	// Burn the nonce.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing authorization code")
		return "", false
	}
	return code, true
}
