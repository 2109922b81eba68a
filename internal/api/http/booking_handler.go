package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"bikefleet-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Validate is the public booking lookup: a passenger presents a booking
// code and gets the rental plus a session token when an account could
// be resolved. No prior authentication is required.
func (h *BookingHandler) Validate(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		writeError(w, http.StatusBadRequest, "booking code is required")
		return
	}
	device := r.Header.Get("X-Device-Id")

	session, err := h.bookingSvc.ValidateBooking(r.Context(), code, device)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

type linkRequest struct {
	Code string `json:"code"`
}

// Link attaches a booking to the authenticated account.
func (h *BookingHandler) Link(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req linkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "booking code is required")
		return
	}

	result, err := h.bookingSvc.LinkBooking(r.Context(), actor.ID, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	status := http.StatusOK
	if result.Outcome == service.LinkOutcomeNewlyLinked {
		status = http.StatusCreated
	}
	writeJSON(w, status, result)
}
