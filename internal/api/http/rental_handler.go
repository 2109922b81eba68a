package http

import (
	"net/http"
	"strconv"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type createRentalRequest struct {
	PaxProfileID    int32  `json:"pax_profile_id"`
	BikeID          int32  `json:"bike_id"`
	ShipDepartureID *int32 `json:"ship_departure_id,omitempty"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req createRentalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PaxProfileID == 0 || req.BikeID == 0 {
		writeError(w, http.StatusBadRequest, "pax_profile_id and bike_id are required")
		return
	}
	rental := &domain.Rental{
		PaxProfileID:    req.PaxProfileID,
		BikeID:          req.BikeID,
		ShipDepartureID: req.ShipDepartureID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}
	if err := h.rentalSvc.CreateRental(r.Context(), actor, rental); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	q := r.URL.Query()
	page := parseIntOr(q.Get("page"), 1)
	pageSize := parseIntOr(q.Get("page_size"), 20)

	rentals, total, err := h.rentalSvc.ListRentals(r.Context(), actor, q.Get("status"), page, pageSize)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rentals": rentals,
		"total":   total,
		"page":    page,
	})
}

type rentalStatusRequest struct {
	Status string `json:"status"`
}

func (h *RentalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	var req rentalStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status := domain.RentalStatus(req.Status)
	switch status {
	case domain.RentalStatusPendingPayment, domain.RentalStatusConfirmed, domain.RentalStatusActive,
		domain.RentalStatusCompleted, domain.RentalStatusCancelled, domain.RentalStatusOverdue:
	default:
		writeError(w, http.StatusBadRequest, "unknown rental status")
		return
	}
	rental, err := h.rentalSvc.UpdateRentalStatus(r.Context(), actor, id, status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func parseIntOr(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
