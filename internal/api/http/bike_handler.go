package http

import (
	"net/http"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/service"
)

type BikeHandler struct {
	bikeSvc service.BikeService
}

func NewBikeHandler(bikeSvc service.BikeService) *BikeHandler {
	return &BikeHandler{bikeSvc: bikeSvc}
}

func (h *BikeHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var bike domain.Bike
	if err := decodeBody(r, &bike); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if bike.TeamID == 0 || bike.Label == "" {
		writeError(w, http.StatusBadRequest, "team_id and label are required")
		return
	}
	if err := h.bikeSvc.AddBike(r.Context(), actor, &bike); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bike)
}

func (h *BikeHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid bike id")
		return
	}
	bike, err := h.bikeSvc.GetBike(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bike)
}

func (h *BikeHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	bikes, err := h.bikeSvc.ListBikes(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bikes": bikes})
}

type bikeStatusRequest struct {
	Status string `json:"status"`
}

func (h *BikeHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid bike id")
		return
	}
	var req bikeStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status := domain.BikeStatus(req.Status)
	switch status {
	case domain.BikeStatusAvailable, domain.BikeStatusRented, domain.BikeStatusMaintenance,
		domain.BikeStatusUnavailable, domain.BikeStatusMissing:
	default:
		writeError(w, http.StatusBadRequest, "unknown bike status")
		return
	}
	if err := h.bikeSvc.UpdateBikeStatus(r.Context(), actor, id, status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BikeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid bike id")
		return
	}
	if err := h.bikeSvc.DeleteBike(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
