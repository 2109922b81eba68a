package http

import (
	"net/http"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/service"
)

type DepartureHandler struct {
	depSvc service.DepartureService
}

func NewDepartureHandler(depSvc service.DepartureService) *DepartureHandler {
	return &DepartureHandler{depSvc: depSvc}
}

type departureRequest struct {
	ShipName   string `json:"ship_name"`
	CruiseLine string `json:"cruise_line"`
	DepartsAt  string `json:"departs_at"`
}

func (h *DepartureHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req departureRequest
	if err := decodeBody(r, &req); err != nil || req.ShipName == "" {
		writeError(w, http.StatusBadRequest, "ship_name is required")
		return
	}
	dep := &domain.ShipDeparture{
		ShipName:   req.ShipName,
		CruiseLine: req.CruiseLine,
		DepartsAt:  req.DepartsAt,
	}
	if err := h.depSvc.CreateDeparture(r.Context(), actor, dep); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dep)
}

func (h *DepartureHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid departure id")
		return
	}
	var req departureRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dep := &domain.ShipDeparture{
		ID:         id,
		ShipName:   req.ShipName,
		CruiseLine: req.CruiseLine,
		DepartsAt:  req.DepartsAt,
	}
	if err := h.depSvc.UpdateDeparture(r.Context(), actor, dep); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dep)
}

func (h *DepartureHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid departure id")
		return
	}
	if err := h.depSvc.ToggleDepartureActive(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DepartureHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	deps, err := h.depSvc.ListDepartures(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"departures": deps})
}
