package http

import (
	"net/http"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/service"
)

type PoiHandler struct {
	poiSvc service.PoiService
}

func NewPoiHandler(poiSvc service.PoiService) *PoiHandler {
	return &PoiHandler{poiSvc: poiSvc}
}

type poiRequest struct {
	TeamID    *int32  `json:"team_id,omitempty"`
	Category  string  `json:"category"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *PoiHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req poiRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	category := domain.PoiCategory(req.Category)
	switch category {
	case domain.PoiCategoryDepot, domain.PoiCategoryStaffPick, domain.PoiCategoryGeneral:
	default:
		writeError(w, http.StatusBadRequest, "unknown poi category")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	poi := &domain.PointOfInterest{
		TeamID:    req.TeamID,
		Category:  category,
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := h.poiSvc.CreatePoi(r.Context(), actor, poi); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, poi)
}

func (h *PoiHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid poi id")
		return
	}
	var req poiRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	poi := &domain.PointOfInterest{
		ID:        id,
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := h.poiSvc.UpdatePoi(r.Context(), actor, poi); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, poi)
}

func (h *PoiHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid poi id")
		return
	}
	if err := h.poiSvc.DeletePoi(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PoiHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid poi id")
		return
	}
	if err := h.poiSvc.ApprovePoi(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PoiHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid poi id")
		return
	}
	if err := h.poiSvc.TogglePoiActive(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
