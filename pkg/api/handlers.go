package api

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
	"github.com/rbenali/garrison-duty/pkg/core/services"
	"github.com/rbenali/garrison-duty/pkg/db"
)

// Handler carries the dependencies shared by every endpoint
type Handler struct {
	Store   db.Database
	Catalog *roster.Catalog
	Logger  *zap.Logger

	// Shuffle, when set, randomizes equity ties during generation
	Shuffle *rand.Rand
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps domain errors onto HTTP status codes: 404 for a missing
// roster, 409 for a locked one, 422 for an ineligible candidate, 400 for
// bad slot references or input
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrRosterNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrRosterLocked):
		status = http.StatusConflict
	case errors.Is(err, services.ErrIneligibleCandidate):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUnknownPerson):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, roster.ErrUnknownSlot):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.Logger.Error("Request failed", zap.Error(err))
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request) (roster.Date, bool) {
	date, err := roster.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return "", false
	}
	return date, true
}

// ListPersonnel returns the full unit roster
func (h *Handler) ListPersonnel(w http.ResponseWriter, r *http.Request) {
	personnel, err := h.Store.ListPersonnel(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, personnel)
}

// ListAbsences returns every absence record
func (h *Handler) ListAbsences(w http.ResponseWriter, r *http.Request) {
	absences, err := h.Store.ListAbsences(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, absences)
}

// RotationHours returns the sentinel rotation start times configured for
// duty sheets
func (h *Handler) RotationHours(w http.ResponseWriter, r *http.Request) {
	hours := h.Catalog.RotationHours
	if hours == nil {
		hours = []string{}
	}
	h.writeJSON(w, http.StatusOK, hours)
}

// ClassifyDay returns the day type for a date
func (h *Handler) ClassifyDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"date":    date.String(),
		"dayType": string(roster.Classify(date, h.Catalog.Calendar)),
	})
}

// GetRoster returns the stored roster for a date
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	result, err := services.GetRoster(r.Context(), h.Store, date)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// GenerateRoster runs the allocation engine for a date and persists the
// resulting DRAFT roster
func (h *Handler) GenerateRoster(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	result, err := services.GenerateRoster(r.Context(), h.Store, h.Catalog, h.Logger, date, h.Shuffle)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, result)
}

// ListReplacementCandidates returns the eligible replacements for a slot
func (h *Handler) ListReplacementCandidates(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	var slot roster.SlotRef
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid slot payload"})
		return
	}
	candidates, err := services.ListReplacementCandidates(r.Context(), h.Store, h.Catalog, h.Logger, date, slot)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, candidates)
}

type replaceRequest struct {
	Slot     roster.SlotRef `json:"slot"`
	PersonID string         `json:"personId"`
}

// ApplyReplacement commits a manual slot override
func (h *Handler) ApplyReplacement(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	var req replaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PersonID == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid replacement payload"})
		return
	}
	result, err := services.ApplyReplacement(r.Context(), h.Store, h.Catalog, h.Logger, date, req.Slot, req.PersonID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

type statusRequest struct {
	Status roster.Status `json:"status"`
}

// SetRosterStatus locks or unlocks the roster for a date
func (h *Handler) SetRosterStatus(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid status payload"})
		return
	}
	if !req.Status.IsValid() {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "status must be DRAFT or VALIDATED"})
		return
	}
	result, err := services.SetRosterStatus(r.Context(), h.Store, h.Logger, date, req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}
