package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kindred-ai/kindred/internal/service"
)

type AdminHandler struct {
	adminSvc *service.AdminService
	evalSvc  *service.EvaluationService
}

func NewAdminHandler(adminSvc *service.AdminService, evalSvc *service.EvaluationService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, evalSvc: evalSvc}
}

func (h *AdminHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.adminSvc.ListProfiles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles, "count": len(profiles)})
}

func (h *AdminHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	profile, err := h.adminSvc.GetProfile(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionIDMissing):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "profile not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to load profile")
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	data, err := h.adminSvc.Analytics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute analytics")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Reevaluate handles POST /v1/admin/profiles/{sessionID}/evaluate: runs the
// full factor engine over the stored conversation.
func (h *AdminHandler) Reevaluate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.evalSvc.Reevaluate(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionIDMissing):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "profile not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to evaluate profile")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type blockRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Block handles POST /v1/admin/profiles/{sessionID}/block.
func (h *AdminHandler) Block(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req blockRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	profile, err := h.evalSvc.Block(r.Context(), sessionID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionIDMissing):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "profile not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to block profile")
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Similar handles GET /v1/admin/profiles/{sessionID}/similar?limit=N.
func (h *AdminHandler) Similar(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	results, err := h.evalSvc.FindSimilar(r.Context(), sessionID, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionIDMissing):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "profile not found")
		case errors.Is(err, service.ErrNoEvaluation):
			writeError(w, http.StatusConflict, "profile has no full evaluation yet; run evaluate first")
		default:
			writeError(w, http.StatusInternalServerError, "failed to find similar profiles")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"profiles": results, "count": len(results)})
}
