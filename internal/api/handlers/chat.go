package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kindred-ai/kindred/internal/service"
)

type ChatHandler struct {
	svc *service.ChatService
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Turn handles POST /v1/chat: one user message in, one AI reply out.
func (h *ChatHandler) Turn(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.HandleTurn(r.Context(), req.SessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionIDMissing),
			errors.Is(err, service.ErrMessageEmpty):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to process message")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Session handles GET /v1/chat/session: returns the profile for the session,
// creating it on first contact.
func (h *ChatHandler) Session(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	result, err := h.svc.Session(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionIDMissing) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ClearSession handles DELETE /v1/chat/session: wipes the conversation but
// keeps the profile and its evaluation.
func (h *ChatHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	if err := h.svc.ClearHistory(r.Context(), sessionID); err != nil {
		switch {
		case errors.Is(err, service.ErrSessionIDMissing):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "profile not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to clear session")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
