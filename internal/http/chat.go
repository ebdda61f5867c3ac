package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/josinaldojr/finwise-advisor/internal/chat"
)

type createSessionRequest struct {
	Compact bool `json:"compact"`
}

// CreateSession accepts an empty body for a full session.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := h.decode(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sess, err := h.svc.Chat.CreateSession(r.Context(), req.Compact)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, sess)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Chat.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sess)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.Chat.Messages(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req chat.SendRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	reply, err := h.svc.Chat.Send(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, reply)
}
