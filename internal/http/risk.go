package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/josinaldojr/finwise-advisor/internal/invest"
	"github.com/josinaldojr/finwise-advisor/internal/risk"
)

type submitRiskRequest struct {
	UserID   string    `json:"userId"`
	FormData risk.Form `json:"formData"`
}

type submitRiskResponse struct {
	Record     risk.Record     `json:"record"`
	Assessment risk.Assessment `json:"assessment"`
}

func (h *Handler) SubmitRisk(w http.ResponseWriter, r *http.Request) {
	var req submitRiskRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	rec, a, err := h.svc.Risk.Submit(r.Context(), req.UserID, req.FormData)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, submitRiskResponse{Record: rec, Assessment: a})
}

func (h *Handler) LatestRisk(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Risk.Latest(r.Context(), mux.Vars(r)["userID"])
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, rec)
}

type suggestionsResponse struct {
	RiskLevel   risk.Level          `json:"riskLevel"`
	Suggestions []invest.Suggestion `json:"suggestions"`
}

// Suggestions resolves the level from the user's latest assessment when
// userId is given, otherwise from riskLevel.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var level risk.Level
	if userID := q.Get("userId"); userID != "" {
		rec, err := h.svc.Risk.Latest(r.Context(), userID)
		if err != nil {
			h.respondErr(w, err)
			return
		}
		level = rec.RiskLevel
	} else {
		l, ok := risk.ParseLevel(q.Get("riskLevel"))
		if !ok {
			h.respondError(w, http.StatusBadRequest, "userId or riskLevel (low, medium, high) is required")
			return
		}
		level = l
	}

	out, err := h.svc.Invest.Suggest(r.Context(), level)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, suggestionsResponse{RiskLevel: level, Suggestions: out})
}
