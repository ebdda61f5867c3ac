package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/josinaldojr/finwise-advisor/internal/advisor"
	"github.com/josinaldojr/finwise-advisor/internal/chat"
	"github.com/josinaldojr/finwise-advisor/internal/document"
	"github.com/josinaldojr/finwise-advisor/internal/invest"
	"github.com/josinaldojr/finwise-advisor/internal/lang"
	"github.com/josinaldojr/finwise-advisor/internal/market"
	"github.com/josinaldojr/finwise-advisor/internal/risk"
	"go.uber.org/zap"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// Services are the components behind the API.
type Services struct {
	Dispatcher *advisor.Dispatcher
	Chat       *chat.Service
	Risk       *risk.Service
	Invest     *invest.Service
	Market     market.Provider
	Documents  *document.Analyzer
}

type Handler struct {
	svc      Services
	validate *validator.Validate
	log      *zap.Logger
}

func NewHandler(svc Services, log *zap.Logger) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
		log:      log.Named("http"),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ask runs one stateless dispatcher turn. Model failures still answer 200
// with success=false and fallback content.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req advisor.Request
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	tag, err := advisor.ParseModelTag(string(req.Model))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	req.Model = tag

	switch req.Language {
	case "":
		req.Language = "en"
	case "auto":
		req.Language = lang.Detect(req.Query).Code
	}

	h.respondJSON(w, http.StatusOK, h.svc.Dispatcher.Respond(r.Context(), req))
}

func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	all := lang.Supported()
	voice := make([]lang.Language, 0, len(all))
	for _, l := range all {
		if lang.SupportedForVoice(l.Code) {
			voice = append(voice, l)
		}
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"languages": all,
		"voice":     voice,
	})
}

func (h *Handler) DetectLanguage(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, lang.Detect(r.URL.Query().Get("text")))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	return dec.Decode(dst)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Warn("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondErr maps service errors onto statuses.
func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	h.respondError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound),
		errors.Is(err, risk.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrSessionBusy):
		return http.StatusConflict
	case errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrUnsupportedLanguage),
		errors.Is(err, advisor.ErrUnknownModel),
		errors.Is(err, risk.ErrInvalidForm),
		errors.Is(err, document.ErrEmptyFile):
		return http.StatusBadRequest
	case errors.Is(err, document.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, document.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, document.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, document.ErrAnalysisFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
