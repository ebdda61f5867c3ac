package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter registers every route. CORS and logging wrap the router so that
// preflights and unmatched paths are covered too.
func NewRouter(h *Handler, cfg RouterConfig, log *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(Timeout(cfg.RequestTimeout))

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/ask", h.Ask).Methods(http.MethodPost)
	r.HandleFunc("/languages", h.Languages).Methods(http.MethodGet)
	r.HandleFunc("/languages/detect", h.DetectLanguage).Methods(http.MethodGet)

	c := r.PathPrefix("/chat/sessions").Subrouter()
	c.HandleFunc("", h.CreateSession).Methods(http.MethodPost)
	c.HandleFunc("/{id}", h.GetSession).Methods(http.MethodGet)
	c.HandleFunc("/{id}/messages", h.ListMessages).Methods(http.MethodGet)
	c.HandleFunc("/{id}/messages", h.SendMessage).Methods(http.MethodPost)

	r.HandleFunc("/risk/assessments", h.SubmitRisk).Methods(http.MethodPost)
	r.HandleFunc("/risk/assessments/{userID}", h.LatestRisk).Methods(http.MethodGet)
	r.HandleFunc("/investments/suggestions", h.Suggestions).Methods(http.MethodGet)

	m := r.PathPrefix("/market").Subrouter()
	m.HandleFunc("/quotes", h.Quotes).Methods(http.MethodGet)
	m.HandleFunc("/stocks", h.Stocks).Methods(http.MethodGet)
	m.HandleFunc("/indices", h.Indices).Methods(http.MethodGet)
	m.HandleFunc("/movers", h.Movers).Methods(http.MethodGet)
	m.HandleFunc("/gold", h.Gold).Methods(http.MethodGet)
	m.HandleFunc("/mutual-funds", h.MutualFunds).Methods(http.MethodGet)
	m.HandleFunc("/real-estate", h.RealEstate).Methods(http.MethodGet)
	m.HandleFunc("/news", h.News).Methods(http.MethodGet)
	m.HandleFunc("/history/{ticker}", h.History).Methods(http.MethodGet)

	r.HandleFunc("/documents/analyze", h.AnalyzeDocument).Methods(http.MethodPost)

	return RequestLogger(log.Named("access"))(CORS(cfg.AllowedOrigins)(r))
}
