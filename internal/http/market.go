package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/josinaldojr/finwise-advisor/internal/market"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"go.uber.org/zap"
)

const (
	maxQuoteTickers = 20
	maxHistoryDays  = 365
)

// Quotes fetches ?tickers=AAPL,TCS.NS concurrently.
func (h *Handler) Quotes(w http.ResponseWriter, r *http.Request) {
	tickers := splitList(r.URL.Query().Get("tickers"))
	if len(tickers) == 0 {
		h.respondError(w, http.StatusBadRequest, "tickers query parameter is required")
		return
	}
	if len(tickers) > maxQuoteTickers {
		h.respondError(w, http.StatusBadRequest, "too many tickers")
		return
	}

	quotes := make([]market.StockQuote, len(tickers))
	g, ctx := errgroup.WithContext(r.Context())
	for i, t := range tickers {
		g.Go(func() error {
			q, err := h.svc.Market.Quote(ctx, t)
			if err != nil {
				return err
			}
			quotes[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.upstreamError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"quotes": quotes})
}

// Stocks resolves ?symbols=...; without symbols it lists the large caps.
func (h *Handler) Stocks(w http.ResponseWriter, r *http.Request) {
	symbols := splitList(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		symbols = market.LargeCap
	}
	stocks, err := h.svc.Market.Stocks(r.Context(), symbols)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"stocks":  stocks,
		"gainers": market.TopGainers(stocks, 5),
		"losers":  market.TopLosers(stocks, 5),
	})
}

func (h *Handler) Indices(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{"indices": market.Indices()})
}

func (h *Handler) Movers(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Market.Movers(r.Context())
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, m)
}

func (h *Handler) Gold(w http.ResponseWriter, r *http.Request) {
	prices, err := h.svc.Market.GoldPrices(r.Context())
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"prices": prices})
}

func (h *Handler) MutualFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.svc.Market.MutualFunds(r.Context())
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"funds": funds})
}

func (h *Handler) RealEstate(w http.ResponseWriter, r *http.Request) {
	props, err := h.svc.Market.RealEstate(r.Context(), strings.TrimSpace(r.URL.Query().Get("city")))
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"properties": props})
}

func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Market.News(r.Context())
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, n)
}

// History serves /market/history/{ticker}?days=N, 30 days by default.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHistoryDays {
			h.respondError(w, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}
		days = n
	}

	ticker := strings.ToUpper(mux.Vars(r)["ticker"])
	points, err := h.svc.Market.History(r.Context(), ticker, days)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"ticker": ticker, "history": points})
}

func (h *Handler) upstreamError(w http.ResponseWriter, err error) {
	h.log.Warn("market data unavailable", zap.Error(err))
	h.respondError(w, http.StatusBadGateway, "market data unavailable")
}

func splitList(raw string) []string {
	parts := lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.ToUpper(strings.TrimSpace(s))
	})
	return lo.Uniq(lo.Compact(parts))
}
