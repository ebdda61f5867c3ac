package advisor

import (
	"strings"

	"github.com/samber/lo"
)

// Flags records which market data a query asks for. Several may be set at
// once and none takes precedence.
type Flags struct {
	StockData    bool `json:"stockData"`
	News         bool `json:"news"`
	MarketMovers bool `json:"marketMovers"`
	GoldPrices   bool `json:"goldPrices"`
	MutualFunds  bool `json:"mutualFunds"`
	RealEstate   bool `json:"realEstate"`
}

var (
	stockKeywords      = []string{"price", "stock", "share", "ticker", "quote", "current", "scrape"}
	newsKeywords       = []string{"news", "headlines", "market update", "latest", "today"}
	moversKeywords     = []string{"gainers", "losers", "movers", "top performing", "worst performing", "market leaders"}
	goldKeywords       = []string{"gold", "gold price", "gold rate", "precious metal"}
	mutualFundKeywords = []string{"mutual fund", "nav", "sip", "fund", "investment fund"}
	realEstateKeywords = []string{"property", "real estate", "house", "apartment", "buy property", "rent"}

	generalQuestionPhrases = []string{
		"what is", "what are", "define", "explain", "tell me about",
		"how does", "why", "when", "where", "current price", "today",
		"news", "market update", "latest", "happening",
	}
	advicePhrases = []string{
		"should i invest", "how to invest", "where should i invest",
		"suggest", "recommend", "advice", "help me choose",
		"what to do with", "planning", "strategy", "allocate",
		"portfolio recommendation", "investment plan",
		"best way to invest", "looking to invest",
	}
	proModelKeywords = []string{
		"analyze", "current", "real-time", "news", "market trend", "scrape",
		"gold", "mutual fund", "property", "invest", "portfolio", "advice",
		"recommend", "strategy",
	}

	knownTickers = []string{
		"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "NFLX",
		"RELIANCE", "TCS", "INFY", "HDFC", "ICICI", "ITC", "SBIN",
	}
	defaultIndianTickers = []string{"RELIANCE.NS", "TCS.NS", "INFY.NS"}
	defaultUSTickers     = []string{"AAPL", "MSFT", "GOOGL"}
)

const maxTickers = 3

func Classify(query string) Flags {
	q := strings.ToLower(query)
	return Flags{
		StockData:    containsAny(q, stockKeywords),
		News:         containsAny(q, newsKeywords),
		MarketMovers: containsAny(q, moversKeywords),
		GoldPrices:   containsAny(q, goldKeywords),
		MutualFunds:  containsAny(q, mutualFundKeywords),
		RealEstate:   containsAny(q, realEstateKeywords),
	}
}

// IsAdviceQuery reports whether the query asks for personal advice rather
// than general information. General phrasing always wins.
func IsAdviceQuery(query string) bool {
	q := strings.ToLower(query)
	if containsAny(q, generalQuestionPhrases) {
		return false
	}
	return containsAny(q, advicePhrases)
}

// SelectModel picks the Gemini tier for auto mode: Pro for analysis and live
// data, Flash for everything else.
func SelectModel(query string) ModelTag {
	if containsAny(strings.ToLower(query), proModelKeywords) {
		return ModelGeminiPro
	}
	return ModelGeminiFlash
}

// ExtractTickers returns up to three known tickers mentioned in the query,
// or a default basket when none is mentioned.
func ExtractTickers(query string) []string {
	q := strings.ToUpper(query)
	found := lo.Filter(knownTickers, func(t string, _ int) bool {
		return strings.Contains(q, t)
	})
	if len(found) > 0 {
		return lo.Slice(found, 0, maxTickers)
	}

	lower := strings.ToLower(query)
	if strings.Contains(lower, "indian") || strings.Contains(lower, "nse") {
		return append([]string(nil), defaultIndianTickers...)
	}
	return append([]string(nil), defaultUSTickers...)
}

func containsAny(s string, keywords []string) bool {
	return lo.ContainsBy(keywords, func(k string) bool {
		return strings.Contains(s, k)
	})
}
