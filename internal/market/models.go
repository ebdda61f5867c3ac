package market

import "time"

// StockQuote is a live-style quote for one ticker.
type StockQuote struct {
	Ticker        string    `json:"ticker"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	MarketCap     string    `json:"marketCap,omitempty"`
	PERatio       string    `json:"peRatio,omitempty"`
	Volume        string    `json:"volume,omitempty"`
	Source        string    `json:"source"`
	Timestamp     time.Time `json:"timestamp"`
}

// Stock is a catalog entry used by suggestions and document analysis.
type Stock struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	MarketCap     float64 `json:"marketCap,omitempty"`
	Currency      string  `json:"currency"`
}

type Index struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

type Mover struct {
	Ticker        string `json:"ticker"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	Change        string `json:"change"`
	PercentChange string `json:"percentChange"`
}

type Movers struct {
	Gainers []Mover `json:"gainers"`
	Losers  []Mover `json:"losers"`
}

type GoldPrice struct {
	City      string    `json:"city"`
	Gold22K1g string    `json:"gold22K_1g"`
	Gold22K8g string    `json:"gold22K_8g"`
	Gold24K1g string    `json:"gold24K_1g"`
	Gold24K8g string    `json:"gold24K_8g"`
	Timestamp time.Time `json:"timestamp"`
}

type MutualFund struct {
	FundName      string    `json:"fundName"`
	LatestNAV     string    `json:"latestNAV"`
	Change        string    `json:"change"`
	ChangePercent string    `json:"changePercent"`
	Category      string    `json:"category,omitempty"`
	RiskLevel     string    `json:"riskLevel,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type Property struct {
	Title        string    `json:"title"`
	Price        string    `json:"price"`
	Location     string    `json:"location"`
	PropertyType string    `json:"propertyType"`
	Bedrooms     string    `json:"bedrooms,omitempty"`
	Area         string    `json:"area,omitempty"`
	Link         string    `json:"link,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type News struct {
	Headlines []string  `json:"headlines"`
	Timestamp time.Time `json:"timestamp"`
}

type HistoricalPoint struct {
	Date   string `json:"date"`
	Price  string `json:"price"`
	Open   string `json:"open"`
	High   string `json:"high"`
	Low    string `json:"low"`
	Volume string `json:"volume,omitempty"`
}
