package market

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Artificial latencies of the scraping stand-ins.
const (
	quoteDelay       = 500 * time.Millisecond
	indianQuoteDelay = 600 * time.Millisecond
	moversDelay      = 300 * time.Millisecond
	goldDelay        = 800 * time.Millisecond
	mutualFundDelay  = 700 * time.Millisecond
	realEstateDelay  = time.Second
	newsDelay        = 300 * time.Millisecond
	historyDelay     = 400 * time.Millisecond
)

var (
	moverTickers  = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "NFLX"}
	goldCities    = []string{"Delhi", "Mumbai", "Chennai", "Kolkata", "Bangalore", "Hyderabad"}
	fundNames     = []string{"SBI BlueChip Fund", "HDFC Top 100 Fund", "ICICI Prudential Value Discovery Fund", "Axis Long Term Equity Fund", "Mirae Asset Large Cap Fund", "Kotak Standard Multicap Fund"}
	fundCategory  = []string{"Large Cap", "Mid Cap", "Multi Cap", "Small Cap"}
	fundRisk      = []string{"Low", "Medium", "High"}
	reLocations   = []string{"Gurgaon", "Noida", "South Delhi", "Central Delhi", "East Delhi", "West Delhi"}
	propertyTypes = []string{"Apartment", "Villa", "Builder Floor", "Independent House"}
	headlines     = []string{
		"Fed signals potential rate cuts amid economic uncertainty",
		"Tech stocks rally on strong quarterly earnings reports",
		"Oil prices surge following geopolitical tensions",
		"Cryptocurrency market shows signs of stabilization",
		"Banking sector outperforms amid rising interest rates",
	}
)

// MockProvider produces randomized market data with realistic ranges. It
// stands in for the scraping backends the front end cannot reach directly.
type MockProvider struct {
	log     *zap.Logger
	latency bool
	now     func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

type MockOption func(*MockProvider)

// WithoutLatency disables the artificial delays.
func WithoutLatency() MockOption {
	return func(p *MockProvider) { p.latency = false }
}

// WithSeed makes the generated values reproducible.
func WithSeed(seed uint64) MockOption {
	return func(p *MockProvider) { p.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithClock(now func() time.Time) MockOption {
	return func(p *MockProvider) { p.now = now }
}

func NewMockProvider(log *zap.Logger, opts ...MockOption) *MockProvider {
	p := &MockProvider{
		log:     log.Named("market"),
		latency: true,
		now:     time.Now,
		rnd:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *MockProvider) Quote(ctx context.Context, ticker string) (StockQuote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return StockQuote{}, fmt.Errorf("empty ticker")
	}

	if strings.HasSuffix(ticker, ".NS") {
		p.log.Debug("scraping indian stock", zap.String("ticker", ticker))
		if err := p.wait(ctx, indianQuoteDelay); err != nil {
			return StockQuote{}, err
		}
		return p.indianQuote(ticker), nil
	}

	p.log.Debug("scraping quote", zap.String("ticker", ticker))
	if err := p.wait(ctx, quoteDelay); err != nil {
		return StockQuote{}, err
	}

	base := p.float(50, 1050)
	change := (p.float(0, 1) - 0.5) * 20
	return StockQuote{
		Ticker:        ticker,
		Price:         round2(base),
		Change:        round2(change),
		ChangePercent: round2(change / base * 100),
		MarketCap:     fmt.Sprintf("%.1fB", p.float(10, 510)),
		PERatio:       fmt.Sprintf("%.1f", p.float(5, 35)),
		Volume:        fmt.Sprintf("%.1fM", p.float(1, 11)),
		Source:        "Yahoo Finance",
		Timestamp:     p.now(),
	}, nil
}

func (p *MockProvider) indianQuote(ticker string) StockQuote {
	base := p.float(100, 3100)
	change := (p.float(0, 1) - 0.5) * 50
	return StockQuote{
		Ticker:        ticker,
		Price:         round2(base),
		Change:        round2(change),
		ChangePercent: round2(change / base * 100),
		MarketCap:     fmt.Sprintf("₹%.0fCr", p.float(10000, 510000)),
		PERatio:       fmt.Sprintf("%.1f", p.float(8, 33)),
		Volume:        fmt.Sprintf("%.1fL", p.float(0.5, 5.5)),
		Source:        "Moneycontrol",
		Timestamp:     p.now(),
	}
}

func (p *MockProvider) Movers(ctx context.Context) (Movers, error) {
	if err := p.wait(ctx, moversDelay); err != nil {
		return Movers{}, err
	}

	var m Movers
	for i := 0; i < 5; i++ {
		ticker := p.pick(moverTickers)
		m.Gainers = append(m.Gainers, Mover{
			Ticker:        ticker,
			Name:          ticker + " Inc.",
			Price:         fmt.Sprintf("$%.2f", p.float(50, 550)),
			Change:        fmt.Sprintf("+%.2f", p.float(1, 11)),
			PercentChange: fmt.Sprintf("+%.2f%%", p.float(0.5, 5.5)),
		})
		m.Losers = append(m.Losers, Mover{
			Ticker:        p.pick(moverTickers),
			Name:          ticker + " Corp.",
			Price:         fmt.Sprintf("$%.2f", p.float(30, 430)),
			Change:        fmt.Sprintf("-%.2f", p.float(0.5, 5.5)),
			PercentChange: fmt.Sprintf("-%.2f%%", p.float(0.2, 3.2)),
		})
	}
	return m, nil
}

func (p *MockProvider) GoldPrices(ctx context.Context) ([]GoldPrice, error) {
	if err := p.wait(ctx, goldDelay); err != nil {
		return nil, err
	}

	now := p.now()
	out := make([]GoldPrice, 0, len(goldCities))
	for _, city := range goldCities {
		g22 := p.float(5500, 6500)
		g24 := g22 * 1.1
		out = append(out, GoldPrice{
			City:      city,
			Gold22K1g: fmt.Sprintf("₹%.0f", g22),
			Gold22K8g: fmt.Sprintf("₹%.0f", g22*8),
			Gold24K1g: fmt.Sprintf("₹%.0f", g24),
			Gold24K8g: fmt.Sprintf("₹%.0f", g24*8),
			Timestamp: now,
		})
	}
	return out, nil
}

func (p *MockProvider) MutualFunds(ctx context.Context) ([]MutualFund, error) {
	if err := p.wait(ctx, mutualFundDelay); err != nil {
		return nil, err
	}

	now := p.now()
	out := make([]MutualFund, 0, len(fundNames))
	for _, name := range fundNames {
		nav := p.float(50, 250)
		change := (p.float(0, 1) - 0.5) * 10
		out = append(out, MutualFund{
			FundName:      name,
			LatestNAV:     fmt.Sprintf("₹%.2f", nav),
			Change:        fmt.Sprintf("%+.2f", change),
			ChangePercent: fmt.Sprintf("%+.2f%%", change/nav*100),
			Category:      p.pick(fundCategory),
			RiskLevel:     p.pick(fundRisk),
			Timestamp:     now,
		})
	}
	return out, nil
}

func (p *MockProvider) RealEstate(ctx context.Context, city string) ([]Property, error) {
	if city == "" {
		city = "Delhi"
	}
	p.log.Debug("scraping real estate", zap.String("city", city))
	if err := p.wait(ctx, realEstateDelay); err != nil {
		return nil, err
	}

	now := p.now()
	out := make([]Property, 0, 10)
	for i := 0; i < 10; i++ {
		price := p.float(2000000, 7000000)
		area := p.float(500, 2000)
		bedrooms := p.intn(4) + 1
		out = append(out, Property{
			Title:        fmt.Sprintf("%dBHK %s in %s", bedrooms, p.pick(propertyTypes), p.pick(reLocations)),
			Price:        fmt.Sprintf("₹%.1f Lac", price/100000),
			Location:     p.pick(reLocations),
			PropertyType: p.pick(propertyTypes),
			Bedrooms:     fmt.Sprintf("%dBHK", bedrooms),
			Area:         fmt.Sprintf("%.0f sq ft", area),
			Link:         fmt.Sprintf("https://example-property-%d.com", i+1),
			Timestamp:    now,
		})
	}
	return out, nil
}

func (p *MockProvider) News(ctx context.Context) (News, error) {
	if err := p.wait(ctx, newsDelay); err != nil {
		return News{}, err
	}
	n := p.intn(3) + 2
	return News{
		Headlines: append([]string(nil), headlines[:n]...),
		Timestamp: p.now(),
	}, nil
}

func (p *MockProvider) History(ctx context.Context, ticker string, days int) ([]HistoricalPoint, error) {
	if days <= 0 {
		days = 30
	}
	p.log.Debug("scraping history", zap.String("ticker", ticker), zap.Int("days", days))
	if err := p.wait(ctx, historyDelay); err != nil {
		return nil, err
	}

	base := p.float(50, 550)
	today := p.now()
	out := make([]HistoricalPoint, 0, days)
	for i := days; i > 0; i-- {
		day := base + (p.float(0, 1)-0.5)*20
		open := day + (p.float(0, 1)-0.5)*5
		high := math.Max(day, open) + p.float(0, 10)
		low := math.Min(day, open) - p.float(0, 8)
		out = append(out, HistoricalPoint{
			Date:   today.AddDate(0, 0, -i).Format(time.DateOnly),
			Price:  fmt.Sprintf("%.2f", day),
			Open:   fmt.Sprintf("%.2f", open),
			High:   fmt.Sprintf("%.2f", high),
			Low:    fmt.Sprintf("%.2f", low),
			Volume: fmt.Sprintf("%.1fM", p.float(1, 11)),
		})
	}
	return out, nil
}

// Stocks resolves catalog entries; symbols outside the catalog get a
// generated INR listing.
func (p *MockProvider) Stocks(ctx context.Context, symbols []string) ([]Stock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Stock, 0, len(symbols))
	for _, sym := range symbols {
		if s, ok := Lookup(sym); ok {
			out = append(out, s)
			continue
		}
		price := p.float(100, 3100)
		change := (p.float(0, 1) - 0.5) * 50
		out = append(out, Stock{
			Symbol:        strings.ToUpper(sym),
			Name:          strings.TrimSuffix(strings.ToUpper(sym), ".NS"),
			Price:         round2(price),
			Change:        round2(change),
			ChangePercent: round2(change / price * 100),
			Currency:      "INR",
		})
	}
	return out, nil
}

func (p *MockProvider) wait(ctx context.Context, d time.Duration) error {
	if !p.latency {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p *MockProvider) float(min, max float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return min + p.rnd.Float64()*(max-min)
}

func (p *MockProvider) intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.IntN(n)
}

func (p *MockProvider) pick(list []string) string {
	return list[p.intn(len(list))]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var _ Provider = (*MockProvider)(nil)
