package invest

import (
	"context"
	"fmt"

	"github.com/josinaldojr/finwise-advisor/internal/market"
	"github.com/josinaldojr/finwise-advisor/internal/risk"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Suggestion is one slice of a recommended portfolio. Allocations across a
// level add up to 100.
type Suggestion struct {
	Category       string         `json:"category"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	RiskLevel      risk.Level     `json:"riskLevel"`
	ExpectedReturn string         `json:"expectedReturn"`
	Stocks         []market.Stock `json:"stocks"`
	Allocation     int            `json:"allocation"`
}

var (
	fixedDeposits = []market.Stock{
		{Symbol: "FD", Name: "SBI Fixed Deposit", Price: 100000, ChangePercent: 6.5, Currency: "INR"},
		{Symbol: "FD", Name: "HDFC Fixed Deposit", Price: 100000, ChangePercent: 6.75, Currency: "INR"},
	}
	equityFunds = []market.Stock{
		{Symbol: "MF", Name: "SBI Bluechip Fund", Price: 156.78, Change: 2.34, ChangePercent: 1.52, Currency: "INR"},
		{Symbol: "MF", Name: "HDFC Top 100 Fund", Price: 234.56, Change: -1.23, ChangePercent: -0.52, Currency: "INR"},
	}
	sectoralETFs = []market.Stock{
		{Symbol: "BANKNIFTY", Name: "Bank Nifty ETF", Price: 456.78, Change: 12.34, ChangePercent: 2.78, Currency: "INR"},
		{Symbol: "TECHNIFTY", Name: "Tech Nifty ETF", Price: 234.56, Change: 8.90, ChangePercent: 3.94, Currency: "INR"},
	}
	trusts = []market.Stock{
		{Symbol: "EMBASSY", Name: "Embassy Office Parks REIT", Price: 345.67, Change: 4.56, ChangePercent: 1.34, Currency: "INR"},
		{Symbol: "INDGRID", Name: "India Grid Trust InvIT", Price: 123.45, Change: 2.34, ChangePercent: 1.93, Currency: "INR"},
	}
)

type Service struct {
	market market.Provider
	log    *zap.Logger
}

func NewService(p market.Provider, log *zap.Logger) *Service {
	return &Service{market: p, log: log.Named("invest")}
}

// Suggest builds the portfolio for a risk level. Listings come from the
// market provider with the static catalog as fallback; when the request is
// cancelled midway the reduced default portfolio is returned.
func (s *Service) Suggest(ctx context.Context, level risk.Level) ([]Suggestion, error) {
	parsed, ok := risk.ParseLevel(string(level))
	if !ok {
		return nil, fmt.Errorf("unknown risk level %q", level)
	}
	level = parsed

	gold := s.fetch(ctx, market.GoldETFs(), market.GoldETFSymbols)

	var out []Suggestion
	switch level {
	case risk.LevelLow:
		stocks := s.fetch(ctx, lo.Slice(market.IndianStocks(), 0, 5), lo.Slice(market.LargeCap, 0, 5))
		out = []Suggestion{
			{
				Category:       "Blue Chip Stocks",
				Title:          "Large Cap Indian Stocks",
				Description:    "Invest in established companies with strong fundamentals and stable dividend history.",
				RiskLevel:      risk.LevelLow,
				ExpectedReturn: "8-12% annually",
				Stocks:         stocks,
				Allocation:     40,
			},
			{
				Category:       "Gold ETFs",
				Title:          "Gold Exchange Traded Funds",
				Description:    "Hedge against inflation with gold investments through ETFs.",
				RiskLevel:      risk.LevelLow,
				ExpectedReturn: "6-10% annually",
				Stocks:         gold,
				Allocation:     30,
			},
			{
				Category:       "Fixed Deposits",
				Title:          "Bank Fixed Deposits",
				Description:    "Guaranteed returns with capital protection.",
				RiskLevel:      risk.LevelLow,
				ExpectedReturn: "5-7% annually",
				Stocks:         clone(fixedDeposits),
				Allocation:     30,
			},
		}

	case risk.LevelMedium:
		stocks := s.fetch(ctx, lo.Slice(market.IndianStocks(), 0, 6),
			lo.Slice(market.LargeCap, 0, 3), lo.Slice(market.MidCap, 0, 3))
		out = []Suggestion{
			{
				Category:       "Diversified Equity",
				Title:          "Large & Mid Cap Stocks",
				Description:    "Balanced exposure to established and growing companies.",
				RiskLevel:      risk.LevelMedium,
				ExpectedReturn: "10-15% annually",
				Stocks:         stocks,
				Allocation:     50,
			},
			{
				Category:       "Gold ETFs",
				Title:          "Gold Exchange Traded Funds",
				Description:    "Portfolio diversification with precious metal exposure.",
				RiskLevel:      risk.LevelLow,
				ExpectedReturn: "6-10% annually",
				Stocks:         gold,
				Allocation:     20,
			},
			{
				Category:       "Mutual Funds",
				Title:          "Equity Mutual Funds",
				Description:    "Professional fund management with diversified portfolio.",
				RiskLevel:      risk.LevelMedium,
				ExpectedReturn: "12-16% annually",
				Stocks:         clone(equityFunds),
				Allocation:     30,
			},
		}

	case risk.LevelHigh:
		stocks := s.fetch(ctx, market.IndianStocks(),
			lo.Slice(market.LargeCap, 0, 2), lo.Slice(market.MidCap, 0, 3), lo.Slice(market.SmallCap, 0, 2))
		out = []Suggestion{
			{
				Category:       "Growth Stocks",
				Title:          "High Growth Potential Stocks",
				Description:    "Invest in companies with high growth potential across market caps.",
				RiskLevel:      risk.LevelHigh,
				ExpectedReturn: "15-25% annually",
				Stocks:         stocks,
				Allocation:     60,
			},
			{
				Category:       "Sectoral ETFs",
				Title:          "Technology & Banking ETFs",
				Description:    "Sector-focused investments in high-growth industries.",
				RiskLevel:      risk.LevelHigh,
				ExpectedReturn: "12-20% annually",
				Stocks:         clone(sectoralETFs),
				Allocation:     25,
			},
			{
				Category:       "Alternative Investments",
				Title:          "REITs & InvITs",
				Description:    "Real estate and infrastructure investment trusts for portfolio diversification.",
				RiskLevel:      risk.LevelMedium,
				ExpectedReturn: "8-14% annually",
				Stocks:         clone(trusts),
				Allocation:     15,
			},
		}
	}

	if err := ctx.Err(); err != nil {
		s.log.Warn("suggestions interrupted, using defaults", zap.String("level", string(level)), zap.Error(err))
		return Defaults(level), nil
	}
	return out, nil
}

// fetch loads each symbol group in turn. Any failure or an empty result
// yields the fallback list.
func (s *Service) fetch(ctx context.Context, fallback []market.Stock, groups ...[]string) []market.Stock {
	var out []market.Stock
	for _, symbols := range groups {
		stocks, err := s.market.Stocks(ctx, symbols)
		if err != nil {
			s.log.Debug("listing fetch failed, using catalog", zap.Strings("symbols", symbols), zap.Error(err))
			return fallback
		}
		out = append(out, stocks...)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// Defaults is the reduced two-part portfolio built from the static catalog.
func Defaults(level risk.Level) []Suggestion {
	stocks := market.IndianStocks()
	gold := market.GoldETFs()

	switch level {
	case risk.LevelLow:
		return []Suggestion{
			{
				Category:       "Blue Chip Stocks",
				Title:          "Large Cap Indian Stocks",
				Description:    "Invest in established companies with strong fundamentals.",
				RiskLevel:      risk.LevelLow,
				ExpectedReturn: "8-12% annually",
				Stocks:         lo.Slice(stocks, 0, 3),
				Allocation:     40,
			},
			{
				Category:       "Gold ETFs",
				Title:          "Gold Exchange Traded Funds",
				Description:    "Hedge against inflation with gold investments.",
				RiskLevel:      risk.LevelLow,
				ExpectedReturn: "6-10% annually",
				Stocks:         gold,
				Allocation:     60,
			},
		}
	case risk.LevelMedium:
		return []Suggestion{
			{
				Category:       "Diversified Equity",
				Title:          "Large & Mid Cap Stocks",
				Description:    "Balanced exposure to established and growing companies.",
				RiskLevel:      risk.LevelMedium,
				ExpectedReturn: "10-15% annually",
				Stocks:         lo.Slice(stocks, 0, 4),
				Allocation:     70,
			},
			{
				Category:       "Gold ETFs",
				Title:          "Gold Exchange Traded Funds",
				Description:    "Portfolio diversification with precious metal exposure.",
				RiskLevel:      risk.LevelLow,
				ExpectedReturn: "6-10% annually",
				Stocks:         gold,
				Allocation:     30,
			},
		}
	case risk.LevelHigh:
		return []Suggestion{
			{
				Category:       "Growth Stocks",
				Title:          "High Growth Potential Stocks",
				Description:    "Invest in companies with high growth potential.",
				RiskLevel:      risk.LevelHigh,
				ExpectedReturn: "15-25% annually",
				Stocks:         stocks,
				Allocation:     80,
			},
			{
				Category:       "Alternative Investments",
				Title:          "REITs & Sectoral ETFs",
				Description:    "Real estate and sector-focused investments.",
				RiskLevel:      risk.LevelMedium,
				ExpectedReturn: "8-14% annually",
				Stocks:         clone(trusts[:1]),
				Allocation:     20,
			},
		}
	}
	return nil
}

func clone(s []market.Stock) []market.Stock {
	return append([]market.Stock(nil), s...)
}
