package market

import "context"

// Provider is the market data source consumed by the augmenter, the
// investment suggestions and the market endpoints.
type Provider interface {
	Quote(ctx context.Context, ticker string) (StockQuote, error)
	Movers(ctx context.Context) (Movers, error)
	GoldPrices(ctx context.Context) ([]GoldPrice, error)
	MutualFunds(ctx context.Context) ([]MutualFund, error)
	RealEstate(ctx context.Context, city string) ([]Property, error)
	News(ctx context.Context) (News, error)
	History(ctx context.Context, ticker string, days int) ([]HistoricalPoint, error)
	Stocks(ctx context.Context, symbols []string) ([]Stock, error)
}
