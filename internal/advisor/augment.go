package advisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/josinaldojr/finwise-advisor/internal/market"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	moversShown     = 3
	collectionShown = 5
	clockLayout     = "15:04:05"
)

// Augmenter appends formatted market data blocks to a query.
type Augmenter struct {
	market market.Provider
	log    *zap.Logger
}

func NewAugmenter(p market.Provider, log *zap.Logger) *Augmenter {
	return &Augmenter{market: p, log: log.Named("augmenter")}
}

// Augment builds the context block for the flags that are set. Blocks are
// emitted in a fixed order and the first provider error aborts the lot.
func (a *Augmenter) Augment(ctx context.Context, query string, flags Flags, portfolio Portfolio) (string, error) {
	var b strings.Builder

	if flags.StockData {
		if err := a.stocks(ctx, &b, ExtractTickers(query)); err != nil {
			return "", fmt.Errorf("stock data: %w", err)
		}
	}

	if flags.MarketMovers {
		a.log.Debug("fetching market movers")
		movers, err := a.market.Movers(ctx)
		if err != nil {
			return "", fmt.Errorf("market movers: %w", err)
		}
		b.WriteString("\n\n📈 Top Market Gainers:\n")
		for _, m := range first(movers.Gainers, moversShown) {
			fmt.Fprintf(&b, "%s: %s (%s, %s)\n", m.Ticker, m.Price, m.Change, m.PercentChange)
		}
		b.WriteString("\n📉 Top Market Losers:\n")
		for _, m := range first(movers.Losers, moversShown) {
			fmt.Fprintf(&b, "%s: %s (%s, %s)\n", m.Ticker, m.Price, m.Change, m.PercentChange)
		}
	}

	if flags.GoldPrices {
		a.log.Debug("fetching gold prices")
		gold, err := a.market.GoldPrices(ctx)
		if err != nil {
			return "", fmt.Errorf("gold prices: %w", err)
		}
		b.WriteString("\n\n🥇 Current Gold Prices:\n")
		for _, g := range first(gold, collectionShown) {
			fmt.Fprintf(&b, "%s: 22K(1g): %s, 24K(1g): %s\n", g.City, g.Gold22K1g, g.Gold24K1g)
		}
		if len(gold) > 0 {
			writeUpdated(&b, gold[0].Timestamp)
		}
	}

	if flags.MutualFunds {
		a.log.Debug("fetching mutual fund navs")
		funds, err := a.market.MutualFunds(ctx)
		if err != nil {
			return "", fmt.Errorf("mutual funds: %w", err)
		}
		b.WriteString("\n\n📈 Mutual Fund NAVs:\n")
		for _, f := range first(funds, collectionShown) {
			fmt.Fprintf(&b, "%s: %s (%s, %s)\n", f.FundName, f.LatestNAV, f.Change, f.ChangePercent)
			fmt.Fprintf(&b, "  Category: %s, Risk: %s\n", f.Category, f.RiskLevel)
		}
		if len(funds) > 0 {
			writeUpdated(&b, funds[0].Timestamp)
		}
	}

	if flags.RealEstate {
		a.log.Debug("fetching real estate listings")
		props, err := a.market.RealEstate(ctx, "")
		if err != nil {
			return "", fmt.Errorf("real estate: %w", err)
		}
		b.WriteString("\n\n🏠 Real Estate Properties:\n")
		for _, p := range first(props, collectionShown) {
			fmt.Fprintf(&b, "%s: %s\n", p.Title, p.Price)
			fmt.Fprintf(&b, "  Location: %s, Area: %s\n", p.Location, p.Area)
		}
		if len(props) > 0 {
			writeUpdated(&b, props[0].Timestamp)
		}
	}

	if flags.News {
		news, err := a.market.News(ctx)
		if err != nil {
			return "", fmt.Errorf("market news: %w", err)
		}
		b.WriteString("\n\n📰 Latest Market Headlines:\n")
		for i, h := range news.Headlines {
			fmt.Fprintf(&b, "%d. %s\n", i+1, h)
		}
		writeUpdated(&b, news.Timestamp)
	}

	if len(portfolio) > 0 {
		b.WriteString("\n\n💼 User Portfolio:\n")
		for _, asset := range portfolio.Assets() {
			fmt.Fprintf(&b, "%s: ₹%s\n", asset, formatAmount(portfolio[asset]))
		}
	}

	return b.String(), nil
}

// stocks fetches all tickers concurrently and keeps them in request order.
func (a *Augmenter) stocks(ctx context.Context, b *strings.Builder, tickers []string) error {
	if len(tickers) == 0 {
		return nil
	}
	a.log.Debug("fetching stock data", zap.Strings("tickers", tickers))

	quotes := make([]market.StockQuote, len(tickers))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tickers {
		g.Go(func() error {
			q, err := a.market.Quote(gctx, t)
			if err != nil {
				return err
			}
			quotes[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	b.WriteString("\n\n📊 Real-time Stock Data (Web Scraped):\n")
	for _, q := range quotes {
		currency := "$"
		if strings.Contains(q.Ticker, ".NS") {
			currency = "₹"
		}
		sign := ""
		if q.Change >= 0 {
			sign = "+"
		}
		fmt.Fprintf(b, "%s: %s%s (%s%s, %s%.2f%%)\n",
			q.Ticker, currency, formatNumber(q.Price), sign, formatNumber(q.Change), sign, q.ChangePercent)
		fmt.Fprintf(b, "  Market Cap: %s, P/E: %s, Volume: %s\n", q.MarketCap, q.PERatio, q.Volume)
		fmt.Fprintf(b, "  Source: %s, Updated: %s\n\n", q.Source, q.Timestamp.Format(clockLayout))
	}
	return nil
}

func writeUpdated(b *strings.Builder, ts time.Time) {
	fmt.Fprintf(b, "(Updated: %s)\n", ts.Format(clockLayout))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func first[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
