package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/josinaldojr/finwise-advisor/internal/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func newTestMarket() *market.MockProvider {
	return market.NewMockProvider(zap.NewNop(),
		market.WithoutLatency(),
		market.WithSeed(7),
		market.WithClock(func() time.Time { return fixedNow }))
}

// brokenMarket fails the gold and quote lookups.
type brokenMarket struct {
	*market.MockProvider
}

func (brokenMarket) GoldPrices(context.Context) ([]market.GoldPrice, error) {
	return nil, errors.New("gold feed down")
}

func (brokenMarket) Quote(context.Context, string) (market.StockQuote, error) {
	return market.StockQuote{}, errors.New("quote feed down")
}

func Test_Augment_Gold_Query_Adds_Gold_Block(t *testing.T) {
	req := require.New(t)
	a := NewAugmenter(newTestMarket(), zap.NewNop())

	for _, q := range []string{"gold", "How is GOLD doing?", "gold vs silver"} {
		out, err := a.Augment(context.Background(), q, Classify(q), nil)
		req.NoError(err)
		req.Contains(out, "🥇 Current Gold Prices:")
		req.Contains(out, "Delhi: 22K(1g): ₹")
		req.Contains(out, "(Updated: 10:30:00)")
		req.Equal(5, strings.Count(out, "24K(1g)"))
	}
}

func Test_Augment_Blocks_In_Order(t *testing.T) {
	req := require.New(t)
	a := NewAugmenter(newTestMarket(), zap.NewNop())
	all := Flags{StockData: true, News: true, MarketMovers: true, GoldPrices: true, MutualFunds: true, RealEstate: true}
	portfolio := Portfolio{"stocks": decimal.NewFromInt(150000), "gold": decimal.RequireFromString("25000.5")}

	out, err := a.Augment(context.Background(), "indian nse", all, portfolio)
	req.NoError(err)

	headers := []string{
		"📊 Real-time Stock Data (Web Scraped):",
		"📈 Top Market Gainers:",
		"📉 Top Market Losers:",
		"🥇 Current Gold Prices:",
		"📈 Mutual Fund NAVs:",
		"🏠 Real Estate Properties:",
		"📰 Latest Market Headlines:",
		"💼 User Portfolio:",
	}
	last := -1
	for _, h := range headers {
		idx := strings.Index(out, h)
		req.Greater(idx, last, h)
		last = idx
	}

	req.Contains(out, "RELIANCE.NS: ₹")
	req.Contains(out, "Source: Moneycontrol, Updated: 10:30:00")
	req.Contains(out, "1. Fed signals potential rate cuts")
	req.Contains(out, "gold: ₹25,000.5\nstocks: ₹150,000\n")
}

func Test_Augment_Keeps_Ticker_Order(t *testing.T) {
	req := require.New(t)
	a := NewAugmenter(newTestMarket(), zap.NewNop())

	out, err := a.Augment(context.Background(), "price of NFLX, META and AAPL", Flags{StockData: true}, nil)
	req.NoError(err)
	req.Less(strings.Index(out, "AAPL: $"), strings.Index(out, "META: $"))
	req.Less(strings.Index(out, "META: $"), strings.Index(out, "NFLX: $"))
}

func Test_Augment_No_Flags_Is_Empty(t *testing.T) {
	out, err := NewAugmenter(newTestMarket(), zap.NewNop()).Augment(context.Background(), "hello", Flags{}, nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func Test_Augment_First_Error_Aborts(t *testing.T) {
	a := NewAugmenter(brokenMarket{newTestMarket()}, zap.NewNop())

	t.Run("should fail on a broken gold feed", func(t *testing.T) {
		out, err := a.Augment(context.Background(), "gold news", Flags{GoldPrices: true, News: true}, nil)
		require.ErrorContains(t, err, "gold feed down")
		require.Empty(t, out)
	})

	t.Run("should fail when any ticker fails", func(t *testing.T) {
		_, err := a.Augment(context.Background(), "AAPL price", Flags{StockData: true}, nil)
		require.ErrorContains(t, err, "quote feed down")
	})
}

func Test_FormatAmount(t *testing.T) {
	req := require.New(t)
	req.Equal("1,234,567", formatAmount(decimal.NewFromInt(1234567)))
	req.Equal("12.5", formatAmount(decimal.RequireFromString("12.50")))
	req.Equal("-0.25", formatAmount(decimal.RequireFromString("-0.25")))
	req.Equal("-1,000.125", formatAmount(decimal.RequireFromString("-1000.125")))

	t.Run("should carry a rounded fraction into the whole part", func(t *testing.T) {
		req := require.New(t)
		req.Equal("1,235", formatAmount(decimal.RequireFromString("1234.9996")))
		req.Equal("1", formatAmount(decimal.RequireFromString("0.9999")))
		req.Equal("100", formatAmount(decimal.RequireFromString("99.9995")))
		req.Equal("-2", formatAmount(decimal.RequireFromString("-1.9999")))
		req.Equal("0", formatAmount(decimal.RequireFromString("-0.0001")))
	})
}
