package invest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/josinaldojr/finwise-advisor/internal/market"
	"github.com/josinaldojr/finwise-advisor/internal/risk"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type offlineMarket struct {
	*market.MockProvider
}

func (offlineMarket) Stocks(context.Context, []string) ([]market.Stock, error) {
	return nil, errors.New("exchange unreachable")
}

func newService(p market.Provider) *Service {
	return NewService(p, zap.NewNop())
}

func mockMarket() *market.MockProvider {
	return market.NewMockProvider(zap.NewNop(), market.WithoutLatency(), market.WithSeed(1))
}

func totalAllocation(s []Suggestion) int {
	return lo.SumBy(s, func(x Suggestion) int { return x.Allocation })
}

func Test_Suggest_Per_Level(t *testing.T) {
	svc := newService(mockMarket())
	ctx := context.Background()

	tests := []struct {
		level      risk.Level
		categories []string
		stocks     int
	}{
		{risk.LevelLow, []string{"Blue Chip Stocks", "Gold ETFs", "Fixed Deposits"}, 5},
		{risk.LevelMedium, []string{"Diversified Equity", "Gold ETFs", "Mutual Funds"}, 6},
		{risk.LevelHigh, []string{"Growth Stocks", "Sectoral ETFs", "Alternative Investments"}, 7},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			req := require.New(t)
			out, err := svc.Suggest(ctx, tt.level)
			req.NoError(err)
			req.Equal(tt.categories, lo.Map(out, func(s Suggestion, _ int) string { return s.Category }))
			req.Equal(100, totalAllocation(out))
			req.Len(out[0].Stocks, tt.stocks)
		})
	}
}

func Test_Suggest_Uses_Catalog_When_Offline(t *testing.T) {
	req := require.New(t)
	svc := newService(offlineMarket{mockMarket()})

	out, err := svc.Suggest(context.Background(), risk.LevelLow)
	req.NoError(err)
	req.Equal(market.IndianStocks(), out[0].Stocks)
	req.Equal(market.GoldETFs(), out[1].Stocks)
}

func Test_Suggest_Falls_Back_To_Defaults_On_Cancel(t *testing.T) {
	req := require.New(t)
	svc := newService(market.NewMockProvider(zap.NewNop()))
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	out, err := svc.Suggest(ctx, risk.LevelMedium)
	req.NoError(err)
	req.Equal(Defaults(risk.LevelMedium), out)
	req.Len(out, 2)
	req.Equal(100, totalAllocation(out))
}

func Test_Suggest_Accepts_Any_Case(t *testing.T) {
	req := require.New(t)
	out, err := newService(mockMarket()).Suggest(context.Background(), "HIGH")
	req.NoError(err)
	req.Len(out, 3)
	req.Equal("Growth Stocks", out[0].Category)
	req.Equal(100, totalAllocation(out))
}

func Test_Suggest_Rejects_Unknown_Level(t *testing.T) {
	_, err := newService(mockMarket()).Suggest(context.Background(), "extreme")
	require.Error(t, err)
}

func Test_Defaults_Allocations(t *testing.T) {
	for _, l := range []risk.Level{risk.LevelLow, risk.LevelMedium, risk.LevelHigh} {
		require.Equal(t, 100, totalAllocation(Defaults(l)), string(l))
	}
}
