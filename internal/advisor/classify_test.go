package advisor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Classify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Flags
	}{
		{"gold and news", "What is the gold rate today?", Flags{GoldPrices: true, News: true}},
		{"stock quote", "Show me the AAPL stock price", Flags{StockData: true}},
		{"movers", "Who are the top gainers and losers?", Flags{MarketMovers: true}},
		{"mutual funds", "Best SIP in a mutual fund", Flags{MutualFunds: true}},
		{"real estate", "Should I buy property or rent", Flags{RealEstate: true}},
		{"case insensitive", "GOLD", Flags{GoldPrices: true}},
		{"nothing", "hello there", Flags{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.query))
		})
	}
}

func Test_IsAdviceQuery(t *testing.T) {
	req := require.New(t)

	req.True(IsAdviceQuery("Should I invest in mutual funds for retirement planning?"))
	req.True(IsAdviceQuery("Please recommend a portfolio"))
	req.False(IsAdviceQuery("What is a mutual fund? Recommend one"))
	req.False(IsAdviceQuery("Give me the latest advice"))
	req.False(IsAdviceQuery("hello"))
}

func Test_SelectModel(t *testing.T) {
	require.Equal(t, ModelGeminiPro, SelectModel("Analyze my portfolio"))
	require.Equal(t, ModelGeminiPro, SelectModel("gold"))
	require.Equal(t, ModelGeminiFlash, SelectModel("hello"))
}

func Test_ExtractTickers(t *testing.T) {
	t.Run("should return mentioned tickers in catalog order", func(t *testing.T) {
		require.Equal(t, []string{"AAPL", "TSLA"}, ExtractTickers("compare tsla with aapl"))
	})
	t.Run("should cap at three tickers", func(t *testing.T) {
		require.Len(t, ExtractTickers("AAPL MSFT GOOGL AMZN"), 3)
	})
	t.Run("should default to indian blue chips", func(t *testing.T) {
		require.Equal(t, []string{"RELIANCE.NS", "TCS.NS", "INFY.NS"}, ExtractTickers("indian stock prices"))
	})
	t.Run("should default to US tech", func(t *testing.T) {
		require.Equal(t, []string{"AAPL", "MSFT", "GOOGL"}, ExtractTickers("stock prices"))
	})
}

func Test_ParseModelTag(t *testing.T) {
	req := require.New(t)

	tag, err := ParseModelTag("")
	req.NoError(err)
	req.Equal(ModelAuto, tag)

	tag, err = ParseModelTag("LLAMA-3-70B")
	req.NoError(err)
	req.Equal(ModelLlama, tag)

	_, err = ParseModelTag("gpt-4")
	req.ErrorIs(err, ErrUnknownModel)
}
