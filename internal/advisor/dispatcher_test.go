package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type completerMock struct {
	mock.Mock
}

func (m *completerMock) Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, model, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

type retrieverMock struct {
	mock.Mock
}

func (m *retrieverMock) Answer(ctx context.Context, query, previous string) (string, error) {
	args := m.Called(ctx, query, previous)
	return args.String(0), args.Error(1)
}

var testModels = Models{GeminiPro: "pro-model", GeminiFlash: "flash-model", Groq: "groq-model"}

type fixture struct {
	gemini    *completerMock
	groq      *completerMock
	retriever *retrieverMock
	d         *Dispatcher
}

func newFixture() fixture {
	f := fixture{gemini: &completerMock{}, groq: &completerMock{}, retriever: &retrieverMock{}}
	f.d = NewDispatcher(NewAugmenter(newTestMarket(), zap.NewNop()), f.gemini, f.groq, f.retriever,
		testModels, zap.NewNop(), WithClock(func() time.Time { return fixedNow }))
	return f
}

func Test_Respond_Auto_Advice_Uses_Retrieval(t *testing.T) {
	req := require.New(t)
	f := newFixture()
	query := "Should I invest in mutual funds for retirement planning?"
	f.retriever.On("Answer", mock.Anything, query, mock.MatchedBy(func(ctx string) bool {
		return strings.Contains(ctx, "📈 Mutual Fund NAVs:")
	})).Return("Start a SIP.", nil).Once()

	resp := f.d.Respond(context.Background(), Request{Query: query, Model: ModelAuto})

	req.True(resp.Success)
	req.Equal("Start a SIP.", resp.Content)
	req.Equal("gemini-pro-rag", resp.Model)
	req.Equal(fixedNow, resp.Timestamp)
	f.retriever.AssertExpectations(t)
	f.gemini.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_Respond_Rag_Mode(t *testing.T) {
	t.Run("should answer from retrieval", func(t *testing.T) {
		f := newFixture()
		f.retriever.On("Answer", mock.Anything, "what is an ETF", "").Return("An ETF is...", nil)

		resp := f.d.Respond(context.Background(), Request{Query: "what is an ETF", Model: ModelRAG})
		require.True(t, resp.Success)
		require.Equal(t, "rag-mode", resp.Model)
	})

	t.Run("should report retrieval errors", func(t *testing.T) {
		f := newFixture()
		f.retriever.On("Answer", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("embedding quota"))

		resp := f.d.Respond(context.Background(), Request{Query: "what is an ETF", Model: ModelRAG})
		require.False(t, resp.Success)
		require.Equal(t, retrievalFallback, resp.Content)
		require.Contains(t, resp.Error, "embedding quota")
	})
}

func Test_Respond_Gemini_Pro_Falls_Back_To_Flash(t *testing.T) {
	req := require.New(t)
	f := newFixture()
	f.gemini.On("Complete", mock.Anything, "pro-model", mock.Anything, mock.Anything).Return("", errors.New("429")).Once()
	f.gemini.On("Complete", mock.Anything, "flash-model", mock.Anything, "hello").Return("Hi from flash", nil).Once()

	resp := f.d.Respond(context.Background(), Request{Query: "hello", Model: ModelGeminiPro})

	req.True(resp.Success)
	req.Equal("Hi from flash", resp.Content)
	req.Equal("gemini-pro", resp.Model)
	f.gemini.AssertExpectations(t)
}

func Test_Respond_Gemini_Flash_Failure_Is_Localized(t *testing.T) {
	req := require.New(t)
	f := newFixture()
	f.gemini.On("Complete", mock.Anything, "flash-model", mock.Anything, mock.Anything).Return("", errors.New("503")).Once()

	resp := f.d.Respond(context.Background(), Request{Query: "hello", Model: ModelGeminiFlash, Language: "hi"})

	req.False(resp.Success)
	req.Equal(geminiFallbacks["hi"], resp.Content)
	req.Equal("gemini-flash", resp.Model)
	req.Contains(resp.Error, "503")
	f.gemini.AssertNumberOfCalls(t, "Complete", 1)
}

func Test_Respond_Auto_Selects_Gemini_Tier(t *testing.T) {
	req := require.New(t)
	f := newFixture()
	f.gemini.On("Complete", mock.Anything, "flash-model", mock.Anything, "hello").Return("Hello!", nil).Once()

	resp := f.d.Respond(context.Background(), Request{Query: "hello"})

	req.True(resp.Success)
	req.Equal("gemini-flash", resp.Model)
	f.gemini.AssertExpectations(t)
}

func Test_Respond_General_Mode_Prompt(t *testing.T) {
	req := require.New(t)
	f := newFixture()
	f.gemini.On("Complete", mock.Anything, "pro-model", mock.MatchedBy(func(system string) bool {
		return strings.Contains(system, generalPersona) && strings.Contains(system, "Telugu")
	}), mock.Anything).Return("ok", nil).Once()

	resp := f.d.Respond(context.Background(), Request{Query: "hello", Model: ModelGeneral, Language: "te"})

	req.True(resp.Success)
	req.Equal("general-mode", resp.Model)
	f.gemini.AssertExpectations(t)
}

func Test_Respond_Llama(t *testing.T) {
	t.Run("should append the data footer", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		f.groq.On("Complete", mock.Anything, "groq-model", mock.MatchedBy(func(system string) bool {
			return strings.Contains(system, `The user has the following investments: {"stocks":50000}.`)
		}), mock.MatchedBy(func(prompt string) bool {
			return strings.HasPrefix(prompt, "How is TCS share price") && strings.Contains(prompt, "📊 Real-time Stock Data")
		})).Return("[Category]: Stocks", nil).Once()

		resp := f.d.Respond(context.Background(), Request{
			Query:     "How is TCS share price",
			Model:     ModelLlama,
			Portfolio: Portfolio{"stocks": decimal.NewFromInt(50000)},
		})

		req.True(resp.Success)
		req.Equal("[Category]: Stocks"+scrapedDataFooter, resp.Content)
		req.Equal("llama-3-70b", resp.Model)
		f.groq.AssertExpectations(t)
	})

	t.Run("should fail without a groq client", func(t *testing.T) {
		d := NewDispatcher(NewAugmenter(newTestMarket(), zap.NewNop()), nil, nil, nil, testModels, zap.NewNop())
		resp := d.Respond(context.Background(), Request{Query: "hello", Model: ModelLlama})
		require.False(t, resp.Success)
		require.Equal(t, groqFallback, resp.Content)
	})
}

func Test_Respond_Augmentation_Failure(t *testing.T) {
	req := require.New(t)
	f := newFixture()
	f.d.augmenter = NewAugmenter(brokenMarket{newTestMarket()}, zap.NewNop())

	resp := f.d.Respond(context.Background(), Request{Query: "gold rate", Model: ModelGeminiFlash})

	req.False(resp.Success)
	req.Equal(technicalDifficulties, resp.Content)
	req.Contains(resp.Error, "gold feed down")
	f.gemini.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_Respond_Rejects_Bad_Requests(t *testing.T) {
	f := newFixture()

	resp := f.d.Respond(context.Background(), Request{Query: "hello", Model: "gpt-4"})
	require.False(t, resp.Success)
	require.Contains(t, resp.Error, ErrUnknownModel.Error())

	resp = f.d.Respond(context.Background(), Request{Query: "  "})
	require.False(t, resp.Success)
}
