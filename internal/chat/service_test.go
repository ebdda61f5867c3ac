package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/josinaldojr/finwise-advisor/internal/advisor"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type responderMock struct {
	mock.Mock
}

func (m *responderMock) Respond(ctx context.Context, req advisor.Request) advisor.Response {
	return m.Called(ctx, req).Get(0).(advisor.Response)
}

// blockingResponder holds every call until release is closed.
type blockingResponder struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingResponder) Respond(context.Context, advisor.Request) advisor.Response {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return advisor.Response{Success: true, Content: "done", Model: "gemini-flash"}
}

var replyAt = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func Test_CreateSession(t *testing.T) {
	svc := NewService(&responderMock{}, zap.NewNop())
	ctx := context.Background()

	t.Run("should seed a full session with welcome and insights", func(t *testing.T) {
		req := require.New(t)
		sess, err := svc.CreateSession(ctx, false)
		req.NoError(err)
		req.NotEmpty(sess.ID)
		req.Equal("en", sess.Language)
		req.Equal(advisor.ModelAuto, sess.Model)
		req.Len(sess.Messages, 1)
		req.Equal(welcomeFull, sess.Messages[0].Content)
		req.Equal("system", sess.Messages[0].Model)
		req.Equal(RoleAssistant, sess.Messages[0].Type)
		req.Len(sess.Insights, 3)
	})

	t.Run("should keep compact sessions lean", func(t *testing.T) {
		req := require.New(t)
		sess, err := svc.CreateSession(ctx, true)
		req.NoError(err)
		req.Equal(welcomeCompact, sess.Messages[0].Content)
		req.Empty(sess.Insights)
	})
}

func Test_Send_Appends_Both_Turns(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	responder := &responderMock{}
	svc := NewService(responder, zap.NewNop())
	sess, err := svc.CreateSession(ctx, false)
	req.NoError(err)

	responder.On("Respond", mock.Anything, advisor.Request{
		Query:    "What is the AAPL price?",
		Model:    advisor.ModelGeminiPro,
		Language: "en",
	}).Return(advisor.Response{
		Success:   true,
		Content:   "AAPL trades at $180.\n\n*Data scraped in real-time. Verify before trading.*",
		Model:     "gemini-pro",
		Timestamp: replyAt,
	}).Once()

	reply, err := svc.Send(ctx, sess.ID, SendRequest{Content: "  What is the AAPL price?  ", Model: advisor.ModelGeminiPro})
	req.NoError(err)
	req.True(reply.Success)
	req.Equal("gemini-pro", reply.Message.Model)
	req.Equal(replyAt, reply.Message.Timestamp)

	msgs, err := svc.Messages(ctx, sess.ID)
	req.NoError(err)
	req.Len(msgs, 3)
	req.Equal(RoleUser, msgs[1].Role)
	req.Equal(RoleUser, msgs[1].Type)
	req.Equal("What is the AAPL price?", msgs[1].Content)
	req.Equal(RoleAssistant, msgs[2].Role)
	req.Equal(RoleAssistant, msgs[2].Type)

	// 3 welcome cards + live data + verification, capped at 5
	req.Len(reply.Insights, 5)
	req.Equal("Real-Time Verification", reply.Insights[4].Title)
	responder.AssertExpectations(t)
}

func Test_Send_Keeps_Last_Five_Insights(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	responder := &responderMock{}
	responder.On("Respond", mock.Anything, mock.Anything).Return(advisor.Response{Success: true, Content: "₹100", Model: "gemini-flash"})
	svc := NewService(responder, zap.NewNop())
	sess, err := svc.CreateSession(ctx, false)
	req.NoError(err)

	for i := 0; i < 4; i++ {
		_, err := svc.Send(ctx, sess.ID, SendRequest{Content: "top gainers and losers price"})
		req.NoError(err)
	}

	got, err := svc.GetSession(ctx, sess.ID)
	req.NoError(err)
	req.Len(got.Insights, 5)
	req.Equal("Market Movers Analysis", got.Insights[4].Title)
}

func Test_Send_Records_Failed_Replies(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	responder := &responderMock{}
	responder.On("Respond", mock.Anything, mock.Anything).Return(advisor.Response{
		Success: false,
		Content: "I'm experiencing technical difficulties accessing real-time data. Please try again later.",
		Model:   "auto",
		Error:   "gold feed down",
	})
	svc := NewService(responder, zap.NewNop())
	sess, _ := svc.CreateSession(ctx, true)

	reply, err := svc.Send(ctx, sess.ID, SendRequest{Content: "gold"})
	req.NoError(err)
	req.False(reply.Success)
	req.Equal("gold feed down", reply.Error)

	msgs, _ := svc.Messages(ctx, sess.ID)
	req.Len(msgs, 3)
	req.Equal("auto", msgs[2].Model)
}

func Test_Send_Errors(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&responderMock{}, zap.NewNop())
	sess, _ := svc.CreateSession(ctx, true)

	t.Run("should reject empty content", func(t *testing.T) {
		_, err := svc.Send(ctx, sess.ID, SendRequest{Content: "   "})
		require.ErrorIs(t, err, ErrEmptyMessage)
	})
	t.Run("should reject unknown sessions", func(t *testing.T) {
		_, err := svc.Send(ctx, "missing", SendRequest{Content: "hi"})
		require.ErrorIs(t, err, ErrSessionNotFound)
	})
	t.Run("should reject unknown models", func(t *testing.T) {
		_, err := svc.Send(ctx, sess.ID, SendRequest{Content: "hi", Model: "gpt-4"})
		require.ErrorIs(t, err, advisor.ErrUnknownModel)
	})
	t.Run("should reject unsupported languages", func(t *testing.T) {
		_, err := svc.Send(ctx, sess.ID, SendRequest{Content: "hi", Language: "xx"})
		require.ErrorIs(t, err, ErrUnsupportedLanguage)
	})
}

func Test_Send_One_Request_At_A_Time(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	blocker := &blockingResponder{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(blocker, zap.NewNop())
	sess, _ := svc.CreateSession(ctx, true)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Send(ctx, sess.ID, SendRequest{Content: "first"})
		done <- err
	}()
	<-blocker.started

	_, err := svc.Send(ctx, sess.ID, SendRequest{Content: "second"})
	req.ErrorIs(err, ErrSessionBusy)

	close(blocker.release)
	req.NoError(<-done)

	_, err = svc.Send(ctx, sess.ID, SendRequest{Content: "third"})
	req.NoError(err)
}

func Test_Send_Auto_Language(t *testing.T) {
	ctx := context.Background()

	t.Run("should switch on a confident detection", func(t *testing.T) {
		req := require.New(t)
		responder := &responderMock{}
		responder.On("Respond", mock.Anything, mock.MatchedBy(func(r advisor.Request) bool {
			return r.Language == "hi"
		})).Return(advisor.Response{Success: true, Content: "ठीक है", Model: "gemini-flash"}).Once()
		svc := NewService(responder, zap.NewNop())
		sess, _ := svc.CreateSession(ctx, true)

		reply, err := svc.Send(ctx, sess.ID, SendRequest{
			Content:  "मैं अपने पैसे को कहाँ निवेश करूं ताकि मुझे अच्छा रिटर्न मिले और जोखिम कम हो",
			Language: "auto",
		})
		req.NoError(err)
		req.Equal("hi", reply.Language)
		responder.AssertExpectations(t)
	})

	t.Run("should keep the language on short input", func(t *testing.T) {
		req := require.New(t)
		responder := &responderMock{}
		responder.On("Respond", mock.Anything, mock.Anything).Return(advisor.Response{Success: true, Content: "ok", Model: "gemini-flash"})
		svc := NewService(responder, zap.NewNop())
		sess, _ := svc.CreateSession(ctx, true)

		reply, err := svc.Send(ctx, sess.ID, SendRequest{Content: "hola", Language: "auto"})
		req.NoError(err)
		req.Equal("en", reply.Language)
	})
}
