package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/josinaldojr/finwise-advisor/internal/advisor"
	"github.com/josinaldojr/finwise-advisor/internal/lang"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionBusy         = errors.New("session is processing another message")
	ErrEmptyMessage        = errors.New("message content is required")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

const (
	welcomeCompact = "Hello! I'm your AI financial assistant with real-time web-scraped market data. How can I help you today?"
	welcomeFull    = "Welcome to FinWise's enhanced AI financial assistant! I now have access to real-time market data through web scraping and multiple AI models to provide you with the most accurate and up-to-date financial advice. Ask me about stock prices, market movers, or financial news!"

	// Detected languages below this confidence do not switch the session.
	autoSwitchConfidence = 0.6
)

// Responder produces the assistant turn for a query.
type Responder interface {
	Respond(ctx context.Context, req advisor.Request) advisor.Response
}

type session struct {
	mu       sync.Mutex
	id       string
	compact  bool
	language string
	model    advisor.ModelTag
	created  time.Time
	busy     bool
	messages []Message
	insights []Insight
}

func (s *session) snapshot() Session {
	return Session{
		ID:        s.id,
		Compact:   s.compact,
		Language:  s.language,
		Model:     s.model,
		CreatedAt: s.created,
		Messages:  append([]Message(nil), s.messages...),
		Insights:  append([]Insight(nil), s.insights...),
	}
}

// Service keeps chat sessions in memory.
type Service struct {
	mu        sync.RWMutex
	sessions  map[string]*session
	responder Responder
	now       func() time.Time
	log       *zap.Logger
}

func NewService(responder Responder, log *zap.Logger) *Service {
	return &Service{
		sessions:  make(map[string]*session),
		responder: responder,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.Named("chat"),
	}
}

// CreateSession opens a conversation seeded with the welcome message. Full
// sessions also start with the introductory insight cards.
func (s *Service) CreateSession(_ context.Context, compact bool) (Session, error) {
	now := s.now()
	sess := &session{
		id:       uuid.NewString(),
		compact:  compact,
		language: "en",
		model:    advisor.ModelAuto,
		created:  now,
	}

	welcome := welcomeFull
	if compact {
		welcome = welcomeCompact
	} else {
		sess.insights = append([]Insight(nil), welcomeInsights...)
	}
	sess.messages = append(sess.messages, Message{
		ID:        "welcome",
		SessionID: sess.id,
		Role:      RoleAssistant,
		Type:      RoleAssistant,
		Content:   welcome,
		Model:     "system",
		Timestamp: now,
	})

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.log.Debug("session created", zap.String("session", sess.id), zap.Bool("compact", compact))
	return sess.snapshot(), nil
}

func (s *Service) GetSession(_ context.Context, id string) (Session, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// Messages returns a copy of the transcript.
func (s *Service) Messages(_ context.Context, id string) ([]Message, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return append([]Message(nil), sess.messages...), nil
}

// Send appends the user turn, asks the responder and appends its answer. A
// session handles one message at a time; a concurrent Send fails with
// ErrSessionBusy.
func (s *Service) Send(ctx context.Context, id string, req SendRequest) (Reply, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return Reply{}, ErrEmptyMessage
	}
	if req.Model != "" {
		if _, err := advisor.ParseModelTag(string(req.Model)); err != nil {
			return Reply{}, err
		}
	}

	sess, err := s.lookup(id)
	if err != nil {
		return Reply{}, err
	}

	sess.mu.Lock()
	if sess.busy {
		sess.mu.Unlock()
		return Reply{}, ErrSessionBusy
	}
	if err := s.applyLanguage(sess, req.Language, content); err != nil {
		sess.mu.Unlock()
		return Reply{}, err
	}
	if req.Model != "" {
		sess.model = req.Model
	}
	sess.busy = true
	sess.messages = append(sess.messages, Message{
		ID:        uuid.NewString(),
		SessionID: sess.id,
		Role:      RoleUser,
		Type:      RoleUser,
		Content:   content,
		Model:     "user",
		Timestamp: s.now(),
	})
	dispatch := advisor.Request{
		Query:     content,
		Model:     sess.model,
		Portfolio: req.Portfolio,
		Language:  sess.language,
	}
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.busy = false
		sess.mu.Unlock()
	}()

	resp := s.responder.Respond(ctx, dispatch)
	if !resp.Success {
		s.log.Warn("assistant reply failed", zap.String("session", sess.id), zap.String("model", resp.Model), zap.String("error", resp.Error))
	}

	ts := resp.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	answer := Message{
		ID:        uuid.NewString(),
		SessionID: sess.id,
		Role:      RoleAssistant,
		Type:      RoleAssistant,
		Content:   resp.Content,
		Model:     resp.Model,
		Timestamp: ts,
	}

	sess.mu.Lock()
	sess.messages = append(sess.messages, answer)
	if !sess.compact {
		if added := deriveInsights(content, resp.Content); len(added) > 0 {
			sess.insights = appendInsights(sess.insights, added)
		}
	}
	reply := Reply{
		Message:  answer,
		Success:  resp.Success,
		Error:    resp.Error,
		Language: sess.language,
		Insights: append([]Insight(nil), sess.insights...),
	}
	sess.mu.Unlock()

	return reply, nil
}

// applyLanguage updates the session language. Caller holds sess.mu.
func (s *Service) applyLanguage(sess *session, requested, content string) error {
	switch requested {
	case "":
		return nil
	case "auto":
		detected := lang.Detect(content)
		if detected.Confidence > autoSwitchConfidence && lang.SupportedForVoice(detected.Code) {
			sess.language = detected.Code
		}
		return nil
	}
	if !lang.SupportedForVoice(requested) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, requested)
	}
	sess.language = requested
	return nil
}

func (s *Service) lookup(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}
