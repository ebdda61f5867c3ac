package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/josinaldojr/finwise-advisor/internal/lang"
	"go.uber.org/zap"
)

// Completer is a chat-style LLM endpoint.
type Completer interface {
	Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

// Retriever answers from the retrieval corpus. previous is extra context
// appended to the prompt.
type Retriever interface {
	Answer(ctx context.Context, query, previous string) (string, error)
}

// Models names the vendor models behind the tags.
type Models struct {
	GeminiPro   string
	GeminiFlash string
	Groq        string
}

type Request struct {
	Query     string    `json:"query" validate:"required"`
	Model     ModelTag  `json:"model"`
	Portfolio Portfolio `json:"userInvestments,omitempty"`
	Language  string    `json:"language"`
}

type Response struct {
	Success   bool      `json:"success"`
	Content   string    `json:"content"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

var errNotConfigured = errors.New("client not configured")

type Dispatcher struct {
	augmenter *Augmenter
	gemini    Completer
	groq      Completer
	retriever Retriever
	models    Models
	log       *zap.Logger
	now       func() time.Time
}

type DispatcherOption func(*Dispatcher)

func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher wires the vendor clients. Any of gemini, groq or retriever may
// be nil; requests routed to a missing client fail with success=false.
func NewDispatcher(augmenter *Augmenter, gemini, groq Completer, retriever Retriever, models Models, log *zap.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		augmenter: augmenter,
		gemini:    gemini,
		groq:      groq,
		retriever: retriever,
		models:    models,
		log:       log.Named("dispatcher"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Respond classifies and augments the query, then routes it to the branch
// selected by the model tag. Failures never escape: they come back as a
// response with Success=false, a fallback Content and the error text.
func (d *Dispatcher) Respond(ctx context.Context, req Request) Response {
	ts := d.now()
	query := strings.TrimSpace(req.Query)
	language := req.Language
	if language == "" {
		language = "en"
	}

	tag, err := ParseModelTag(string(req.Model))
	if err != nil {
		return d.fail(ts, string(req.Model), technicalDifficulties, err)
	}
	if query == "" {
		return d.fail(ts, string(tag), technicalDifficulties, errors.New("query is required"))
	}

	flags := Classify(query)
	augmentation, err := d.augmenter.Augment(ctx, query, flags, req.Portfolio)
	if err != nil {
		return d.fail(ts, string(tag), technicalDifficulties, err)
	}
	prompt := query + augmentation

	switch {
	case tag == ModelRAG:
		return d.retrieve(ctx, ts, string(ModelRAG), query, augmentation)
	case tag == ModelGeneral:
		return d.generate(ctx, ts, string(ModelGeneral), language, generalPersona, prompt,
			d.models.GeminiPro, d.models.GeminiFlash)
	case tag == ModelAuto && IsAdviceQuery(query):
		return d.retrieve(ctx, ts, string(SelectModel(query))+"-rag", query, augmentation)
	}

	if tag == ModelAuto {
		tag = SelectModel(query)
	}
	d.log.Debug("dispatching", zap.String("model", string(tag)), zap.Any("flags", flags))

	switch tag {
	case ModelGeminiPro:
		return d.generate(ctx, ts, string(tag), language, advisorPersona, prompt,
			d.models.GeminiPro, d.models.GeminiFlash)
	case ModelGeminiFlash:
		return d.generate(ctx, ts, string(tag), language, advisorPersona, prompt,
			d.models.GeminiFlash)
	default:
		return d.advise(ctx, ts, query, prompt, req.Portfolio)
	}
}

func (d *Dispatcher) retrieve(ctx context.Context, ts time.Time, model, query, augmentation string) Response {
	if d.retriever == nil {
		return d.fail(ts, model, retrievalFallback, errNotConfigured)
	}
	content, err := d.retriever.Answer(ctx, query, augmentation)
	if err != nil {
		return d.fail(ts, model, retrievalFallback, err)
	}
	return Response{Success: true, Content: content, Model: model, Timestamp: ts}
}

// generate tries each Gemini model in turn and returns the first answer.
func (d *Dispatcher) generate(ctx context.Context, ts time.Time, model, language, persona, prompt string, candidates ...string) Response {
	if d.gemini == nil {
		return d.fail(ts, model, geminiFallback(language), errNotConfigured)
	}

	system := geminiSystemPrompt(language, persona)
	var errs []error
	for _, m := range candidates {
		content, err := d.gemini.Complete(ctx, m, system, prompt)
		if err == nil {
			return Response{Success: true, Content: content, Model: model, Timestamp: ts}
		}
		d.log.Warn("gemini model failed", zap.String("model", m), zap.Error(err))
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return d.fail(ts, model, geminiFallback(language), errors.Join(errs...))
}

func (d *Dispatcher) advise(ctx context.Context, ts time.Time, query, prompt string, portfolio Portfolio) Response {
	model := string(ModelLlama)
	if d.groq == nil {
		return d.fail(ts, model, groqFallback, errNotConfigured)
	}

	detected := lang.Detect(query)
	system := groqPrompt(portfolio.JSON(), detected.Name)
	content, err := d.groq.Complete(ctx, d.models.Groq, system, prompt)
	if err != nil {
		return d.fail(ts, model, groqFallback, err)
	}
	return Response{Success: true, Content: content + scrapedDataFooter, Model: model, Timestamp: ts}
}

func (d *Dispatcher) fail(ts time.Time, model, content string, err error) Response {
	d.log.Error("response failed", zap.String("model", model), zap.Error(err))
	return Response{
		Success:   false,
		Content:   content,
		Model:     model,
		Timestamp: ts,
		Error:     err.Error(),
	}
}
