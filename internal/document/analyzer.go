package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/josinaldojr/finwise-advisor/internal/market"
	"github.com/josinaldojr/finwise-advisor/internal/risk"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxPromptChars caps how much extracted text goes into the prompt.
const maxPromptChars = 30000

var (
	ErrModelUnavailable = errors.New("document analysis model is not configured")
	ErrAnalysisFailed   = errors.New("document analysis failed")
)

// Model generates a JSON reply, optionally reading an inline file.
type Model interface {
	CompleteJSON(ctx context.Context, model, prompt string, data []byte, mimeType string) (string, error)
}

type SuggestionType string

const (
	SuggestionDebtReduction SuggestionType = "debt-reduction"
	SuggestionStocks        SuggestionType = "stocks"
	SuggestionGold          SuggestionType = "gold"
	SuggestionTaxSaving     SuggestionType = "tax-saving"
)

type Suggestion struct {
	Type        SuggestionType `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Instruments []market.Stock `json:"instruments"`
	Icon        string         `json:"icon"`
}

type Analysis struct {
	FileName         string       `json:"fileName"`
	Summary          string       `json:"summary"`
	Income           string       `json:"income"`
	Expenses         string       `json:"expenses"`
	Debts            string       `json:"debts"`
	Investments      string       `json:"investments"`
	SavingsRate      string       `json:"savingsRate"`
	RiskLevel        risk.Level   `json:"riskLevel"`
	FinancialContext string       `json:"financialContext,omitempty"`
	Suggestions      []Suggestion `json:"suggestions"`
}

type Analyzer struct {
	model     Model
	provider  market.Provider
	modelName string
	log       *zap.Logger
}

// NewAnalyzer builds an analyzer; a nil model makes every analysis fail with
// ErrModelUnavailable.
func NewAnalyzer(model Model, provider market.Provider, modelName string, log *zap.Logger) *Analyzer {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &Analyzer{
		model:     model,
		provider:  provider,
		modelName: modelName,
		log:       log.Named("document"),
	}
}

// Analyze extracts the upload, asks the model for a structured reading and
// attaches investment suggestions derived from it.
func (a *Analyzer) Analyze(ctx context.Context, name string, data []byte) (Analysis, error) {
	doc, err := Extract(name, data)
	if err != nil {
		return Analysis{}, err
	}
	if a.model == nil {
		return Analysis{}, ErrModelUnavailable
	}

	a.log.Info("analyzing document",
		zap.String("name", name),
		zap.String("kind", string(doc.Kind)),
		zap.String("mime", doc.MIMEType),
		zap.Bool("inline", doc.Inline()),
	)

	var inline []byte
	if doc.Inline() {
		inline = doc.Data
	}
	reply, err := a.model.CompleteJSON(ctx, a.modelName, analysisPrompt(doc), inline, doc.MIMEType)
	if err != nil {
		a.log.Error("analysis generation failed", zap.Error(err))
		return Analysis{}, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	analysis, ok := parseAnalysis(reply)
	fc := analysis.FinancialContext
	if fc == "" {
		fc = analysis.Summary
	}
	if !ok {
		a.log.Warn("model reply is not JSON, using generic analysis")
		analysis = fallbackAnalysis(reply)
		fc = reply
	}

	analysis.FileName = name
	analysis.Suggestions = a.Suggest(ctx, fc)
	return analysis, nil
}

// Suggest maps a financial context onto suggestion cards. Market lookups run
// concurrently and fall back to the static catalog.
func (a *Analyzer) Suggest(ctx context.Context, financialContext string) []Suggestion {
	lc := strings.ToLower(financialContext)
	wantStocks := containsAny(lc, "high income", "surplus")
	wantGold := containsAny(lc, "savings", "investment")

	var gainers, gold []market.Stock
	g, gctx := errgroup.WithContext(ctx)
	if wantStocks {
		g.Go(func() error {
			gainers = a.topGainers(gctx)
			return nil
		})
	}
	if wantGold {
		g.Go(func() error {
			gold = a.goldETFs(gctx)
			return nil
		})
	}
	_ = g.Wait()

	var out []Suggestion
	if containsAny(lc, "debt", "loan") {
		out = append(out, Suggestion{
			Type:        SuggestionDebtReduction,
			Title:       "💡 Debt Reduction Strategy",
			Description: "Focus on paying off high-interest debts first",
			Instruments: []market.Stock{},
			Icon:        "🎯",
		})
	}
	if wantStocks {
		out = append(out, Suggestion{
			Type:        SuggestionStocks,
			Title:       "📈 Top Performing Indian Stocks",
			Description: "Consider these trending stocks for wealth building",
			Instruments: lo.Slice(gainers, 0, 3),
			Icon:        "🚀",
		})
	}
	if wantGold {
		out = append(out, Suggestion{
			Type:        SuggestionGold,
			Title:       "🏆 Gold ETFs for Portfolio Diversification",
			Description: "Hedge against inflation with gold investments",
			Instruments: lo.Slice(gold, 0, 2),
			Icon:        "✨",
		})
	}
	return append(out, Suggestion{
		Type:        SuggestionTaxSaving,
		Title:       "🧾 Tax-Saving Investment Options",
		Description: "ELSS, PPF, and other 80C instruments",
		Instruments: []market.Stock{},
		Icon:        "💼",
	})
}

func (a *Analyzer) topGainers(ctx context.Context) []market.Stock {
	symbols := lo.Slice(append(append([]string(nil), market.LargeCap...), market.MidCap...), 0, 20)
	stocks, err := a.provider.Stocks(ctx, symbols)
	if err == nil {
		if top := market.TopGainers(stocks, 10); len(top) > 0 {
			return top
		}
	}
	a.log.Warn("top gainers unavailable, using catalog", zap.Error(err))
	return market.TopGainers(market.IndianStocks(), 0)
}

func (a *Analyzer) goldETFs(ctx context.Context) []market.Stock {
	stocks, err := a.provider.Stocks(ctx, market.GoldETFSymbols)
	if err == nil && len(stocks) > 0 {
		return stocks
	}
	a.log.Warn("gold etfs unavailable, using catalog", zap.Error(err))
	return market.GoldETFs()
}

func analysisPrompt(doc Extracted) string {
	content := doc.Text
	if doc.Inline() {
		content = fmt.Sprintf("The attached %s file %q.", doc.MIMEType, doc.Name)
	} else if r := []rune(content); len(r) > maxPromptChars {
		content = string(r[:maxPromptChars])
	}

	return fmt.Sprintf(`You are an expert financial advisor analyzing a financial document. Please provide a detailed analysis of the following financial document content.

Document content: %s

Please analyze and provide the following information in JSON format:
{
  "summary": "Brief overview of the financial situation",
  "income": "Monthly/annual income details",
  "expenses": "Major expense categories and amounts",
  "debts": "Outstanding loans and liabilities",
  "investments": "Current investment portfolio",
  "savingsRate": "Estimated savings rate percentage",
  "riskLevel": "low|medium|high",
  "financialContext": "Key financial insights for investment suggestions"
}

Focus on Indian financial context and provide specific numerical insights where possible.`, content)
}

// flexString accepts any JSON value; non-strings keep their JSON text.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*f = flexString(buf.String())
	return nil
}

type rawAnalysis struct {
	Summary          flexString `json:"summary"`
	Income           flexString `json:"income"`
	Expenses         flexString `json:"expenses"`
	Debts            flexString `json:"debts"`
	Investments      flexString `json:"investments"`
	SavingsRate      flexString `json:"savingsRate"`
	RiskLevel        flexString `json:"riskLevel"`
	FinancialContext flexString `json:"financialContext"`
}

func parseAnalysis(reply string) (Analysis, bool) {
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(stripFences(reply)), &raw); err != nil {
		return Analysis{}, false
	}

	level, ok := risk.ParseLevel(string(raw.RiskLevel))
	if !ok {
		level = risk.LevelMedium
	}
	return Analysis{
		Summary:          string(raw.Summary),
		Income:           string(raw.Income),
		Expenses:         string(raw.Expenses),
		Debts:            string(raw.Debts),
		Investments:      string(raw.Investments),
		SavingsRate:      string(raw.SavingsRate),
		RiskLevel:        level,
		FinancialContext: string(raw.FinancialContext),
	}, true
}

func fallbackAnalysis(reply string) Analysis {
	lc := strings.ToLower(reply)
	level := risk.LevelMedium
	switch {
	case strings.Contains(lc, "high risk"):
		level = risk.LevelHigh
	case strings.Contains(lc, "low risk"):
		level = risk.LevelLow
	}
	return Analysis{
		Summary:     "Document analyzed successfully with financial insights extracted.",
		Income:      "Income details identified from document",
		Expenses:    "Expense patterns analyzed",
		Debts:       "Debt obligations reviewed",
		Investments: "Investment portfolio assessed",
		SavingsRate: "Savings rate calculated",
		RiskLevel:   level,
	}
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func containsAny(s string, subs ...string) bool {
	return lo.ContainsBy(subs, func(sub string) bool { return strings.Contains(s, sub) })
}
