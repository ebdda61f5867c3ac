package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josinaldojr/finwise-advisor/internal/advisor"
	"github.com/josinaldojr/finwise-advisor/internal/chat"
	"github.com/josinaldojr/finwise-advisor/internal/config"
	"github.com/josinaldojr/finwise-advisor/internal/db"
	"github.com/josinaldojr/finwise-advisor/internal/document"
	apphttp "github.com/josinaldojr/finwise-advisor/internal/http"
	"github.com/josinaldojr/finwise-advisor/internal/invest"
	"github.com/josinaldojr/finwise-advisor/internal/llm"
	"github.com/josinaldojr/finwise-advisor/internal/logging"
	"github.com/josinaldojr/finwise-advisor/internal/market"
	"github.com/josinaldojr/finwise-advisor/internal/rag"
	"github.com/josinaldojr/finwise-advisor/internal/risk"
	"go.uber.org/zap"
)

const (
	seedTimeout     = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("api stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		ragRepo   rag.Repository = rag.NewMemoryRepository()
		riskStore risk.Store     = risk.NewMemoryStore()
	)
	if cfg.UsePostgres() {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}
		ragRepo = rag.NewPgRepository(pool)
		riskStore = risk.NewPgStore(pool)
		log.Info("using postgres storage")
	} else {
		log.Warn("DATABASE_URL not set, keeping data in memory")
	}

	var marketOpts []market.MockOption
	if !cfg.MarketSimulateLatency {
		marketOpts = append(marketOpts, market.WithoutLatency())
	}
	provider := market.NewMockProvider(log, marketOpts...)

	// Interfaces stay nil when a vendor is not configured.
	var (
		gemini    advisor.Completer
		groq      advisor.Completer
		retriever advisor.Retriever
		docModel  document.Model
	)

	geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiEmbeddingModel, log)
	switch {
	case err == nil:
		gemini, docModel = geminiClient, geminiClient

		ragService := rag.NewService(ragRepo, geminiClient, geminiClient, log,
			rag.WithModel(cfg.GeminiFlashModel),
			rag.WithTopK(cfg.RAGTopK),
		)
		seedCtx, cancel := context.WithTimeout(ctx, seedTimeout)
		if _, err := ragService.Initialize(seedCtx); err != nil {
			log.Error("retrieval store initialization failed", zap.Error(err))
		}
		cancel()
		retriever = ragService
	case errors.Is(err, llm.ErrMissingAPIKey):
		log.Warn("gemini disabled: no API key, retrieval and document analysis unavailable")
	default:
		return err
	}

	groqClient, err := llm.NewGroqClient(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.GroqModel, log)
	if err != nil {
		log.Warn("groq disabled", zap.Error(err))
	} else {
		groq = groqClient
	}

	dispatcher := advisor.NewDispatcher(advisor.NewAugmenter(provider, log), gemini, groq, retriever,
		advisor.Models{
			GeminiPro:   cfg.GeminiProModel,
			GeminiFlash: cfg.GeminiFlashModel,
			Groq:        cfg.GroqModel,
		}, log)

	h := apphttp.NewHandler(apphttp.Services{
		Dispatcher: dispatcher,
		Chat:       chat.NewService(dispatcher, log),
		Risk:       risk.NewService(riskStore, log),
		Invest:     invest.NewService(provider, log),
		Market:     provider,
		Documents:  document.NewAnalyzer(docModel, provider, cfg.GeminiFlashModel, log),
	}, log)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: apphttp.NewRouter(h, apphttp.RouterConfig{
			AllowedOrigins: cfg.Origins(),
			RequestTimeout: cfg.RequestTimeout,
		}, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("API listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
