package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/josinaldojr/finwise-advisor/internal/config"
	"github.com/josinaldojr/finwise-advisor/internal/db"
	"github.com/josinaldojr/finwise-advisor/internal/llm"
	"github.com/josinaldojr/finwise-advisor/internal/logging"
	"github.com/josinaldojr/finwise-advisor/internal/rag"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	fromFiles bool
	path      string
	fromURL   bool
	baseURL   string
	maxPages  int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "import-doc",
		Short: "Import advisory documents into the retrieval store",
		Long: `Reads local .md, .txt, .html and .pdf files or crawls a site, splits the text
into chunks, embeds them with Gemini and stores them in Postgres.`,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.fromFiles && !opts.fromURL {
				return errors.New("use at least one mode: --from-files or --from-url")
			}
			if opts.fromFiles && opts.path == "" {
				return errors.New("--path is required with --from-files")
			}
			if opts.fromURL && opts.baseURL == "" {
				return errors.New("--base-url is required with --from-url")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.fromFiles, "from-files", false, "import local files (.md/.txt/.html/.pdf)")
	f.StringVar(&opts.path, "path", "", "root directory for local files")
	f.BoolVar(&opts.fromURL, "from-url", false, "import through an HTTP crawl")
	f.StringVar(&opts.baseURL, "base-url", "", "crawl start URL; links outside its host are ignored")
	f.IntVar(&opts.maxPages, "max-pages", 50, "page limit for the HTTP crawl")

	return cmd
}

func run(ctx context.Context, opts options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if !cfg.UsePostgres() {
		return errors.New("DATABASE_URL is required")
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}

	gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiEmbeddingModel, log)
	if err != nil {
		return fmt.Errorf("init gemini: %w", err)
	}

	svc := rag.NewService(rag.NewPgRepository(pool), gemini, gemini, log)
	imp := newImporter(svc, &http.Client{Timeout: 30 * time.Second}, log)

	total := 0
	if opts.fromFiles {
		n, err := imp.FromFiles(ctx, opts.path)
		total += n
		if err != nil {
			return fmt.Errorf("import files: %w", err)
		}
	}
	if opts.fromURL {
		n, err := imp.FromURL(ctx, opts.baseURL, opts.maxPages)
		total += n
		if err != nil {
			return fmt.Errorf("import from http: %w", err)
		}
	}

	log.Info("import finished", zap.Int("chunks", total))
	return nil
}
