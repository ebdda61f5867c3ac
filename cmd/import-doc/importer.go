package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/josinaldojr/finwise-advisor/internal/document"
	"github.com/josinaldojr/finwise-advisor/internal/rag"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// maxPageBytes caps a crawled page.
const maxPageBytes = 5 << 20

var importExts = []string{".md", ".txt", ".html", ".htm", ".pdf"}

// ingester stores one document and reports how many chunks it produced.
type ingester interface {
	Ingest(ctx context.Context, doc rag.Document) (int, error)
}

type importer struct {
	store  ingester
	client *http.Client
	now    func() time.Time
	log    *zap.Logger
}

func newImporter(store ingester, client *http.Client, log *zap.Logger) *importer {
	return &importer{store: store, client: client, now: time.Now, log: log.Named("import")}
}

// FromFiles walks root and imports every supported file.
func (i *importer) FromFiles(ctx context.Context, root string) (int, error) {
	i.log.Info("importing local files", zap.String("root", root))

	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !lo.Contains(importExts, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := readFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if content == "" {
			i.log.Debug("skipping empty file", zap.String("path", path))
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		n, err := i.store.Ingest(ctx, rag.Document{
			ID:        "file:" + filepath.ToSlash(rel),
			Title:     filenameToTitle(path),
			Content:   content,
			CreatedAt: i.now(),
		})
		total += n
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}
		i.log.Info("file imported", zap.String("path", rel), zap.Int("chunks", n))
		return nil
	})
	return total, err
}

// FromURL crawls same-host pages breadth first, up to maxPages fetches.
// Failing pages are logged and skipped.
func (i *importer) FromURL(ctx context.Context, baseURL string, maxPages int) (int, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return 0, fmt.Errorf("invalid base url %q", baseURL)
	}
	i.log.Info("crawling", zap.String("base", base.String()), zap.Int("maxPages", maxPages))

	visited := make(map[string]bool)
	queue := []string{base.String()}
	total, pages := 0, 0

	for len(queue) > 0 && pages < maxPages {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		pages++

		page, err := i.fetch(ctx, current)
		if err != nil {
			i.log.Warn("fetch failed", zap.String("url", current), zap.Error(err))
			continue
		}

		if text := rag.SanitizeUTF8(document.ExtractMainText(page)); text != "" {
			n, err := i.store.Ingest(ctx, rag.Document{
				ID:        current,
				Title:     urlToTitle(current, base),
				Content:   text,
				SourceURL: current,
				CreatedAt: i.now(),
			})
			total += n
			if err != nil {
				i.log.Warn("ingest failed", zap.String("url", current), zap.Error(err))
			} else {
				i.log.Info("page imported", zap.String("url", current), zap.Int("chunks", n))
			}
		}

		for _, link := range document.ExtractLinks(page, base) {
			if !visited[link] {
				queue = append(queue, link)
			}
		}
	}
	return total, nil
}

func (i *importer) fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return document.PDFText(data)
	case ".html", ".htm":
		return rag.SanitizeUTF8(document.ExtractMainText(string(data))), nil
	default:
		return rag.SanitizeUTF8(strings.TrimSpace(string(data))), nil
	}
}

func filenameToTitle(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(base))
}

func urlToTitle(raw string, base *url.URL) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.Path == base.Path || u.Path == base.Path+"/" || strings.Trim(u.Path, "/") == "" {
		return "Overview"
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := strings.SplitN(parts[len(parts)-1], ".", 2)[0]
	return strings.TrimSpace(strings.ReplaceAll(last, "-", " "))
}
