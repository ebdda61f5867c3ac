package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/josinaldojr/finwise-advisor/internal/rag"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingStore struct {
	mu   sync.Mutex
	docs []rag.Document
}

func (s *recordingStore) Ingest(_ context.Context, doc rag.Document) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return 1, nil
}

func (s *recordingStore) ids() []string {
	out := make([]string, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d.ID)
	}
	sort.Strings(out)
	return out
}

type constEmbedder struct{}

func (constEmbedder) Embed(context.Context, string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func Test_FromFiles(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	write := func(name, content string) {
		p := filepath.Join(root, name)
		req.NoError(os.MkdirAll(filepath.Dir(p), 0o755))
		req.NoError(os.WriteFile(p, []byte(content), 0o644))
	}
	write("retirement-plan.md", "# Retirement\nStart a SIP early.")
	write("guides/tax_saving.html", "<html><body><script>x()</script><p>Use ELSS for 80C.</p></body></html>")
	write("empty.txt", "   ")
	write("image.png", "not imported")

	store := &recordingStore{}
	n, err := newImporter(store, http.DefaultClient, zap.NewNop()).FromFiles(context.Background(), root)
	req.NoError(err)
	req.Equal(2, n)
	req.Equal([]string{"file:guides/tax_saving.html", "file:retirement-plan.md"}, store.ids())

	for _, d := range store.docs {
		if d.ID == "file:guides/tax_saving.html" {
			req.Equal("tax saving", d.Title)
			req.Equal("Use ELSS for 80C.", d.Content)
		}
	}
}

func Test_FromURL(t *testing.T) {
	req := require.New(t)

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/docs/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Investing basics</p>
			<a href="/docs/gold-etfs">Gold</a>
			<a href="/docs/missing">Missing</a>
			<a href="/docs/style.css">CSS</a>
			<a href="https://elsewhere.example/">Away</a></body></html>`)
	})
	mux.HandleFunc("/docs/gold-etfs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<p>Gold ETFs hedge inflation</p><a href="/docs/">Back</a>`)
	})
	mux.HandleFunc("/docs/missing", http.NotFound)

	store := &recordingStore{}
	n, err := newImporter(store, srv.Client(), zap.NewNop()).FromURL(context.Background(), srv.URL+"/docs/", 10)
	req.NoError(err)
	req.Equal(2, n)
	req.Equal([]string{srv.URL + "/docs/", srv.URL + "/docs/gold-etfs"}, store.ids())

	t.Run("should stop at the page limit", func(t *testing.T) {
		limited := &recordingStore{}
		n, err := newImporter(limited, srv.Client(), zap.NewNop()).FromURL(context.Background(), srv.URL+"/docs/", 1)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("should reject a base url without host", func(t *testing.T) {
		_, err := newImporter(&recordingStore{}, srv.Client(), zap.NewNop()).FromURL(context.Background(), "docs", 1)
		require.Error(t, err)
	})
}

func Test_Import_Into_Retrieval_Store(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	long := strings.Repeat("Diversify across equity and debt funds. ", 40)
	req.NoError(os.WriteFile(filepath.Join(root, "allocation.txt"), []byte(long+"\n\n"+long), 0o644))

	repo := rag.NewMemoryRepository()
	svc := rag.NewService(repo, constEmbedder{}, nil, zap.NewNop())

	n, err := newImporter(svc, http.DefaultClient, zap.NewNop()).FromFiles(context.Background(), root)
	req.NoError(err)
	req.Equal(2, n)

	count, err := repo.Count(context.Background())
	req.NoError(err)
	req.Equal(2, count)
}

func Test_Titles(t *testing.T) {
	base, _ := url.Parse("https://docs.example.com/guide/")
	require.Equal(t, "Overview", urlToTitle("https://docs.example.com/guide/", base))
	require.Equal(t, "mutual funds", urlToTitle("https://docs.example.com/guide/mutual-funds.html", base))
	require.Equal(t, "tax saving tips", filenameToTitle("/x/tax_saving-tips.md"))
}
