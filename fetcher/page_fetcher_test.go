package fetcher

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/sibyl-nlp/sibyl/repository"
)

// memorySink collects documents in memory for assertions.
type memorySink struct {
	mu   sync.Mutex
	docs []*repository.Document
	err  error
}

func (s *memorySink) SaveDocument(d *repository.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.docs = append(s.docs, d)
	return nil
}

func corpusSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><title>Index</title></head><body>
			<script>ignore_me();</script>
			<p>Sing muse of the wrath of Achilles.</p>
			<a href="/two">next</a>
		</body></html>`)
	})
	mux.HandleFunc("/two", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><title>Two</title></head><body>
			<p>Doom and glory await the hero.</p>
		</body></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPageFetcher_CrawlsAndExtractsText(t *testing.T) {
	srv := corpusSite(t)
	sink := &memorySink{}

	err := NewPageFetcher().Fetch(Options{
		StartURL: srv.URL + "/",
		MaxDepth: 2,
		Language: language.English,
		Source:   "test",
		Sink:     sink,
	})
	require.NoError(t, err)
	require.Len(t, sink.docs, 2)

	byTitle := make(map[string]*repository.Document)
	for _, d := range sink.docs {
		byTitle[d.Title] = d
	}

	index := byTitle["Index"]
	require.NotNil(t, index)
	assert.Contains(t, index.Body, "Sing muse of the wrath of Achilles.")
	assert.NotContains(t, index.Body, "ignore_me")
	assert.Equal(t, "test", index.Source)
	assert.Equal(t, language.English, index.Language)
	assert.Contains(t, index.URI, srv.URL)

	two := byTitle["Two"]
	require.NotNil(t, two)
	assert.Contains(t, two.Body, "Doom and glory await the hero.")
}

func TestPageFetcher_RespectsPageLimit(t *testing.T) {
	srv := corpusSite(t)
	sink := &memorySink{}

	err := NewPageFetcher().Fetch(Options{
		StartURL:  srv.URL + "/",
		MaxDepth:  2,
		PageLimit: 1,
		Source:    "test",
		Sink:      sink,
	})
	require.NoError(t, err)
	assert.Len(t, sink.docs, 1)
}

func TestPageFetcher_OptionValidation(t *testing.T) {
	f := NewPageFetcher()

	err := f.Fetch(Options{Sink: &memorySink{}})
	assert.Error(t, err, "missing start URL")

	err = f.Fetch(Options{StartURL: "http://example.invalid/"})
	assert.Error(t, err, "missing sink")
}

func TestPageFetcher_UnreachableSite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	err := NewPageFetcher().Fetch(Options{
		StartURL: srv.URL + "/",
		Source:   "test",
		Sink:     &memorySink{},
	})
	assert.Error(t, err)
}
