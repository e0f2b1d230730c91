// Package fetcher acquires reference corpus text from the web.
//
// A Fetcher crawls pages, extracts their readable text and hands the
// resulting documents to a repository (or any DocumentSink) from which
// dictionaries are later built.
package fetcher

import (
	"golang.org/x/text/language"

	"github.com/sibyl-nlp/sibyl/repository"
)

// DocumentSink receives fetched documents. repository.Repository
// satisfies it; tests supply in-memory sinks.
type DocumentSink interface {
	SaveDocument(d *repository.Document) error
}

// Options controls one crawl.
type Options struct {
	// StartURL is the crawl's departure point.
	StartURL string

	// AllowedDomains restricts link following. Empty allows any domain,
	// which is rarely what a corpus crawl wants.
	AllowedDomains []string

	// MaxDepth limits link-following depth: 1 fetches the start page
	// only, 0 leaves depth unlimited. Pair an unlimited depth with a
	// PageLimit unless the site is known to be tiny.
	MaxDepth int

	// PageLimit caps the number of pages saved. 0 = unlimited.
	PageLimit int

	// Async enables colly's asynchronous crawling.
	Async bool

	// Parallelism bounds concurrent requests when Async is set.
	Parallelism int

	// Language tags the fetched documents.
	Language language.Tag

	// Source names the corpus these documents belong to, e.g. "gutenberg".
	Source string

	// Sink receives every fetched document.
	Sink DocumentSink
}

// Fetcher turns web pages into corpus documents.
type Fetcher interface {
	Fetch(options Options) error
}
