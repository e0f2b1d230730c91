package fetcher

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"

	"github.com/sibyl-nlp/sibyl/repository"
)

// PageFetcher crawls ordinary HTML pages and extracts their visible
// text. It is deliberately generic; site-specific fetchers can wrap it
// or implement Fetcher directly.
type PageFetcher struct{}

// NewPageFetcher creates a generic HTML page fetcher.
func NewPageFetcher() *PageFetcher {
	return &PageFetcher{}
}

func fetchLogf(format string, a ...any) {
	log.Printf("[fetcher] "+format, a...)
}

// Fetch crawls from options.StartURL, saving each page's readable text
// to options.Sink until the page limit is reached.
func (f *PageFetcher) Fetch(options Options) error {
	if options.StartURL == "" {
		return fmt.Errorf("fetch: no start URL")
	}
	if options.Sink == nil {
		return fmt.Errorf("fetch: no document sink")
	}

	c := colly.NewCollector(
		colly.AllowedDomains(options.AllowedDomains...),
		colly.MaxDepth(options.MaxDepth),
		colly.Async(options.Async),
	)

	if options.Async && options.Parallelism > 1 {
		if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: options.Parallelism}); err != nil {
			return fmt.Errorf("fetch: set parallelism: %w", err)
		}
	}

	var (
		pages    int64
		mu       sync.Mutex
		sinkErr  error
		crawlErr error
	)

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		if options.PageLimit > 0 && atomic.LoadInt64(&pages) >= int64(options.PageLimit) {
			return
		}
		e.Request.Visit(e.Attr("href"))
	})

	c.OnHTML("html", func(e *colly.HTMLElement) {
		n := atomic.AddInt64(&pages, 1)
		if options.PageLimit > 0 && n > int64(options.PageLimit) {
			return
		}

		title := strings.TrimSpace(e.DOM.Find("title").First().Text())
		body := pageText(e.DOM)
		if body == "" {
			return
		}

		doc := &repository.Document{
			Title:    title,
			Body:     body,
			URI:      e.Request.URL.String(),
			Source:   options.Source,
			Language: options.Language,
		}

		if err := options.Sink.SaveDocument(doc); err != nil {
			mu.Lock()
			if sinkErr == nil {
				sinkErr = err
			}
			mu.Unlock()
			return
		}
		fetchLogf("saved %s (%d words of text)", doc.URI, len(strings.Fields(body)))
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchLogf("request %s failed: %v", r.Request.URL, err)
		mu.Lock()
		if crawlErr == nil {
			crawlErr = err
		}
		mu.Unlock()
	})

	if err := c.Visit(options.StartURL); err != nil {
		return fmt.Errorf("fetch %s: %w", options.StartURL, err)
	}
	if options.Async {
		c.Wait()
	}

	if sinkErr != nil {
		return fmt.Errorf("fetch %s: save document: %w", options.StartURL, sinkErr)
	}
	if atomic.LoadInt64(&pages) == 0 && crawlErr != nil {
		return fmt.Errorf("fetch %s: %w", options.StartURL, crawlErr)
	}
	return nil
}

// pageText extracts the readable text of a page: scripts, styles and
// chrome removed, whitespace collapsed.
func pageText(sel *goquery.Selection) string {
	content := sel.Clone()
	content.Find("script, style, noscript, nav, header, footer").Remove()

	body := content.Find("body")
	if body.Length() == 0 {
		body = content
	}

	return strings.Join(strings.Fields(body.Text()), " ")
}
