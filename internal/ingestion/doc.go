package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/context-engine/internal/fetch"
)

// RawDocument is one fetched documentation page before classification.
type RawDocument struct {
	URL  string
	Text string
}

// IngestFromURL fetches one documentation page, extracts its main text, and
// returns a raw document ready for classification. If useBrowser is true
// and the plain HTTP fetch yields too little text, the page is re-rendered
// in a headless browser (JavaScript-heavy doc sites).
func IngestFromURL(ctx context.Context, urlStr string, useBrowser bool, verbose bool) (*RawDocument, error) {
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to fetch %s", urlStr), Cause: err}
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched %s: %d bytes", urlStr, len(result.HTML))
	}

	return extractDocument(ctx, urlStr, result.HTML, useBrowser, verbose)
}

// IngestFromURLCached behaves like IngestFromURL but routes the fetch through
// a cache-aware fetcher, so repeated runs over the same documentation site do
// not refetch unchanged pages.
func IngestFromURLCached(ctx context.Context, fetcher *fetch.CachedFetcher, urlStr string, useBrowser bool, verbose bool) (*RawDocument, error) {
	result, hit, err := fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to fetch %s", urlStr), Cause: err}
	}
	if verbose {
		if hit {
			log.Printf("[VERBOSE] Cache hit for %s: %d bytes", urlStr, len(result.HTML))
		} else {
			log.Printf("[VERBOSE] Fetched %s: %d bytes", urlStr, len(result.HTML))
		}
	}

	return extractDocument(ctx, urlStr, result.HTML, useBrowser, verbose)
}

func extractDocument(ctx context.Context, urlStr, html string, useBrowser, verbose bool) (*RawDocument, error) {
	text, err := fetch.ExtractMainText(html, fetch.DocSiteSelectors(), fetch.DocSiteNoiseSelectors()...)
	if err != nil {
		return nil, &Error{Message: "failed to extract page text", Cause: err}
	}

	if useBrowser && fetch.ShouldUseBrowser(text) {
		if verbose {
			log.Printf("[VERBOSE] Extracted text too short (%d chars), rendering with browser", len(text))
		}
		rendered, err := fetch.BrowserSimple(ctx, urlStr, verbose)
		if err != nil {
			return nil, &Error{Message: "browser rendering failed", Cause: err}
		}
		text, err = fetch.ExtractMainText(rendered, fetch.DocSiteSelectors(), fetch.DocSiteNoiseSelectors()...)
		if err != nil {
			return nil, &Error{Message: "failed to extract rendered page text", Cause: err}
		}
	}

	if text == "" {
		return nil, &Error{Message: fmt.Sprintf("no text content extracted from %s", urlStr)}
	}

	return &RawDocument{URL: urlStr, Text: text}, nil
}
