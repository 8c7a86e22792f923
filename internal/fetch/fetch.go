// Package fetch pulls documentation pages over HTTP and reduces their HTML
// to plain text. Ingestion feeds the extracted text to fragment
// classification, so the goal here is clean body text with navigation
// chrome stripped out.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the crawler to documentation hosts.
	DefaultUserAgent = "Mozilla/5.0 (compatible; ContextEngine/1.0)"
)

// Result holds the raw and processed content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	Text        string
	ContentType string
	StatusCode  int
}

// Error is a fetch failure tied to the URL that caused it.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func fetchErr(urlStr, message string, cause error) *Error {
	return &Error{URL: urlStr, Message: message, Cause: cause}
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// URL retrieves HTML content from a URL. A non-200 status returns both the
// Result (so callers can inspect the status and any error page body) and an
// Error.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fetchErr(urlStr, "invalid URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fetchErr(urlStr, "failed to create request", err)
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: opts.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fetchErr(urlStr, "HTTP request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fetchErr(urlStr, "failed to read response body", err)
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return result, fetchErr(urlStr, fmt.Sprintf("HTTP status %d", resp.StatusCode), nil)
	}
	return result, nil
}

// Selectors removed from every page before text extraction. Doc generators
// differ, but this covers the usual chrome.
const baseNoiseSelector = "nav, footer, header, script, style, noscript, .ad, .sidebar, .toc, .cookie-banner, .popup"

// ExtractMainText parses HTML and returns the main body text. Noise elements
// are removed first, then contentSelectors are tried in order; if none match,
// the whole body is used.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(baseNoiseSelector).Remove()
	if sel := strings.Join(noiseSelectors, ", "); sel != "" {
		doc.Find(sel).Remove()
	}

	main := doc.Find("body")
	for _, selector := range contentSelectors {
		if found := doc.Find(selector); found.Length() > 0 {
			main = found.First()
			break
		}
	}

	return cleanWhitespace(main.Text()), nil
}

// DocSiteSelectors returns content selectors for rendered documentation
// pages, most specific first. "article.doc" is the Antora content root,
// the rest cover common Markdown site generators.
func DocSiteSelectors() []string {
	return []string{
		"article.doc",
		"main article",
		"div#content",
		"div.content",
		"main",
		"article",
	}
}

// DocSiteNoiseSelectors returns selectors for per-site navigation chrome
// not covered by the base noise set.
func DocSiteNoiseSelectors() []string {
	return []string{
		".nav-container",
		".navbar",
		".breadcrumbs",
		".page-versions",
		".edit-this-page",
		".pagination",
	}
}

var multiBlankLines = regexp.MustCompile(`\n{3,}`)

// cleanWhitespace trims every line and collapses runs of blank lines so the
// extracted text tokenizes predictably.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	joined := strings.Join(lines, "\n")
	return strings.TrimSpace(multiBlankLines.ReplaceAllString(joined, "\n\n"))
}
