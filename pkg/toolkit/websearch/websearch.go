// Package websearch provides the WebSearch tool, backed by the DuckDuckGo
// HTML endpoint. It needs no API key; results are scraped from the result
// list markup.
package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"reagent/pkg/tools/toolbox"
)

// DefaultBaseURL is the keyless DuckDuckGo HTML endpoint.
const DefaultBaseURL = "https://html.duckduckgo.com/html/"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

const netTimeout = 15 * time.Second

// maxResults bounds how many hits make it into the observation.
const maxResults = 5

// Result is one search hit.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Service performs searches. BaseURL is overridable for tests.
type Service struct {
	BaseURL string
	Client  *http.Client
}

// New creates a Service against the public endpoint.
func New() *Service {
	return &Service{BaseURL: DefaultBaseURL}
}

// Tool returns the WebSearch tool.
func (s *Service) Tool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "WebSearch",
		Description: "Searches the web for current information. Input should be a search query.",
		Timeout:     netTimeout,
		Handler:     s.handle,
	}
}

func (s *Service) handle(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("websearch: query is required")
	}

	results, err := s.Search(ctx, query)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Search results for %q:\n", query)
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s", i+1, r.Title)
		if r.URL != "" {
			fmt.Fprintf(&b, " (%s)", r.URL)
		}
		if r.Snippet != "" {
			fmt.Fprintf(&b, ": %s", r.Snippet)
		}
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// Search fetches and parses the first page of results.
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	reqURL := s.BaseURL + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("websearch: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("websearch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("websearch: search %q: status %d", query, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("websearch: parse results: %w", err)
	}

	return parseResults(doc), nil
}

// parseResults collects result__a titles and result__snippet texts in
// document order, pairing each snippet with the preceding title.
func parseResults(doc *html.Node) []Result {
	var results []Result

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "result__a"):
				if len(results) < maxResults {
					results = append(results, Result{
						Title: nodeText(n),
						URL:   resultURL(attr(n, "href")),
					})
				}
			case hasClass(n, "result__snippet"):
				if len(results) > 0 && results[len(results)-1].Snippet == "" {
					results[len(results)-1].Snippet = nodeText(n)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return results
}

// resultURL unwraps DuckDuckGo's redirect links ("//duckduckgo.com/l/?uddg=<url>")
// to the target URL; anything else passes through unchanged.
func resultURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}

	if target := u.Query().Get("uddg"); target != "" {
		return target
	}

	return href
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}

		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}

	return false
}

func nodeText(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(sb.String()), " ")
}
