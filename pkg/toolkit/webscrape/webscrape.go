// Package webscrape provides the WebScraper tool. It fetches a page and
// extracts its visible text, skipping script and style subtrees, so the model
// sees prose instead of markup.
package webscrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"reagent/pkg/tools/toolbox"
)

// Pages identify themselves to servers that reject blank clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

const netTimeout = 15 * time.Second

// maxChars caps the observation so a long article does not flood the prompt.
const maxChars = 500

// Scraper fetches and strips pages. The zero value uses http.DefaultClient.
type Scraper struct {
	Client *http.Client
}

// New creates a Scraper.
func New() *Scraper {
	return &Scraper{}
}

// Tool returns the WebScraper tool.
func (s *Scraper) Tool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "WebScraper",
		Description: "Fetches a web page and returns its text content. Input should be a URL.",
		Timeout:     netTimeout,
		Handler:     s.handle,
	}
}

func (s *Scraper) handle(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("webscrape: url is required")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("webscrape: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("webscrape: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("webscrape: fetch %s: status %d", rawURL, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("webscrape: parse html: %w", err)
	}

	text := Extract(doc)
	if text == "" {
		return "", fmt.Errorf("webscrape: no text content at %s", rawURL)
	}

	return Truncate(text, maxChars), nil
}

// Extract walks the parsed document collecting text nodes, skipping script
// and style subtrees, and collapses runs of whitespace to single spaces.
func Extract(doc *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}

		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}

// Truncate limits s to max runes, appending "..." when it was cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max]) + "..."
}
