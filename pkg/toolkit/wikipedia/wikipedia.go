// Package wikipedia provides the Wikipedia tool, backed by the MediaWiki
// search API.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"reagent/pkg/tools/toolbox"
)

// DefaultBaseURL is the English Wikipedia API endpoint.
const DefaultBaseURL = "https://en.wikipedia.org/w/api.php"

const netTimeout = 10 * time.Second

// maxResults bounds how many articles make it into the observation.
const maxResults = 3

// Snippets come back with search-term highlighting markup.
var tagRe = regexp.MustCompile(`<[^>]*>`)

// Service queries the MediaWiki search API. BaseURL is overridable for tests.
type Service struct {
	BaseURL string
	Client  *http.Client
}

// New creates a Service against English Wikipedia.
func New() *Service {
	return &Service{BaseURL: DefaultBaseURL}
}

// Tool returns the Wikipedia tool.
func (s *Service) Tool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "Wikipedia",
		Description: "Searches Wikipedia for factual information. Input should be a topic or question.",
		Timeout:     netTimeout,
		Handler:     s.handle,
	}
}

// Wire shape of the action=query list=search response, reduced to the
// fields used.
type apiResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

func (s *Service) handle(ctx context.Context, topic string) (string, error) {
	if topic == "" {
		return "", fmt.Errorf("wikipedia: topic is required")
	}

	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {topic},
		"srlimit":  {fmt.Sprint(maxResults)},
		"format":   {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("wikipedia: build request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia: search %q: status %d", topic, resp.StatusCode)
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("wikipedia: decode response: %w", err)
	}

	if len(data.Query.Search) == 0 {
		return fmt.Sprintf("No Wikipedia articles found for %q", topic), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Wikipedia results for %q:\n", topic)
	for i, hit := range data.Query.Search {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, hit.Title, cleanSnippet(hit.Snippet))
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func cleanSnippet(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&amp;", "&")

	return strings.Join(strings.Fields(s), " ")
}
