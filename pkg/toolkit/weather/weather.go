// Package weather provides the Weather tool, backed by the wttr.in JSON API.
// No API key is required; any schema or status deviation surfaces as a tool
// error, which the executor converts into an observation.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reagent/pkg/tools/toolbox"
)

// DefaultBaseURL is the public wttr.in endpoint.
const DefaultBaseURL = "https://wttr.in"

// netTimeout bounds the whole lookup; the executor enforces it via context.
const netTimeout = 10 * time.Second

// Service fetches current conditions. BaseURL is overridable for tests.
type Service struct {
	BaseURL string
	Client  *http.Client
}

// New creates a Service against the public wttr.in endpoint.
func New() *Service {
	return &Service{BaseURL: DefaultBaseURL}
}

// Tool returns the Weather tool.
func (s *Service) Tool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "Weather",
		Description: "Gets current weather for a location. Input should be a city name.",
		Timeout:     netTimeout,
		Handler:     s.handle,
	}
}

// Wire shape of the wttr.in "format=j1" response, reduced to the fields used.
type apiResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		TempF       string `json:"temp_F"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
		Humidity      string `json:"humidity"`
		WindspeedKmph string `json:"windspeedKmph"`
	} `json:"current_condition"`
}

func (s *Service) handle(ctx context.Context, location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("weather: location is required")
	}

	reqURL := s.BaseURL + "/" + url.PathEscape(location) + "?format=j1"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("weather: build request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather: could not fetch weather for %s (status %d)", location, resp.StatusCode)
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("weather: decode response: %w", err)
	}

	if len(data.CurrentCondition) == 0 {
		return "", fmt.Errorf("weather: no current conditions for %s", location)
	}

	cur := data.CurrentCondition[0]

	desc := ""
	if len(cur.WeatherDesc) > 0 {
		desc = cur.WeatherDesc[0].Value
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Weather for %s:\n", location)
	fmt.Fprintf(&b, "- Temperature: %s°C / %s°F\n", cur.TempC, cur.TempF)
	fmt.Fprintf(&b, "- Condition: %s\n", desc)
	fmt.Fprintf(&b, "- Humidity: %s%%\n", cur.Humidity)
	fmt.Fprintf(&b, "- Wind Speed: %s km/h", cur.WindspeedKmph)

	return b.String(), nil
}
