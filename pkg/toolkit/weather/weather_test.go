package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"current_condition": [{
		"temp_C": "18",
		"temp_F": "64",
		"weatherDesc": [{"value": "Partly cloudy"}],
		"humidity": "72",
		"windspeedKmph": "13"
	}]
}`

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Service{BaseURL: srv.URL}
}

func TestHandleSuccess(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/London", r.URL.Path)
		assert.Equal(t, "j1", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(sampleResponse))
	})

	got, err := s.handle(context.Background(), "London")

	require.NoError(t, err)
	assert.Contains(t, got, "Weather for London:")
	assert.Contains(t, got, "18°C / 64°F")
	assert.Contains(t, got, "Partly cloudy")
	assert.Contains(t, got, "72%")
	assert.Contains(t, got, "13 km/h")
}

func TestHandleEscapesLocation(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/New York", r.URL.Path)
		_, _ = w.Write([]byte(sampleResponse))
	})

	_, err := s.handle(context.Background(), "New York")

	require.NoError(t, err)
}

func TestHandleNon200(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := s.handle(context.Background(), "Nowhereville")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not fetch weather for Nowhereville")
}

func TestHandleSchemaDeviation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"empty conditions", `{"current_condition": []}`},
		{"missing field", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := s.handle(context.Background(), "London")
			assert.Error(t, err)
		})
	}
}

func TestHandleEmptyLocation(t *testing.T) {
	s := New()

	_, err := s.handle(context.Background(), "")

	assert.Error(t, err)
}

func TestToolMetadata(t *testing.T) {
	tool := New().Tool()

	assert.Equal(t, "Weather", tool.Name)
	assert.Equal(t, netTimeout, tool.Timeout)
}
