//go:build unit

package analyzer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"happyhour-console/internal/domain/bar"
	"happyhour-console/internal/infra/analyzer"
	"happyhour-console/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*analyzer.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := analyzer.NewClient(config.AnalyzerConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return client, srv
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := analyzer.NewClient(config.AnalyzerConfig{})

	assert.ErrorIs(t, err, analyzer.ErrNotConfigured)
}

func TestAnalyzeDecodesDoubleEncodedPayload(t *testing.T) {
	analysis := bar.AnalysisResult{
		HappyHours: []bar.AnalysisSession{
			{
				Name:     "Patio Hour",
				Schedule: bar.AnalysisSchedule{Days: []string{"friday"}, StartTime: "16:00", EndTime: "18:00"},
				Deals:    []bar.AnalysisDeal{{Item: "Well drinks", Deal: "half off"}},
			},
		},
	}
	inner, err := json.Marshal(analysis)
	require.NoError(t, err)

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "menu.pdf", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		// the analysis field is a string holding JSON, not an object
		json.NewEncoder(w).Encode(map[string]any{
			"message":  "ok",
			"filename": header.Filename,
			"pages":    []string{"page one text"},
			"analysis": string(inner),
		})
	})

	result, err := client.Analyze(context.Background(), "menu.pdf", []byte("%PDF-1.4"))

	require.NoError(t, err)
	require.Len(t, result.HappyHours, 1)
	assert.Equal(t, "Patio Hour", result.HappyHours[0].Name)
	assert.Equal(t, []string{"friday"}, result.HappyHours[0].Schedule.Days)
	assert.Equal(t, "16:00", result.HappyHours[0].Schedule.StartTime)
}

func TestAnalyzeNon2xxIsUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusBadGateway)
	})

	_, err := client.Analyze(context.Background(), "menu.pdf", []byte("%PDF-1.4"))

	assert.ErrorIs(t, err, analyzer.ErrUpstreamFailed)
}

func TestAnalyzeGarbageAnalysisField(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message":  "ok",
			"analysis": "not json at all",
		})
	})

	_, err := client.Analyze(context.Background(), "menu.pdf", []byte("%PDF-1.4"))

	assert.ErrorIs(t, err, analyzer.ErrBadPayload)
}
