package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alireza013/Mood-Playlist/internal/mood"
	"github.com/Alireza013/Mood-Playlist/internal/recommend"
	"github.com/Alireza013/Mood-Playlist/internal/service"
	"github.com/Alireza013/Mood-Playlist/internal/testutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	path := testutil.WriteCatalogFile(t, t.TempDir(), []testutil.CatalogItem{
		{Title: "Sunrise", Creator: "A", Type: "song", Mood: "joy", Language: "en"},
		{Title: "Golden Hour", Creator: "B", Type: "song", Mood: "joy", Language: "en"},
		{Title: "Rainfall", Creator: "C", Type: "song", Mood: "sadness", Language: "en"},
		{Title: "Quiet Room", Creator: "D", Type: "movie", Mood: "neutral", Language: "fa"},
	})

	svc, err := service.NewBuilder().
		WithModels(false).
		WithCatalogPath(path).
		WithRandSeed(7).
		Build()
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	return newServerWith(svc, Config{
		CORSOrigin: "*",
		MaxBodyKB:  64,
		TimeoutSec: 30,
	})
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.healthHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, resp.Time)
}

func TestHealthHandlerMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	w := httptest.NewRecorder()
	srv.healthHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestPredictHandler(t *testing.T) {
	srv := newTestServer(t)

	body := `{"text": "I feel so happy and grateful today"}`
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.predictHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "en", resp.Language)
	assert.Equal(t, "joy", resp.Mood)
	assert.Equal(t, "lexicon", resp.Source)
	require.NotEmpty(t, resp.Recommendations)
	for _, rec := range resp.Recommendations {
		assert.Equal(t, "joy", string(rec.Mood))
	}
}

func TestPredictHandlerPersian(t *testing.T) {
	srv := newTestServer(t)

	body := `{"text": "امروز غمگین هستم"}`
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.predictHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fa", resp.Language)
	assert.Equal(t, "sadness", resp.Mood)
}

func TestPredictHandlerFilters(t *testing.T) {
	srv := newTestServer(t)

	body := `{"text": "happy", "media_type": "song", "limit": 1}`
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.predictHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recommendations, 1)
}

func TestPredictHandlerEmptyText(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{`{}`, `{"text": "   "}`} {
		req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.predictHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp PredictResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "neutral", resp.Mood)
		assert.Equal(t, "fallback", resp.Source)
	}
}

func TestPredictHandlerUnknownMediaType(t *testing.T) {
	srv := newTestServer(t)

	body := `{"text": "happy", "media_type": "podcast"}`
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.predictHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Recommendations)
}

func TestPredictHandlerFormBody(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{}
	form.Set("text", "I am so happy and full of joy today")
	form.Set("media_type", "song")
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.predictHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "joy", resp.Mood)
	for _, rec := range resp.Recommendations {
		assert.Equal(t, "song", string(rec.Type))
	}
}

func TestPredictHandlerInvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	srv.predictHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictHandlerBodyTooLarge(t *testing.T) {
	srv := newTestServer(t)
	srv.maxBodyKB = 1

	big := strings.Repeat("x", 2*1024)
	body := `{"text": "` + big + `"}`
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.predictHandler(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

// stallService blocks analysis until the request context expires.
type stallService struct{}

func (stallService) AnalyzeAndRecommend(ctx context.Context, _ service.Request) (service.Result, error) {
	<-ctx.Done()
	return service.Result{}, ctx.Err()
}
func (stallService) Stats() recommend.Stats          { return recommend.Stats{} }
func (stallService) CatalogSize() int                { return 0 }
func (stallService) ModelActive(mood.Language) bool  { return false }
func (stallService) ModelLanguages() []mood.Language { return nil }
func (stallService) Close()                          {}

func TestPredictHandlerTimeout(t *testing.T) {
	srv := newServerWith(stallService{}, Config{MaxBodyKB: 64})
	srv.timeout = 20 * time.Millisecond

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"text": "happy"}`))
	w := httptest.NewRecorder()
	srv.predictHandler(w, req)

	require.Equal(t, http.StatusGatewayTimeout, w.Code)

	var resp PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "timed out")
}

func TestPredictHandlerMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/predict", nil)
	w := httptest.NewRecorder()
	srv.predictHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestStatsHandler(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	srv.statsHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.CatalogSize)
	assert.Equal(t, 2, resp.Moods["joy"])
	assert.Equal(t, 1, resp.Moods["sadness"])
	assert.Equal(t, 3, resp.Languages["en"])
	assert.Equal(t, 1, resp.Languages["fa"])
}

func TestModelsHandler(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	w := httptest.NewRecorder()
	srv.modelsHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ModelsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	for _, m := range resp.Models {
		assert.False(t, m.Active)
	}
}

func TestSetupRoutes(t *testing.T) {
	srv := newTestServer(t)

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	metricsResp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = metricsResp.Body.Close() }()
	assert.Equal(t, http.StatusOK, metricsResp.StatusCode)
}
