package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Alireza013/Mood-Playlist/internal/mood"
	"github.com/Alireza013/Mood-Playlist/internal/recommend"
	"github.com/Alireza013/Mood-Playlist/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// analysisService defines the methods the server needs from the service.
type analysisService interface {
	AnalyzeAndRecommend(ctx context.Context, req service.Request) (service.Result, error)
	Stats() recommend.Stats
	CatalogSize() int
	ModelActive(lang mood.Language) bool
	ModelLanguages() []mood.Language
	Close()
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	service    analysisService
	corsOrigin string
	maxBodyKB  int64
	timeout    time.Duration // per-request analysis deadline, 0 disables
}

// Config holds server configuration.
type Config struct {
	Host          string
	Port          int
	CORSOrigin    string
	MaxBodyKB     int64
	TimeoutSec    int
	ServiceConfig service.Config
}

// Response types for API endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

type PredictRequest struct {
	Text      string `json:"text"`
	MediaType string `json:"media_type,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Language  string `json:"language,omitempty"`
}

type PredictResponse struct {
	Success         bool                       `json:"success"`
	Language        string                     `json:"language,omitempty"`
	Label           string                     `json:"label,omitempty"`
	Mood            string                     `json:"mood,omitempty"`
	Source          string                     `json:"source,omitempty"`
	Recommendations []recommend.Recommendation `json:"recommendations,omitempty"`
	Error           string                     `json:"error,omitempty"`
}

type StatsResponse struct {
	CatalogSize int            `json:"catalog_size"`
	Moods       map[string]int `json:"moods"`
	Languages   map[string]int `json:"languages"`
}

type ModelInfo struct {
	Language string `json:"language"`
	Active   bool   `json:"active"`
}

type ModelsResponse struct {
	Models []ModelInfo `json:"models"`
	Count  int         `json:"count"`
}

// NewServer creates a new analysis server instance.
func NewServer(config Config) (*Server, error) {
	svc, err := service.NewBuilder().
		WithModelsDir(config.ServiceConfig.ModelsDir).
		WithCatalogPath(config.ServiceConfig.CatalogPath).
		WithModels(config.ServiceConfig.EnableModels).
		WithWorkers(config.ServiceConfig.Workers).
		WithRandSeed(config.ServiceConfig.RandSeed).
		Build()
	if err != nil {
		return nil, err
	}

	return &Server{
		service:    svc,
		corsOrigin: config.CORSOrigin,
		maxBodyKB:  config.MaxBodyKB,
		timeout:    time.Duration(config.TimeoutSec) * time.Second,
	}, nil
}

// newServerWith creates a server over an existing service, for tests.
func newServerWith(svc analysisService, config Config) *Server {
	return &Server{
		service:    svc,
		corsOrigin: config.CORSOrigin,
		maxBodyKB:  config.MaxBodyKB,
		timeout:    time.Duration(config.TimeoutSec) * time.Second,
	}
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.service != nil {
		s.service.Close()
	}
	return nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/predict", s.corsMiddleware(s.predictHandler))
	mux.HandleFunc("/stats", s.corsMiddleware(s.statsHandler))
	mux.HandleFunc("/models", s.corsMiddleware(s.modelsHandler))
	mux.Handle("/metrics", promhttp.Handler())
}
