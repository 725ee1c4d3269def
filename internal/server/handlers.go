package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Alireza013/Mood-Playlist/internal/service"
	"github.com/Alireza013/Mood-Playlist/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	writeJSON(w, http.StatusOK, response)
}

// predictHandler analyzes a text and returns the mood with recommendations.
func (s *Server) predictHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyKB*1024)

	req, err := decodePredictRequest(r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeErrorResponse(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Unrecognized media types mean "no filter" rather than an error.
	if req.MediaType != "song" && req.MediaType != "movie" {
		req.MediaType = ""
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.service.AnalyzeAndRecommend(ctx, service.Request{
		Text:      req.Text,
		MediaType: req.MediaType,
		Limit:     req.Limit,
		Language:  req.Language,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.writeErrorResponse(w, "Analysis timed out", http.StatusGatewayTimeout)
			return
		}
		// Cancellation means the client is gone.
		s.writeErrorResponse(w, "Request cancelled", http.StatusServiceUnavailable)
		return
	}

	predictRequestsTotal.WithLabelValues(string(result.Language), string(result.Prediction.Source)).Inc()
	predictDuration.WithLabelValues(string(result.Language)).Observe(time.Since(start).Seconds())
	predictTextLength.Observe(float64(len(req.Text)))
	recommendationsReturned.Observe(float64(len(result.Recommendations)))

	writeJSON(w, http.StatusOK, PredictResponse{
		Success:         true,
		Language:        string(result.Language),
		Label:           result.Prediction.Label,
		Mood:            string(result.Prediction.Mood),
		Source:          string(result.Prediction.Source),
		Recommendations: result.Recommendations,
	})
}

// statsHandler returns catalog distribution counts.
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats := s.service.Stats()
	moods := make(map[string]int, len(stats.Moods))
	for m, n := range stats.Moods {
		moods[string(m)] = n
	}
	languages := make(map[string]int, len(stats.Languages))
	for l, n := range stats.Languages {
		languages[string(l)] = n
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		CatalogSize: s.service.CatalogSize(),
		Moods:       moods,
		Languages:   languages,
	})
}

// modelsHandler returns per-language model availability.
func (s *Server) modelsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	active := s.service.ModelLanguages()
	activeSet := make(map[string]bool, len(active))
	for _, lang := range active {
		activeSet[string(lang)] = true
	}

	modelList := []ModelInfo{
		{Language: "en", Active: activeSet["en"]},
		{Language: "fa", Active: activeSet["fa"]},
	}

	writeJSON(w, http.StatusOK, ModelsResponse{
		Models: modelList,
		Count:  len(modelList),
	})
}

// decodePredictRequest reads a prediction request from either a JSON body
// or an HTML form submission, keyed off the Content-Type header.
func decodePredictRequest(r *http.Request) (PredictRequest, error) {
	var req PredictRequest

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.Text = r.PostFormValue("text")
		req.MediaType = r.PostFormValue("media_type")
		req.Language = r.PostFormValue("language")
		if req.Language == "" {
			req.Language = r.PostFormValue("response_language")
		}
		if raw := r.PostFormValue("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				return req, err
			}
			req.Limit = limit
		}
		return req, nil
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing left to send the client.
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, PredictResponse{
		Success: false,
		Error:   message,
	})
}
