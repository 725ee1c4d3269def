package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alireza013/Mood-Playlist/internal/mood"
)

func newBatchService(t *testing.T, workers int) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogJSON), 0o600))

	svc, err := NewBuilder().
		WithModels(false).
		WithCatalogPath(path).
		WithWorkers(workers).
		Build()
	require.NoError(t, err)
	return svc
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	svc := newBatchService(t, 2)

	_, err := svc.AnalyzeBatch(context.Background(), nil)
	assert.Error(t, err)
}

func TestAnalyzeBatchPreservesOrder(t *testing.T) {
	svc := newBatchService(t, 4)

	reqs := []Request{
		{Text: "I am happy"},
		{Text: "so sad and down"},
		{Text: "really angry and furious"},
		{Text: "scared and anxious"},
		{Text: "خیلی خوشحال"},
	}
	want := []mood.Mood{mood.Joy, mood.Sadness, mood.Anger, mood.Fear, mood.Joy}

	results, err := svc.AnalyzeBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))
	for i, res := range results {
		assert.Equal(t, want[i], res.Prediction.Mood, "request %d", i)
	}
	assert.Equal(t, mood.Persian, results[4].Language)
}

func TestAnalyzeBatchSingleFallsBackSequential(t *testing.T) {
	svc := newBatchService(t, 4)

	results, err := svc.AnalyzeBatch(context.Background(), []Request{{Text: "happy"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, mood.Joy, results[0].Prediction.Mood)
}

func TestAnalyzeBatchCancelled(t *testing.T) {
	svc := newBatchService(t, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AnalyzeBatch(ctx, []Request{{Text: "happy"}, {Text: "sad"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeBatchManyRequests(t *testing.T) {
	svc := newBatchService(t, 3)

	reqs := make([]Request, 50)
	for i := range reqs {
		if i%2 == 0 {
			reqs[i] = Request{Text: fmt.Sprintf("happy note %d", i)}
		} else {
			reqs[i] = Request{Text: fmt.Sprintf("sad note %d", i)}
		}
	}

	results, err := svc.AnalyzeBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))
	for i, res := range results {
		if i%2 == 0 {
			assert.Equal(t, mood.Joy, res.Prediction.Mood, "request %d", i)
		} else {
			assert.Equal(t, mood.Sadness, res.Prediction.Mood, "request %d", i)
		}
	}
}
