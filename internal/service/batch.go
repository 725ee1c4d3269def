package service

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// batchJob represents a single request in a batch.
type batchJob struct {
	index int
	req   Request
}

// batchResult represents the outcome of one batch job.
type batchResult struct {
	index  int
	result Result
	err    error
}

// AnalyzeBatch analyzes multiple requests in parallel using a worker pool.
// Results come back in input order. The classifier and recommender are
// read-only, so workers share them without coordination.
func (s *Service) AnalyzeBatch(ctx context.Context, reqs []Request) ([]Result, error) {
	if len(reqs) == 0 {
		return nil, errors.New("no requests provided")
	}

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if len(reqs) == 1 || workers == 1 {
		return s.analyzeSequential(ctx, reqs)
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	jobs := make(chan batchJob, len(reqs))
	results := make(chan batchResult, len(reqs))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go s.batchWorker(ctx, jobs, results, &wg)
	}

	go func() {
		defer close(jobs)
		for i, req := range reqs {
			select {
			case jobs <- batchJob{index: i, req: req}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]Result, len(reqs))
	for r := range results {
		if r.err == nil {
			ordered[r.index] = r.result
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ordered, nil
}

// batchWorker drains jobs until the channel closes or the context ends.
func (s *Service) batchWorker(
	ctx context.Context,
	jobs <-chan batchJob,
	results chan<- batchResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return
			}
			result, err := s.AnalyzeAndRecommend(ctx, job.req)
			select {
			case results <- batchResult{index: job.index, result: result, err: err}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) analyzeSequential(ctx context.Context, reqs []Request) ([]Result, error) {
	ordered := make([]Result, len(reqs))
	for i, req := range reqs {
		result, err := s.AnalyzeAndRecommend(ctx, req)
		if err != nil {
			return nil, err
		}
		ordered[i] = result
	}
	return ordered, nil
}
