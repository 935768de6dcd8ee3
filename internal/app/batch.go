package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/jobmatch/internal/engine"
	"github.com/okian/jobmatch/pkg/logger"
)

// RecommendAll computes Recommend(user, limit) for every registered user on
// a pool of at most batchWorkers goroutines. It stops handing out users once
// ctx is done and then returns ctx's error.
func (s *Service) RecommendAll(ctx context.Context, limit int) (map[string][]engine.Recommendation, error) {
	start := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := s.engine.Users()
	results := make([][]engine.Recommendation, len(users))

	workers := min(s.batchWorkers, len(users))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.engine.Recommend(users[i].ID, limit)
			}
		}()
	}

	var err error
feed:
	for i := range users {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		s.metrics.RecordError("service", "batch_canceled")
		s.logger.Warn(ctx, "batch recommendation canceled", logger.Error(err))
		return nil, fmt.Errorf("recommend all: %w", err)
	}

	out := make(map[string][]engine.Recommendation, len(users))
	for i, u := range users {
		out[u.ID] = results[i]
	}
	elapsed := time.Since(start)
	s.metrics.RecordBatch(workers, elapsed)
	s.logger.Debug(ctx, "batch recommendation done",
		logger.Int("users", len(users)),
		logger.Int("workers", workers),
		logger.Duration("elapsed", elapsed),
	)
	return out, nil
}
