package logging

import (
	"context"
	"log/slog"
	"sync"
)

// ErrorSampler reduces log noise by sampling repeated errors.
// The first occurrence of a key is logged, then every Nth one.
type ErrorSampler struct {
	mu       sync.Mutex
	counts   map[string]int
	interval int
}

// NewErrorSampler creates a sampler logging every interval-th occurrence.
func NewErrorSampler(interval int) *ErrorSampler {
	if interval < 1 {
		interval = 10
	}
	return &ErrorSampler{
		counts:   make(map[string]int),
		interval: interval,
	}
}

// ShouldLog records an occurrence of key and reports whether it should be logged.
func (s *ErrorSampler) ShouldLog(key string) bool {
	_, ok := s.observe(key)
	return ok
}

// Error logs msg at error level when the occurrence of key is sampled in.
// The running count is attached as "occurrences".
func (s *ErrorSampler) Error(ctx context.Context, key, msg string, args ...any) {
	count, ok := s.observe(key)
	if !ok {
		return
	}
	slog.ErrorContext(ctx, msg, append(args, "sample_key", key, "occurrences", count)...)
}

func (s *ErrorSampler) observe(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[key]++
	count := s.counts[key]
	return count, count == 1 || count%s.interval == 0
}

// Count returns the occurrences recorded for key.
func (s *ErrorSampler) Count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

// Reset forgets key, typically once the failing dependency recovered.
func (s *ErrorSampler) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, key)
}
