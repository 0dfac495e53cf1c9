package loader

import (
	"context"
	"sync"
	"time"

	"trivia-quiz/internal/domain"

	"golang.org/x/sync/singleflight"
)

// CachedSupplier wraps another supplier and caches its result for a TTL, so
// repeated session setups do not re-read the backing source. Concurrent cache
// misses are collapsed into a single load.
type CachedSupplier struct {
	inner Supplier
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group

	mu        sync.RWMutex
	questions []domain.Question
	expiresAt time.Time
}

func NewCachedSupplier(inner Supplier, ttl time.Duration) *CachedSupplier {
	return &CachedSupplier{
		inner: inner,
		ttl:   ttl,
		clock: time.Now,
	}
}

func (s *CachedSupplier) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	now := s.clock()

	s.mu.RLock()
	if s.questions != nil && s.expiresAt.After(now) {
		questions := s.questions
		s.mu.RUnlock()
		return questions, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.sf.Do("questions", func() (interface{}, error) {
		now := s.clock()
		s.mu.RLock()
		if s.questions != nil && s.expiresAt.After(now) {
			questions := s.questions
			s.mu.RUnlock()
			return questions, nil
		}
		s.mu.RUnlock()

		questions, err := s.inner.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.questions = questions
		s.expiresAt = now.Add(s.ttl)
		s.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}
