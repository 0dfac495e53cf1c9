package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"trivia-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeQuestionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validQuestionsJSON = `[
	{"id": 1, "text": "What is 2+2?", "options": ["3", "4"], "answer": "4", "category": "math"},
	{"id": 2, "text": "Capital of France?", "options": ["Paris", "Lyon"], "answer": "Paris", "category": "geography"}
]`

func TestFileSupplier_LoadQuestions(t *testing.T) {
	t.Run("loads questions from a JSON file", func(t *testing.T) {
		s := NewFileSupplier(writeQuestionsFile(t, validQuestionsJSON))
		questions, err := s.LoadQuestions(context.Background())
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, 1, questions[0].ID)
		assert.Contains(t, questions[0].Options, questions[0].Answer)
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		s := NewFileSupplier(filepath.Join(t.TempDir(), "nope.json"))
		_, err := s.LoadQuestions(context.Background())
		assert.Error(t, err)
	})

	t.Run("fails on malformed JSON", func(t *testing.T) {
		s := NewFileSupplier(writeQuestionsFile(t, "{not json"))
		_, err := s.LoadQuestions(context.Background())
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrValidation, domainErr.Code)
	})

	t.Run("fails on an empty question set", func(t *testing.T) {
		s := NewFileSupplier(writeQuestionsFile(t, "[]"))
		_, err := s.LoadQuestions(context.Background())
		assert.Error(t, err)
	})

	t.Run("fails on duplicate ids", func(t *testing.T) {
		s := NewFileSupplier(writeQuestionsFile(t, `[
			{"id": 1, "text": "a", "options": ["x"], "answer": "x", "category": "c"},
			{"id": 1, "text": "b", "options": ["y"], "answer": "y", "category": "c"}
		]`))
		_, err := s.LoadQuestions(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate question id")
	})

	t.Run("fails when an answer is not among the options", func(t *testing.T) {
		s := NewFileSupplier(writeQuestionsFile(t, `[
			{"id": 1, "text": "a", "options": ["x"], "answer": "z", "category": "c"}
		]`))
		_, err := s.LoadQuestions(context.Background())
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrValidation, domainErr.Code)
	})
}

// countingSupplier counts loads and can be told to fail.
type countingSupplier struct {
	loads int
	err   error
}

func (s *countingSupplier) LoadQuestions(context.Context) ([]domain.Question, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Question{{ID: 1, Text: "q", Options: []string{"a"}, Answer: "a", Category: "c"}}, nil
}

func TestCachedSupplier_LoadQuestions(t *testing.T) {
	t.Run("serves from cache within the TTL", func(t *testing.T) {
		inner := &countingSupplier{}
		s := NewCachedSupplier(inner, time.Minute)

		_, err := s.LoadQuestions(context.Background())
		require.NoError(t, err)
		_, err = s.LoadQuestions(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, inner.loads)
	})

	t.Run("reloads after the TTL expires", func(t *testing.T) {
		inner := &countingSupplier{}
		s := NewCachedSupplier(inner, time.Minute)

		now := time.Unix(1000, 0)
		s.clock = func() time.Time { return now }

		_, err := s.LoadQuestions(context.Background())
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)
		_, err = s.LoadQuestions(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, inner.loads)
	})

	t.Run("does not cache failures", func(t *testing.T) {
		inner := &countingSupplier{err: errors.New("boom")}
		s := NewCachedSupplier(inner, time.Minute)

		_, err := s.LoadQuestions(context.Background())
		require.Error(t, err)

		inner.err = nil
		questions, err := s.LoadQuestions(context.Background())
		require.NoError(t, err)
		assert.Len(t, questions, 1)
		assert.Equal(t, 2, inner.loads)
	})
}
