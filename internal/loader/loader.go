// Package loader supplies validated question records to the quiz core. It
// sits at the import boundary: everything it returns satisfies the supplier
// contract (unique IDs, answers that are members of their options).
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"trivia-quiz/internal/domain"
)

// Supplier hands over a validated set of questions.
type Supplier interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// FileSupplier reads questions from a JSON file holding an array of question
// records.
type FileSupplier struct {
	path string
}

func NewFileSupplier(path string) *FileSupplier {
	return &FileSupplier{path: path}
}

func (s *FileSupplier) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, domain.NewInternalError("failed to read questions file", err)
	}

	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("questions file is not valid JSON: %v", err))
	}

	if err := validateQuestions(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// validateQuestions enforces the supplier contract before records cross into
// the core.
func validateQuestions(questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.NewValidationError("questions file contains no questions")
	}

	seen := make(map[int]struct{}, len(questions))
	for _, q := range questions {
		if _, ok := seen[q.ID]; ok {
			return domain.NewValidationError(fmt.Sprintf("duplicate question id %d", q.ID))
		}
		seen[q.ID] = struct{}{}

		if err := q.Validate(); err != nil {
			return domain.NewError(domain.ErrValidation, fmt.Sprintf("question %d is invalid", q.ID), err)
		}
	}
	return nil
}
