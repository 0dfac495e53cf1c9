// Package quiz implements the quiz session state machine: a question
// repository with role-gated mutation, answer scoring against an active
// selection, and result submission into a leaderboard sink.
package quiz

import (
	"context"
	"strings"
	"time"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/logger"
	"trivia-quiz/internal/util"

	"go.uber.org/zap"
)

// DefaultQuestionThreshold is the repository size above which AddQuestion
// emits a warning.
const DefaultQuestionThreshold = 100

// ScoreSink receives the per-category results of a finished quiz. Both the
// in-memory leaderboard and the Redis adapter satisfy it.
type ScoreSink interface {
	AddScore(ctx context.Context, category, username string, score int) error
}

// StartRequest carries the parameters of a new quiz run.
type StartRequest struct {
	NumberQuestions int    `json:"number_questions"`
	Category        string `json:"category"`
	Username        string `json:"username"`
}

// Attempt is the recorded outcome of one finished quiz.
type Attempt struct {
	ID         string         `json:"id"`
	Username   string         `json:"username"`
	Scores     map[string]int `json:"scores"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Quiz models a single session for one bound user. It is not safe for
// concurrent use; run concurrent sessions on separate instances.
type Quiz struct {
	currentUser       *domain.UserProfile // non-owning reference
	questions         []domain.Question
	currentScores     map[string]int
	activeSelection   []domain.Question // nil until StartQuiz succeeds
	questionThreshold int
	attempts          []Attempt
	log               *zap.Logger
}

// New creates a quiz with the default question threshold.
func New(log *zap.Logger) *Quiz {
	return NewWithThreshold(DefaultQuestionThreshold, log)
}

// NewWithThreshold creates a quiz with an explicit question threshold. A
// threshold of zero makes every added question trigger the size warning.
// Passing a nil logger falls back to the global one.
func NewWithThreshold(threshold int, log *zap.Logger) *Quiz {
	if log == nil {
		log = logger.Get()
	}
	return &Quiz{
		currentScores:     make(map[string]int),
		questionThreshold: threshold,
		log:               log,
	}
}

// SetCurrentUser binds user as the session principal. The profile must be
// authenticated at call time.
func (q *Quiz) SetCurrentUser(user *domain.UserProfile) error {
	if user == nil || !user.IsAuthenticated() {
		return domain.NewAuthenticationError("User must be authenticated to start a quiz.")
	}
	q.currentUser = user
	return nil
}

// CurrentUser returns the bound principal, or nil.
func (q *Quiz) CurrentUser() *domain.UserProfile {
	return q.currentUser
}

// requireAdmin is the shared gate for the mutating repository operations.
// The message is the same for all of them.
func (q *Quiz) requireAdmin() error {
	if q.currentUser == nil || q.currentUser.AccountType() != domain.AccountTypeAdmin {
		return domain.NewAuthorizationError("Only admin users can add questions.")
	}
	return nil
}

// AddQuestion appends a question to the repository. Growing past the
// configured threshold logs a warning but does not fail the operation.
func (q *Quiz) AddQuestion(question domain.Question) error {
	if err := q.requireAdmin(); err != nil {
		return err
	}
	q.questions = append(q.questions, question)
	if len(q.questions) > q.questionThreshold {
		q.log.Warn("question count exceeds threshold",
			zap.Int("count", len(q.questions)),
			zap.Int("threshold", q.questionThreshold))
	}
	return nil
}

// EditQuestion applies the patch to the question with the given id. An
// unknown id is a silent no-op.
func (q *Quiz) EditQuestion(id int, patch domain.QuestionPatch) error {
	if err := q.requireAdmin(); err != nil {
		return err
	}
	for i := range q.questions {
		if q.questions[i].ID == id {
			patch.Apply(&q.questions[i])
			return nil
		}
	}
	return nil
}

// RemoveQuestion deletes the question with the given id; no-op if absent.
func (q *Quiz) RemoveQuestion(id int) error {
	if err := q.requireAdmin(); err != nil {
		return err
	}
	for i := range q.questions {
		if q.questions[i].ID == id {
			q.questions = append(q.questions[:i], q.questions[i+1:]...)
			return nil
		}
	}
	return nil
}

// SearchQuestions returns every question whose text or category contains the
// keyword. The match is case-sensitive; an empty keyword matches everything.
func (q *Quiz) SearchQuestions(keyword string) []domain.Question {
	matched := make([]domain.Question, 0)
	for _, question := range q.questions {
		if strings.Contains(question.Text, keyword) || strings.Contains(question.Category, keyword) {
			matched = append(matched, question)
		}
	}
	return matched
}

// StartQuiz begins a new run for the bound user: it selects up to
// NumberQuestions repository questions of the requested category, in
// repository order, and resets the running scores. The returned questions
// still carry their Answer field; callers presenting them must withhold it.
func (q *Quiz) StartQuiz(req StartRequest) ([]domain.Question, error) {
	if q.currentUser == nil || !q.currentUser.IsAuthenticated() || req.Username != q.currentUser.Username() {
		return nil, domain.NewAuthenticationError("Invalid or unauthenticated user.")
	}

	selection := make([]domain.Question, 0)
	for _, question := range q.questions {
		if len(selection) >= req.NumberQuestions {
			break
		}
		if question.Category == req.Category {
			selection = append(selection, question)
		}
	}

	q.activeSelection = selection
	q.currentScores = make(map[string]int)
	return selection, nil
}

// SubmitAnswer scores an answer against the question's recorded one and
// reports whether it was correct. A correct answer increments the running
// score of the question's category; anything else leaves the state unchanged.
func (q *Quiz) SubmitAnswer(questionID int, answer string) bool {
	question, ok := q.findQuestion(questionID)
	if !ok {
		return false
	}
	if answer != question.Answer {
		return false
	}
	q.currentScores[question.Category]++
	return true
}

// findQuestion looks the question up in the active selection first, then in
// the full repository.
func (q *Quiz) findQuestion(id int) (domain.Question, bool) {
	for _, question := range q.activeSelection {
		if question.ID == id {
			return question, true
		}
	}
	for _, question := range q.questions {
		if question.ID == id {
			return question, true
		}
	}
	return domain.Question{}, false
}

// FinishQuiz commits the run's per-category scores into the sink and records
// an attempt. Every category covered by the run registers a score, zero
// included, so a finished quiz with no correct answers is still visible on
// the leaderboard.
func (q *Quiz) FinishQuiz(ctx context.Context, sink ScoreSink) error {
	if q.currentUser == nil {
		return domain.NewStateError("User not set.")
	}
	if len(q.questions) == 0 {
		return domain.NewStateError("No quiz questions.")
	}

	username := q.currentUser.Username()
	scores := make(map[string]int, len(q.currentScores))
	for _, category := range q.scoredCategories() {
		score := q.currentScores[category]
		if err := sink.AddScore(ctx, category, username, score); err != nil {
			return domain.NewInternalError("failed to record score", err)
		}
		scores[category] = score
	}

	q.attempts = append(q.attempts, Attempt{
		ID:         util.NewULID(),
		Username:   username,
		Scores:     scores,
		FinishedAt: time.Now(),
	})
	return nil
}

// scoredCategories returns the distinct categories covered by the current
// run, in question order: the active selection when a quiz was started, the
// whole repository otherwise.
func (q *Quiz) scoredCategories() []string {
	questions := q.questions
	if q.activeSelection != nil {
		questions = q.activeSelection
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, question := range questions {
		if _, ok := seen[question.Category]; ok {
			continue
		}
		seen[question.Category] = struct{}{}
		categories = append(categories, question.Category)
	}
	// Answers may have been accepted for repository questions outside the
	// active selection; their categories count too.
	for _, question := range q.questions {
		if _, scored := q.currentScores[question.Category]; !scored {
			continue
		}
		if _, ok := seen[question.Category]; ok {
			continue
		}
		seen[question.Category] = struct{}{}
		categories = append(categories, question.Category)
	}
	return categories
}

// Attempts returns the history of finished runs for this session.
func (q *Quiz) Attempts() []Attempt {
	return q.attempts
}
