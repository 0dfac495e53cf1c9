package domain

// Question represents a single trivia question in the repository.
type Question struct {
	ID       int      `json:"id"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
}

// Validate checks the structural shape of the question. The question supplier
// is expected to hand over valid records; this is the defensive check applied
// at the import boundary.
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewValidationError("question text is required")
	}
	if q.Answer != "" && !contains(q.Options, q.Answer) {
		return NewValidationError("answer must be one of the question options")
	}
	return nil
}

func contains(options []string, answer string) bool {
	for _, o := range options {
		if o == answer {
			return true
		}
	}
	return false
}

// QuestionPatch describes a partial update to a question. Only fields that
// are set are applied; a patch carrying every field replaces the stored
// record entirely, including its ID.
type QuestionPatch struct {
	ID       *int      `json:"id,omitempty"`
	Text     *string   `json:"text,omitempty"`
	Options  *[]string `json:"options,omitempty"`
	Answer   *string   `json:"answer,omitempty"`
	Category *string   `json:"category,omitempty"`
}

// Apply overlays the patch onto q.
func (p QuestionPatch) Apply(q *Question) {
	if p.ID != nil {
		q.ID = *p.ID
	}
	if p.Text != nil {
		q.Text = *p.Text
	}
	if p.Options != nil {
		q.Options = *p.Options
	}
	if p.Answer != nil {
		q.Answer = *p.Answer
	}
	if p.Category != nil {
		q.Category = *p.Category
	}
}
