package service

import (
	"school_records_backend/internal/model"
)

// QuestionBuilder accumulates a question list during manual authoring.
// It holds no state beyond the list itself; each accepted draft gets a
// fresh identifier and the next ordinal position. Cross-question
// invariants (duplicate prompts and the like) are deliberately not
// enforced here.
type QuestionBuilder struct {
	questions []model.Question
}

func NewQuestionBuilder() *QuestionBuilder {
	return &QuestionBuilder{}
}

// Add validates the draft and appends it. On a validation failure the
// list is left exactly as it was and the violation is returned.
func (b *QuestionBuilder) Add(draft model.Question) *model.FieldError {
	if ferr := draft.Validate(); ferr != nil {
		return ferr
	}

	if draft.ID == "" {
		draft.ID = model.GenerateUUID()
	}
	draft.Position = len(b.questions) + 1
	b.questions = append(b.questions, draft)
	return nil
}

// Remove drops the question with the given id and renumbers the rest so
// ordinals stay dense. Removing an unknown id is a no-op.
func (b *QuestionBuilder) Remove(id string) {
	kept := b.questions[:0]
	for _, q := range b.questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	b.questions = kept
	for i := range b.questions {
		b.questions[i].Position = i + 1
	}
}

func (b *QuestionBuilder) Len() int {
	return len(b.questions)
}

// Questions returns a copy of the accumulated list.
func (b *QuestionBuilder) Questions() []model.Question {
	out := make([]model.Question, len(b.questions))
	copy(out, b.questions)
	return out
}
