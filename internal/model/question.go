package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type QuestionKind string

const (
	MultipleChoice QuestionKind = "multiple_choice"
	TrueFalse      QuestionKind = "true_false"
	Identification QuestionKind = "identification"
	Essay          QuestionKind = "essay"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// OwnerKind says which content collection a question row belongs to.
type OwnerKind string

const (
	OwnerAssessment  OwnerKind = "assessment"
	OwnerExamination OwnerKind = "examination"
)

// Option is one multiple-choice answer candidate.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// OptionList is stored as a JSON column.
type OptionList []Option

func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

func (o *OptionList) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for OptionList")
	}
	return json.Unmarshal(data, o)
}

// Question is one assessable item. The kind decides which of the
// variant fields are meaningful: Options for multiple_choice,
// CorrectAnswer for true_false, SampleAnswer for identification/essay.
// swagger:model Question
type Question struct {
	UUIDBase
	OwnerKind     OwnerKind    `gorm:"size:20;index:idx_questions_owner" json:"-"`
	OwnerID       string       `gorm:"type:varchar(36);index:idx_questions_owner" json:"-"`
	Type          QuestionKind `gorm:"size:50;not null" json:"type"`
	Prompt        string       `gorm:"type:text;not null" json:"prompt"`
	Points        int          `gorm:"default:1" json:"points"`
	Difficulty    Difficulty   `gorm:"size:20;default:'medium'" json:"difficulty"`
	Position      int          `gorm:"default:0" json:"position"`
	Options       OptionList   `gorm:"type:json" json:"options,omitempty"`
	CorrectAnswer *bool        `gorm:"default:null" json:"correctAnswer,omitempty"`
	SampleAnswer  string       `gorm:"type:text" json:"sampleAnswer,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// FieldError reports a single validation violation.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// FieldErrors collects every violation found in one pass.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func validDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Validate checks the question shape and returns the first violation,
// or nil when the question is well formed. Generated and manually
// entered questions go through this same check.
func (q *Question) Validate() *FieldError {
	if strings.TrimSpace(q.Prompt) == "" {
		return &FieldError{Field: "prompt", Reason: "prompt must not be empty"}
	}
	if q.Points < 1 {
		return &FieldError{Field: "points", Reason: "points must be at least 1"}
	}
	if !validDifficulty(q.Difficulty) {
		return &FieldError{Field: "difficulty", Reason: "difficulty must be easy, medium or hard"}
	}

	switch q.Type {
	case MultipleChoice:
		if len(q.Options) < 2 {
			return &FieldError{Field: "options", Reason: "multiple choice needs at least two options"}
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return &FieldError{Field: "options", Reason: "exactly one option must be marked correct"}
		}
	case TrueFalse:
		if q.CorrectAnswer == nil {
			return &FieldError{Field: "correctAnswer", Reason: "true/false questions need a correct answer"}
		}
	case Identification, Essay:
		// Sample answer is optional grading guidance only.
	default:
		return &FieldError{Field: "type", Reason: fmt.Sprintf("unknown question type %q", q.Type)}
	}

	return nil
}
