package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func validMultipleChoice() Question {
	return Question{
		Type:       MultipleChoice,
		Prompt:     "Which planet is closest to the sun?",
		Points:     2,
		Difficulty: DifficultyEasy,
		Options: OptionList{
			{ID: "a", Text: "Mercury", IsCorrect: true},
			{ID: "b", Text: "Venus"},
			{ID: "c", Text: "Mars"},
		},
	}
}

func TestQuestionValidate(t *testing.T) {
	t.Run("ValidMultipleChoice", func(t *testing.T) {
		q := validMultipleChoice()
		assert.Nil(t, q.Validate())
	})

	t.Run("EmptyPrompt", func(t *testing.T) {
		q := validMultipleChoice()
		q.Prompt = "   "
		ferr := q.Validate()
		require.NotNil(t, ferr)
		assert.Equal(t, "prompt", ferr.Field)
	})

	t.Run("PointsBelowOne", func(t *testing.T) {
		q := validMultipleChoice()
		q.Points = 0
		ferr := q.Validate()
		require.NotNil(t, ferr)
		assert.Equal(t, "points", ferr.Field)
	})

	t.Run("UnknownDifficulty", func(t *testing.T) {
		q := validMultipleChoice()
		q.Difficulty = "brutal"
		ferr := q.Validate()
		require.NotNil(t, ferr)
		assert.Equal(t, "difficulty", ferr.Field)
	})

	t.Run("MultipleChoiceTooFewOptions", func(t *testing.T) {
		q := validMultipleChoice()
		q.Options = OptionList{{ID: "a", Text: "Mercury", IsCorrect: true}}
		ferr := q.Validate()
		require.NotNil(t, ferr)
		assert.Equal(t, "options", ferr.Field)
	})

	t.Run("MultipleChoiceNoCorrectOption", func(t *testing.T) {
		q := validMultipleChoice()
		for i := range q.Options {
			q.Options[i].IsCorrect = false
		}
		ferr := q.Validate()
		require.NotNil(t, ferr)
		assert.Equal(t, "options", ferr.Field)
	})

	t.Run("MultipleChoiceTwoCorrectOptions", func(t *testing.T) {
		q := validMultipleChoice()
		q.Options[1].IsCorrect = true
		ferr := q.Validate()
		require.NotNil(t, ferr)
		assert.Equal(t, "options", ferr.Field)
	})

	t.Run("TrueFalseMissingAnswer", func(t *testing.T) {
		q := Question{
			Type:       TrueFalse,
			Prompt:     "Water boils at 100 degrees Celsius at sea level.",
			Points:     2,
			Difficulty: DifficultyEasy,
		}
		ferr := q.Validate()
		require.NotNil(t, ferr)
		assert.Equal(t, "correctAnswer", ferr.Field)

		q.CorrectAnswer = boolPtr(true)
		assert.Nil(t, q.Validate())
	})

	t.Run("EssaySampleAnswerOptional", func(t *testing.T) {
		q := Question{
			Type:       Essay,
			Prompt:     "Discuss the causes of the industrial revolution.",
			Points:     10,
			Difficulty: DifficultyHard,
		}
		assert.Nil(t, q.Validate())

		q.SampleAnswer = "Key factors include mechanization and access to coal."
		assert.Nil(t, q.Validate())
	})

	t.Run("IdentificationValid", func(t *testing.T) {
		q := Question{
			Type:       Identification,
			Prompt:     "Name the capital of France.",
			Points:     3,
			Difficulty: DifficultyMedium,
		}
		assert.Nil(t, q.Validate())
	})

	t.Run("UnknownType", func(t *testing.T) {
		q := Question{
			Type:       "matching",
			Prompt:     "Match the columns.",
			Points:     5,
			Difficulty: DifficultyMedium,
		}
		ferr := q.Validate()
		require.NotNil(t, ferr)
		assert.Equal(t, "type", ferr.Field)
	})
}

func TestQuestionRoundTrip(t *testing.T) {
	// A question that passes validation must still pass after a
	// serialize/re-parse cycle, so stored and fresh drafts share one
	// validation surface.
	q := validMultipleChoice()
	q.ID = GenerateUUID()
	require.Nil(t, q.Validate())

	data, err := json.Marshal(q)
	require.NoError(t, err)

	var back Question
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Nil(t, back.Validate())
	assert.Equal(t, q.Prompt, back.Prompt)
	assert.Equal(t, q.Options, back.Options)
}

func TestOptionListScan(t *testing.T) {
	raw := `[{"id":"a","text":"Yes","isCorrect":true},{"id":"b","text":"No","isCorrect":false}]`

	var fromBytes OptionList
	require.NoError(t, fromBytes.Scan([]byte(raw)))
	require.Len(t, fromBytes, 2)
	assert.True(t, fromBytes[0].IsCorrect)

	var fromString OptionList
	require.NoError(t, fromString.Scan(raw))
	assert.Equal(t, fromBytes, fromString)

	var fromNil OptionList
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)

	var bad OptionList
	assert.Error(t, bad.Scan(42))
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{
		{Field: "prompt", Reason: "prompt must not be empty"},
		{Field: "points", Reason: "points must be at least 1"},
	}
	assert.True(t, errs.Has("prompt"))
	assert.False(t, errs.Has("difficulty"))
	assert.Contains(t, errs.Error(), "prompt must not be empty")
	assert.Contains(t, errs.Error(), "points must be at least 1")
}
