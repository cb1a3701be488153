package service

import (
	"school_records_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftQuestion(prompt string) model.Question {
	return model.Question{
		Type:       model.Identification,
		Prompt:     prompt,
		Points:     3,
		Difficulty: model.DifficultyMedium,
	}
}

func TestQuestionBuilderAdd(t *testing.T) {
	b := NewQuestionBuilder()

	require.Nil(t, b.Add(draftQuestion("first")))
	require.Nil(t, b.Add(draftQuestion("second")))

	qs := b.Questions()
	require.Len(t, qs, 2)
	assert.Equal(t, 1, qs[0].Position)
	assert.Equal(t, 2, qs[1].Position)
	assert.NotEmpty(t, qs[0].ID)
	assert.NotEmpty(t, qs[1].ID)
	assert.NotEqual(t, qs[0].ID, qs[1].ID)
}

func TestQuestionBuilderRejectsInvalidDraft(t *testing.T) {
	b := NewQuestionBuilder()
	require.Nil(t, b.Add(draftQuestion("keep me")))

	bad := draftQuestion("")
	ferr := b.Add(bad)
	require.NotNil(t, ferr)
	assert.Equal(t, "prompt", ferr.Field)

	// The list is untouched by the failed add.
	qs := b.Questions()
	require.Len(t, qs, 1)
	assert.Equal(t, "keep me", qs[0].Prompt)
	assert.Equal(t, 1, qs[0].Position)
}

func TestQuestionBuilderRemoveRenumbers(t *testing.T) {
	b := NewQuestionBuilder()
	require.Nil(t, b.Add(draftQuestion("one")))
	require.Nil(t, b.Add(draftQuestion("two")))
	require.Nil(t, b.Add(draftQuestion("three")))

	middle := b.Questions()[1].ID
	b.Remove(middle)

	qs := b.Questions()
	require.Len(t, qs, 2)
	assert.Equal(t, "one", qs[0].Prompt)
	assert.Equal(t, "three", qs[1].Prompt)
	assert.Equal(t, 1, qs[0].Position)
	assert.Equal(t, 2, qs[1].Position)
}

func TestQuestionBuilderRemoveUnknownIDIsNoop(t *testing.T) {
	b := NewQuestionBuilder()
	require.Nil(t, b.Add(draftQuestion("only")))

	b.Remove("no-such-id")
	assert.Equal(t, 1, b.Len())
}

func TestQuestionBuilderQuestionsReturnsCopy(t *testing.T) {
	b := NewQuestionBuilder()
	require.Nil(t, b.Add(draftQuestion("original")))

	qs := b.Questions()
	qs[0].Prompt = "mutated"

	assert.Equal(t, "original", b.Questions()[0].Prompt)
}
