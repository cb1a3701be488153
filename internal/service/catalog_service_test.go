package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school_records_backend/internal/model"
	"school_records_backend/internal/repository"
	"school_records_backend/internal/util"
)

func TestSanitizeQuestions(t *testing.T) {
	qs := []model.Question{
		{
			Type:   model.MultipleChoice,
			Prompt: "Pick one.",
			Options: model.OptionList{
				{ID: "a", Text: "Right", IsCorrect: true},
				{ID: "b", Text: "Wrong"},
			},
		},
		{
			Type:          model.TrueFalse,
			Prompt:        "Yes or no?",
			CorrectAnswer: boolPtrSvc(true),
		},
		{
			Type:         model.Essay,
			Prompt:       "Explain.",
			SampleAnswer: "grading guidance",
		},
	}

	out := sanitizeQuestions(qs)
	require.Len(t, out, 3)

	for _, opt := range out[0].Options {
		assert.False(t, opt.IsCorrect)
	}
	assert.Nil(t, out[1].CorrectAnswer)
	assert.Empty(t, out[2].SampleAnswer)

	// The originals keep their answer keys for the authoring side.
	assert.True(t, qs[0].Options[0].IsCorrect)
	assert.NotNil(t, qs[1].CorrectAnswer)
}

func TestGetExaminationHidesUndecidedItems(t *testing.T) {
	db, mock := newMockDB(t)
	assessmentRepo := repository.NewAssessmentRepository(db)
	examinationRepo := repository.NewExaminationRepository(db)
	svc := NewCatalogService(assessmentRepo, examinationRepo, nil)

	t.Run("PendingInvisible", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `examinations`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
				AddRow("exam-1", string(model.StatusPending)))

		_, _, err := svc.GetExamination("exam-1")
		assert.ErrorIs(t, err, util.ErrItemNotFound)
	})

	t.Run("RejectedInvisible", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `examinations`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
				AddRow("exam-1", string(model.StatusRejected)))

		_, _, err := svc.GetExamination("exam-1")
		assert.ErrorIs(t, err, util.ErrItemNotFound)
	})

	t.Run("MissingRow", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `examinations`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "status"}))

		_, _, err := svc.GetExamination("nope")
		assert.ErrorIs(t, err, util.ErrItemNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
