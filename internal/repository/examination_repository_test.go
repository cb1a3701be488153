package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"school_records_backend/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestUpdateIfPending(t *testing.T) {
	t.Run("GuardsOnPendingStatus", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewExaminationRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `examinations` SET .* WHERE id = \\? AND status = \\?").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		affected, err := repo.UpdateIfPending("exam-1", map[string]interface{}{
			"status": model.StatusApproved,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReportsZeroRowsWhenNotPending", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewExaminationRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `examinations` SET .* WHERE id = \\? AND status = \\?").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		affected, err := repo.UpdateIfPending("exam-1", map[string]interface{}{
			"status": model.StatusRejected,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateWithQuestions(t *testing.T) {
	t.Run("OneTransaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewExaminationRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `examinations`").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO `questions`").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO `questions`").
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		exam := &model.Examination{CreatorID: 3}
		questions := []model.Question{
			{Type: model.TrueFalse, Prompt: "q1", Points: 2, Difficulty: model.DifficultyEasy, Position: 1},
			{Type: model.Essay, Prompt: "q2", Points: 10, Difficulty: model.DifficultyHard, Position: 2},
		}

		err := repo.CreateWithQuestions(exam, questions)
		require.NoError(t, err)

		// Questions are stamped with their owning examination.
		for _, q := range questions {
			assert.Equal(t, model.OwnerExamination, q.OwnerKind)
			assert.Equal(t, exam.ID, q.OwnerID)
		}
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnQuestionFailure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewExaminationRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `examinations`").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO `questions`").
			WillReturnError(gorm.ErrInvalidData)
		mock.ExpectRollback()

		exam := &model.Examination{CreatorID: 3}
		questions := []model.Question{
			{Type: model.Identification, Prompt: "q1", Points: 3, Difficulty: model.DifficultyMedium, Position: 1},
		}

		err := repo.CreateWithQuestions(exam, questions)
		assert.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListAvailableFiltersOnWindow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExaminationRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `examinations` WHERE status = \\? AND available_from <= \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "title"}).
			AddRow("exam-1", string(model.StatusApproved), "Midterm"))

	items, err := repo.ListAvailable(now)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "exam-1", items[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
