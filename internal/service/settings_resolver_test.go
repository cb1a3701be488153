package service

import (
	"school_records_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sampleQuestions() []model.Question {
	return []model.Question{
		{Type: model.MultipleChoice, Prompt: "q1", Points: 2, Difficulty: model.DifficultyEasy},
		{Type: model.Identification, Prompt: "q2", Points: 3, Difficulty: model.DifficultyMedium},
		{Type: model.Essay, Prompt: "q3", Points: 10, Difficulty: model.DifficultyHard},
	}
}

func validSettingsInput() SettingsInput {
	return SettingsInput{
		TimeLimitMinutes: 30,
		AvailableFrom:    time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		AvailableUntil:   time.Date(2026, 9, 8, 8, 0, 0, 0, time.UTC),
	}
}

func TestResolveSettings(t *testing.T) {
	t.Run("TotalPointsAlwaysRecomputed", func(t *testing.T) {
		settings, errs := ResolveSettings(sampleQuestions(), validSettingsInput())
		require.Nil(t, errs)
		assert.Equal(t, 15, settings.TotalPoints)
	})

	t.Run("EmptyQuestionListYieldsZeroTotal", func(t *testing.T) {
		settings, errs := ResolveSettings(nil, validSettingsInput())
		require.Nil(t, errs)
		assert.Equal(t, 0, settings.TotalPoints)
	})

	t.Run("TimeLimitBelowOne", func(t *testing.T) {
		in := validSettingsInput()
		in.TimeLimitMinutes = 0
		_, errs := ResolveSettings(sampleQuestions(), in)
		require.NotNil(t, errs)
		assert.True(t, errs.Has("timeLimitMinutes"))
	})

	t.Run("WindowEndsRequired", func(t *testing.T) {
		in := validSettingsInput()
		in.AvailableFrom = time.Time{}
		in.AvailableUntil = time.Time{}
		_, errs := ResolveSettings(sampleQuestions(), in)
		require.NotNil(t, errs)
		assert.True(t, errs.Has("availableFrom"))
		assert.True(t, errs.Has("availableUntil"))
	})

	t.Run("WindowEndBeforeStart", func(t *testing.T) {
		in := validSettingsInput()
		in.AvailableFrom, in.AvailableUntil = in.AvailableUntil, in.AvailableFrom
		_, errs := ResolveSettings(sampleQuestions(), in)
		require.NotNil(t, errs)
		assert.True(t, errs.Has("availableUntil"))
		assert.False(t, errs.Has("availableFrom"))
	})

	t.Run("WindowEndEqualToStart", func(t *testing.T) {
		in := validSettingsInput()
		in.AvailableUntil = in.AvailableFrom
		_, errs := ResolveSettings(sampleQuestions(), in)
		require.NotNil(t, errs)
		assert.True(t, errs.Has("availableUntil"))
	})

	t.Run("PassingScoreBounds", func(t *testing.T) {
		in := validSettingsInput()
		in.PassingScore = intPtr(15)
		settings, errs := ResolveSettings(sampleQuestions(), in)
		require.Nil(t, errs)
		assert.Equal(t, 15, *settings.PassingScore)

		in.PassingScore = intPtr(16)
		_, errs = ResolveSettings(sampleQuestions(), in)
		require.NotNil(t, errs)
		assert.True(t, errs.Has("passingScore"))

		in.PassingScore = intPtr(-1)
		_, errs = ResolveSettings(sampleQuestions(), in)
		require.NotNil(t, errs)
		assert.True(t, errs.Has("passingScore"))
	})

	t.Run("MaxAttemptsRequiredWhenMultipleAllowed", func(t *testing.T) {
		in := validSettingsInput()
		in.AllowMultipleAttempts = true
		_, errs := ResolveSettings(sampleQuestions(), in)
		require.NotNil(t, errs)
		assert.True(t, errs.Has("maxAttempts"))

		in.MaxAttempts = intPtr(0)
		_, errs = ResolveSettings(sampleQuestions(), in)
		require.NotNil(t, errs)
		assert.True(t, errs.Has("maxAttempts"))

		in.MaxAttempts = intPtr(3)
		settings, errs := ResolveSettings(sampleQuestions(), in)
		require.Nil(t, errs)
		assert.Equal(t, 3, *settings.MaxAttempts)
	})

	t.Run("MaxAttemptsInvalidWhenMultipleNotAllowed", func(t *testing.T) {
		in := validSettingsInput()
		in.MaxAttempts = intPtr(3)
		_, errs := ResolveSettings(sampleQuestions(), in)
		require.NotNil(t, errs)
		assert.True(t, errs.Has("maxAttempts"))
	})

	t.Run("AllViolationsReportedAtOnce", func(t *testing.T) {
		in := SettingsInput{
			TimeLimitMinutes: 0,
			PassingScore:     intPtr(100),
			MaxAttempts:      intPtr(2),
		}
		_, errs := ResolveSettings(sampleQuestions(), in)
		require.NotNil(t, errs)
		assert.True(t, errs.Has("timeLimitMinutes"))
		assert.True(t, errs.Has("availableFrom"))
		assert.True(t, errs.Has("availableUntil"))
		assert.True(t, errs.Has("passingScore"))
		assert.True(t, errs.Has("maxAttempts"))
	})
}
