package service

import (
	"school_records_backend/internal/model"
	"time"
)

// SettingsInput is the caller-supplied half of the content settings.
// Total points is absent on purpose: it is always derived.
type SettingsInput struct {
	TimeLimitMinutes      int        `json:"timeLimitMinutes"`
	PassingScore          *int       `json:"passingScore"`
	AvailableFrom         time.Time  `json:"availableFrom"`
	AvailableUntil        time.Time  `json:"availableUntil"`
	RandomizeOrder        bool       `json:"randomizeOrder"`
	AllowMultipleAttempts bool       `json:"allowMultipleAttempts"`
	MaxAttempts           *int       `json:"maxAttempts"`
}

// ResolveSettings derives the aggregate scoring/timing metadata from a
// question list. Total points is recomputed as the sum of question
// points, overriding anything the caller supplied. Every violation is
// reported at once rather than one at a time.
func ResolveSettings(questions []model.Question, in SettingsInput) (model.ContentSettings, model.FieldErrors) {
	var errs model.FieldErrors

	total := 0
	for _, q := range questions {
		total += q.Points
	}

	if in.TimeLimitMinutes < 1 {
		errs = append(errs, model.FieldError{Field: "timeLimitMinutes", Reason: "time limit must be at least 1 minute"})
	}

	if in.AvailableFrom.IsZero() {
		errs = append(errs, model.FieldError{Field: "availableFrom", Reason: "availability start is required"})
	}
	if in.AvailableUntil.IsZero() {
		errs = append(errs, model.FieldError{Field: "availableUntil", Reason: "availability end is required"})
	}
	if !in.AvailableFrom.IsZero() && !in.AvailableUntil.IsZero() && !in.AvailableFrom.Before(in.AvailableUntil) {
		errs = append(errs, model.FieldError{Field: "availableUntil", Reason: "availability end must be after start"})
	}

	if in.PassingScore != nil {
		if *in.PassingScore < 0 || *in.PassingScore > total {
			errs = append(errs, model.FieldError{Field: "passingScore", Reason: "passing score must be between 0 and the total points"})
		}
	}

	if in.AllowMultipleAttempts {
		if in.MaxAttempts == nil || *in.MaxAttempts < 1 {
			errs = append(errs, model.FieldError{Field: "maxAttempts", Reason: "max attempts must be at least 1 when multiple attempts are allowed"})
		}
	} else if in.MaxAttempts != nil {
		errs = append(errs, model.FieldError{Field: "maxAttempts", Reason: "max attempts is only valid when multiple attempts are allowed"})
	}

	if errs != nil {
		return model.ContentSettings{}, errs
	}

	settings := model.ContentSettings{
		TotalPoints:           total,
		TimeLimitMinutes:      in.TimeLimitMinutes,
		PassingScore:          in.PassingScore,
		AvailableFrom:         in.AvailableFrom,
		AvailableUntil:        in.AvailableUntil,
		RandomizeOrder:        in.RandomizeOrder,
		AllowMultipleAttempts: in.AllowMultipleAttempts,
		MaxAttempts:           in.MaxAttempts,
	}
	return settings, nil
}
