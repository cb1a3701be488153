package service

import (
	"fmt"
	"school_records_backend/internal/model"
	"school_records_backend/internal/util"
)

// AssessmentDraft is the complete client-side wizard state, submitted
// once. Nothing is persisted until the draft passes every check.
type AssessmentDraft struct {
	Title            string                 `json:"title" binding:"required"`
	Description      string                 `json:"description"`
	Subject          string                 `json:"subject"`
	LevelDescriptor  string                 `json:"levelDescriptor"`
	GenerationMethod model.GenerationMethod `json:"generationMethod"`
	TermsAccepted    bool                   `json:"termsAccepted"`
	Questions        []model.Question       `json:"questions"`
	Settings         SettingsInput          `json:"settings"`
}

// ExaminationDraft adds the gated subtype's classification fields.
type ExaminationDraft struct {
	AssessmentDraft
	ExamCategory string `json:"examCategory"`
	YearLevel    string `json:"yearLevel"`
	Term         string `json:"term"`
}

// AuthoringService sequences one submission: role check, shared
// question validation (manual and generated content go through the same
// surface), settings resolution, then handoff to the publication
// workflow. Items are created atomically and are read-only to the
// author afterwards.
type AuthoringService struct {
	Publication *PublicationService
}

func NewAuthoringService(publication *PublicationService) *AuthoringService {
	return &AuthoringService{Publication: publication}
}

func (s *AuthoringService) CreateAssessment(principal *util.Claims, draft AssessmentDraft) (*model.Assessment, error) {
	if err := requireAuthor(principal); err != nil {
		return nil, err
	}

	questions, settings, errs := s.prepare(&draft)
	if errs != nil {
		return nil, errs
	}

	a := &model.Assessment{
		Title:            draft.Title,
		Description:      draft.Description,
		Subject:          draft.Subject,
		LevelDescriptor:  draft.LevelDescriptor,
		GenerationMethod: draft.GenerationMethod,
		TermsAccepted:    true,
		Settings:         settings,
		CreatorID:        principal.UserID,
	}

	if err := s.Publication.SubmitAssessment(a, questions); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AuthoringService) CreateExamination(principal *util.Claims, draft ExaminationDraft) (*model.Examination, error) {
	if err := requireAuthor(principal); err != nil {
		return nil, err
	}

	questions, settings, errs := s.prepare(&draft.AssessmentDraft)
	if errs != nil {
		return nil, errs
	}

	e := &model.Examination{
		Title:            draft.Title,
		Description:      draft.Description,
		Subject:          draft.Subject,
		LevelDescriptor:  draft.LevelDescriptor,
		ExamCategory:     draft.ExamCategory,
		YearLevel:        draft.YearLevel,
		Term:             draft.Term,
		GenerationMethod: draft.GenerationMethod,
		TermsAccepted:    true,
		Settings:         settings,
		CreatorID:        principal.UserID,
	}

	if err := s.Publication.SubmitExamination(e, questions); err != nil {
		return nil, err
	}
	return e, nil
}

func requireAuthor(principal *util.Claims) error {
	if principal == nil {
		return util.ErrPermissionDenied
	}
	if principal.Role != model.Instructor && principal.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	return nil
}

// prepare runs every draft-level check and reports all violations at
// once. On success it returns the finalized question list (fresh ids,
// dense ordinals) and the resolved settings.
func (s *AuthoringService) prepare(draft *AssessmentDraft) ([]model.Question, model.ContentSettings, model.FieldErrors) {
	var errs model.FieldErrors

	if !draft.TermsAccepted {
		errs = append(errs, model.FieldError{Field: "termsAccepted", Reason: "terms must be accepted before submission"})
	}

	switch draft.GenerationMethod {
	case "":
		draft.GenerationMethod = model.EnteredByHand
	case model.GeneratedByAI, model.EnteredByHand:
	default:
		errs = append(errs, model.FieldError{Field: "generationMethod", Reason: "generation method must be ai or manual"})
	}

	if len(draft.Questions) == 0 {
		errs = append(errs, model.FieldError{Field: "questions", Reason: "at least one question is required"})
	}

	builder := NewQuestionBuilder()
	for i, q := range draft.Questions {
		for j := range q.Options {
			if q.Options[j].ID == "" {
				q.Options[j].ID = model.GenerateUUID()
			}
		}
		if ferr := builder.Add(q); ferr != nil {
			errs = append(errs, model.FieldError{
				Field:  fmt.Sprintf("questions[%d].%s", i, ferr.Field),
				Reason: ferr.Reason,
			})
		}
	}
	questions := builder.Questions()

	settings, serrs := ResolveSettings(questions, draft.Settings)
	errs = append(errs, serrs...)

	if errs != nil {
		return nil, model.ContentSettings{}, errs
	}
	return questions, settings, nil
}
