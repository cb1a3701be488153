package service

import (
	"errors"
	"school_records_backend/internal/model"
	"school_records_backend/internal/repository"
	"school_records_backend/internal/util"
	"school_records_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PublicationService owns the two-track publication workflow.
// Assessments go NotPersisted -> Published in one write; examinations
// go NotPersisted -> Pending -> Approved|Rejected, with both decisions
// restricted to administrators and terminal.
type PublicationService struct {
	AssessmentRepo  *repository.AssessmentRepository
	ExaminationRepo *repository.ExaminationRepository
	Catalog         *CatalogService
}

func NewPublicationService(assessmentRepo *repository.AssessmentRepository, examinationRepo *repository.ExaminationRepository, catalog *CatalogService) *PublicationService {
	return &PublicationService{
		AssessmentRepo:  assessmentRepo,
		ExaminationRepo: examinationRepo,
		Catalog:         catalog,
	}
}

// SubmitAssessment persists the non-gated subtype already published; no
// intermediate state is ever observable.
func (s *PublicationService) SubmitAssessment(a *model.Assessment, questions []model.Question) error {
	now := time.Now()
	a.Status = model.StatusPublished
	a.PublishedAt = &now

	if err := s.AssessmentRepo.CreateWithQuestions(a, questions); err != nil {
		return err
	}

	s.Catalog.InvalidateAssessments()
	logger.Log.Info("assessment published",
		zap.String("id", a.ID),
		zap.Uint("creator", a.CreatorID),
		zap.Int("questions", len(questions)))
	return nil
}

// SubmitExamination persists the gated subtype pending review, with no
// publish timestamp yet.
func (s *PublicationService) SubmitExamination(e *model.Examination, questions []model.Question) error {
	e.Status = model.StatusPending
	e.PublishedAt = nil
	e.ApprovedBy = nil
	e.ApprovedAt = nil
	e.RejectionReason = ""

	if err := s.ExaminationRepo.CreateWithQuestions(e, questions); err != nil {
		return err
	}

	logger.Log.Info("examination submitted for review",
		zap.String("id", e.ID),
		zap.Uint("creator", e.CreatorID),
		zap.Int("questions", len(questions)))
	return nil
}

// Approve moves a pending examination to approved. Approval is the
// publish event for the gated subtype, so the publish timestamp is
// stamped in the same write. Only administrators may decide, and the
// role check happens before any mutation is attempted.
func (s *PublicationService) Approve(principal *util.Claims, examID string) error {
	if principal == nil || principal.Role != model.Admin {
		return util.ErrPermissionDenied
	}

	now := time.Now()
	return s.decide(examID, map[string]interface{}{
		"status":       model.StatusApproved,
		"approved_by":  principal.UserID,
		"approved_at":  now,
		"published_at": now,
	})
}

// Reject moves a pending examination to rejected. The reason is
// required and recorded alongside the decision stamp; no publish
// timestamp is set.
func (s *PublicationService) Reject(principal *util.Claims, examID, reason string) error {
	if principal == nil || principal.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	if strings.TrimSpace(reason) == "" {
		return util.ErrRejectionReasonRequired
	}

	now := time.Now()
	return s.decide(examID, map[string]interface{}{
		"status":           model.StatusRejected,
		"approved_by":      principal.UserID,
		"approved_at":      now,
		"rejection_reason": reason,
	})
}

// ListExaminations is the administrator review queue, optionally
// filtered by status.
func (s *PublicationService) ListExaminations(principal *util.Claims, status model.ContentStatus, page, limit int) ([]model.Examination, int64, error) {
	if principal == nil || principal.Role != model.Admin {
		return nil, 0, util.ErrPermissionDenied
	}
	return s.ExaminationRepo.List(status, page, limit)
}

// GetExamination returns one examination with its questions, decision
// stamps and rejection reason included, for review.
func (s *PublicationService) GetExamination(principal *util.Claims, id string) (*model.Examination, []model.Question, error) {
	if principal == nil || principal.Role != model.Admin {
		return nil, nil, util.ErrPermissionDenied
	}
	e, err := s.ExaminationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrItemNotFound
		}
		return nil, nil, err
	}
	qs, err := s.ExaminationRepo.FindQuestions(id)
	if err != nil {
		return nil, nil, err
	}
	return e, qs, nil
}

// decide applies a terminal transition through the conditional write.
// When the row exists but is no longer pending (already decided, or a
// concurrent administrator won the race) the caller gets
// ErrInvalidTransition rather than a silent overwrite.
func (s *PublicationService) decide(examID string, updates map[string]interface{}) error {
	affected, err := s.ExaminationRepo.UpdateIfPending(examID, updates)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.ExaminationRepo.FindByID(examID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrItemNotFound
			}
			return err
		}
		return util.ErrInvalidTransition
	}

	if updates["status"] == model.StatusApproved {
		s.Catalog.InvalidateExaminations()
	}
	logger.Log.Info("examination decided",
		zap.String("id", examID),
		zap.Any("status", updates["status"]))
	return nil
}
