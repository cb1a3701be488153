package service

import (
	"context"
	"encoding/json"
	"errors"
	"school_records_backend/internal/model"
	"school_records_backend/internal/repository"
	"school_records_backend/internal/util"
	"school_records_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	catalogAssessmentsKey  = "catalog:assessments:available"
	catalogExaminationsKey = "catalog:examinations:available"
	catalogTTL             = 5 * time.Minute
)

// CatalogService is the learner-facing read side: published
// assessments and approved examinations inside their availability
// window, with a short-lived redis cache in front of the store.
type CatalogService struct {
	AssessmentRepo  *repository.AssessmentRepository
	ExaminationRepo *repository.ExaminationRepository
	Redis           *redis.Client
}

func NewCatalogService(assessmentRepo *repository.AssessmentRepository, examinationRepo *repository.ExaminationRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		AssessmentRepo:  assessmentRepo,
		ExaminationRepo: examinationRepo,
		Redis:           rdb,
	}
}

func (s *CatalogService) ListAvailableAssessments(ctx context.Context) ([]model.Assessment, error) {
	var cached []model.Assessment
	if s.readCache(ctx, catalogAssessmentsKey, &cached) {
		return cached, nil
	}

	items, err := s.AssessmentRepo.ListAvailable(time.Now())
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, catalogAssessmentsKey, items)
	return items, nil
}

func (s *CatalogService) ListAvailableExaminations(ctx context.Context) ([]model.Examination, error) {
	var cached []model.Examination
	if s.readCache(ctx, catalogExaminationsKey, &cached) {
		return cached, nil
	}

	items, err := s.ExaminationRepo.ListAvailable(time.Now())
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, catalogExaminationsKey, items)
	return items, nil
}

// GetAssessment returns one published assessment with its questions
// sanitized for learner delivery.
func (s *CatalogService) GetAssessment(id string) (*model.Assessment, []model.Question, error) {
	a, err := s.AssessmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrItemNotFound
		}
		return nil, nil, err
	}
	if a.Status != model.StatusPublished {
		return nil, nil, util.ErrItemNotFound
	}
	qs, err := s.AssessmentRepo.FindQuestions(id)
	if err != nil {
		return nil, nil, err
	}
	return a, sanitizeQuestions(qs), nil
}

// GetExamination returns one approved examination with its questions
// sanitized for learner delivery.
func (s *CatalogService) GetExamination(id string) (*model.Examination, []model.Question, error) {
	e, err := s.ExaminationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrItemNotFound
		}
		return nil, nil, err
	}
	if e.Status != model.StatusApproved {
		return nil, nil, util.ErrItemNotFound
	}
	qs, err := s.ExaminationRepo.FindQuestions(id)
	if err != nil {
		return nil, nil, err
	}
	return e, sanitizeQuestions(qs), nil
}

func (s *CatalogService) InvalidateAssessments() {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), catalogAssessmentsKey)
}

func (s *CatalogService) InvalidateExaminations() {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), catalogExaminationsKey)
}

func (s *CatalogService) readCache(ctx context.Context, key string, dest interface{}) bool {
	if s.Redis == nil {
		return false
	}
	val, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		logger.Log.Warn("dropping corrupt catalog cache entry", zap.String("key", key), zap.Error(err))
		s.Redis.Del(ctx, key)
		return false
	}
	return true
}

func (s *CatalogService) writeCache(ctx context.Context, key string, items interface{}) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, data, catalogTTL).Err(); err != nil {
		logger.Log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// sanitizeQuestions strips answer keys and grading guidance before
// questions leave the authoring side.
func sanitizeQuestions(qs []model.Question) []model.Question {
	out := make([]model.Question, len(qs))
	for i, q := range qs {
		q.CorrectAnswer = nil
		q.SampleAnswer = ""
		if q.Options != nil {
			opts := make(model.OptionList, len(q.Options))
			for j, opt := range q.Options {
				opt.IsCorrect = false
				opts[j] = opt
			}
			q.Options = opts
		}
		out[i] = q
	}
	return out
}
