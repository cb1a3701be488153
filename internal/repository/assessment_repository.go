package repository

import (
	"school_records_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// CreateWithQuestions persists the assessment and its question list in
// one transaction so a half-written item is never observable.
func (r *AssessmentRepository) CreateWithQuestions(a *model.Assessment, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].OwnerKind = model.OwnerAssessment
			questions[i].OwnerID = a.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AssessmentRepository) FindByID(id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where("id = ?", id).First(&a).Error
	return &a, err
}

func (r *AssessmentRepository) FindQuestions(id string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("owner_kind = ? AND owner_id = ?", model.OwnerAssessment, id).
		Order("position asc").Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) List(page, limit int) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64
	query := r.DB.Model(&model.Assessment{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

// ListAvailable returns published assessments whose availability window
// contains now.
func (r *AssessmentRepository) ListAvailable(now time.Time) ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.Where("status = ?", model.StatusPublished).
		Where("available_from <= ? AND available_until > ?", now, now).
		Order("available_until asc").Find(&as).Error
	return as, err
}
