package repository

import (
	"school_records_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ExaminationRepository struct {
	DB *gorm.DB
}

func NewExaminationRepository(db *gorm.DB) *ExaminationRepository {
	return &ExaminationRepository{DB: db}
}

// CreateWithQuestions persists the examination and its question list in
// one transaction. The row always starts in the pending state.
func (r *ExaminationRepository) CreateWithQuestions(e *model.Examination, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].OwnerKind = model.OwnerExamination
			questions[i].OwnerID = e.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ExaminationRepository) FindByID(id string) (*model.Examination, error) {
	var e model.Examination
	err := r.DB.Where("id = ?", id).First(&e).Error
	return &e, err
}

func (r *ExaminationRepository) FindQuestions(id string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("owner_kind = ? AND owner_id = ?", model.OwnerExamination, id).
		Order("position asc").Find(&qs).Error
	return qs, err
}

func (r *ExaminationRepository) List(status model.ContentStatus, page, limit int) ([]model.Examination, int64, error) {
	var es []model.Examination
	var total int64
	query := r.DB.Model(&model.Examination{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&es).Error
	return es, total, err
}

// ListAvailable returns approved examinations whose availability window
// contains now.
func (r *ExaminationRepository) ListAvailable(now time.Time) ([]model.Examination, error) {
	var es []model.Examination
	err := r.DB.Where("status = ?", model.StatusApproved).
		Where("available_from <= ? AND available_until > ?", now, now).
		Order("available_until asc").Find(&es).Error
	return es, err
}

// UpdateIfPending applies updates only while the row is still pending.
// The conditional write is what resolves two concurrent decisions: the
// loser sees zero rows affected and must not overwrite the winner.
func (r *ExaminationRepository) UpdateIfPending(id string, updates map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.Examination{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(updates)
	return res.RowsAffected, res.Error
}
