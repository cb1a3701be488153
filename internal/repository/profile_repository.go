package repository

import (
	"school_records_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) CreateInstructorProfile(p *model.InstructorProfile) error {
	return r.DB.Create(p).Error
}

func (r *ProfileRepository) CreateLearnerProfile(p *model.LearnerProfile) error {
	return r.DB.Create(p).Error
}

func (r *ProfileRepository) FindInstructorProfile(userID uint) (*model.InstructorProfile, error) {
	var p model.InstructorProfile
	err := r.DB.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *ProfileRepository) FindLearnerProfile(userID uint) (*model.LearnerProfile, error) {
	var p model.LearnerProfile
	err := r.DB.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}
