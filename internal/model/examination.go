package model

import "time"

// Examination is the gated content subtype. It is created in the
// pending state and becomes visible to learners only after an
// administrator approves it; approval is the publish event.
// swagger:model Examination
type Examination struct {
	UUIDBase
	Title            string           `gorm:"size:255;not null" json:"title"`
	Description      string           `gorm:"type:text" json:"description"`
	Subject          string           `gorm:"size:100" json:"subject"`
	LevelDescriptor  string           `gorm:"size:100" json:"levelDescriptor"`
	ExamCategory     string           `gorm:"size:100" json:"examCategory"`
	YearLevel        string           `gorm:"size:50" json:"yearLevel"`
	Term             string           `gorm:"size:50" json:"term"`
	GenerationMethod GenerationMethod `gorm:"size:20;default:'manual'" json:"generationMethod"`
	TermsAccepted    bool             `gorm:"default:false" json:"termsAccepted"`
	Settings         ContentSettings  `gorm:"embedded" json:"settings"`
	Status           ContentStatus    `gorm:"size:20;default:'pending';index" json:"status"`
	ApprovedBy       *uint            `gorm:"type:bigint unsigned" json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time       `json:"approvedAt,omitempty"`
	RejectionReason  string           `gorm:"type:text" json:"rejectionReason,omitempty"`
	PublishedAt      *time.Time       `json:"publishedAt,omitempty"`
	CreatorID        uint             `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Examination) TableName() string {
	return "examinations"
}
