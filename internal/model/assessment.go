package model

import "time"

type GenerationMethod string

const (
	GeneratedByAI GenerationMethod = "ai"
	EnteredByHand GenerationMethod = "manual"
)

type ContentStatus string

const (
	StatusPublished ContentStatus = "published"
	StatusPending   ContentStatus = "pending"
	StatusApproved  ContentStatus = "approved"
	StatusRejected  ContentStatus = "rejected"
)

// Assessment is the non-gated content subtype: it is published in the
// same write that creates it and never carries review-state fields.
// swagger:model Assessment
type Assessment struct {
	UUIDBase
	Title            string           `gorm:"size:255;not null" json:"title"`
	Description      string           `gorm:"type:text" json:"description"`
	Subject          string           `gorm:"size:100" json:"subject"`
	LevelDescriptor  string           `gorm:"size:100" json:"levelDescriptor"`
	GenerationMethod GenerationMethod `gorm:"size:20;default:'manual'" json:"generationMethod"`
	TermsAccepted    bool             `gorm:"default:false" json:"termsAccepted"`
	Settings         ContentSettings  `gorm:"embedded" json:"settings"`
	Status           ContentStatus    `gorm:"size:20;default:'published'" json:"status"`
	PublishedAt      *time.Time       `json:"publishedAt,omitempty"`
	CreatorID        uint             `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Assessment) TableName() string {
	return "assessments"
}
