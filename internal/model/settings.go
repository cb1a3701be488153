package model

import "time"

// ContentSettings is the aggregate scoring/timing metadata shared by
// both content subtypes. TotalPoints is always derived from the
// question list by the settings resolver and is never set directly by
// callers.
// swagger:model ContentSettings
type ContentSettings struct {
	TotalPoints           int        `gorm:"default:0" json:"totalPoints"`
	TimeLimitMinutes      int        `gorm:"default:0" json:"timeLimitMinutes"`
	PassingScore          *int       `gorm:"default:null" json:"passingScore,omitempty"`
	AvailableFrom         time.Time  `json:"availableFrom"`
	AvailableUntil        time.Time  `json:"availableUntil"`
	RandomizeOrder        bool       `gorm:"default:false" json:"randomizeOrder"`
	AllowMultipleAttempts bool       `gorm:"default:false" json:"allowMultipleAttempts"`
	MaxAttempts           *int       `gorm:"default:null" json:"maxAttempts,omitempty"`
}
