package model

import (
	"time"
)

type UserRole string

const (
	Admin      UserRole = "admin"
	Instructor UserRole = "instructor"
	Learner    UserRole = "learner"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('admin','instructor','learner');default:'learner'" json:"role"`
	Language  string    `gorm:"size:10;default:'en'" json:"language"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// InstructorProfile holds the employment record created alongside a
// provisioned instructor account.
type InstructorProfile struct {
	BaseModel
	UserID         uint   `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	EmployeeNumber string `gorm:"size:50;not null" json:"employeeNumber"`
	Department     string `gorm:"size:100" json:"department"`
	Position       string `gorm:"size:100" json:"position"`
}

func (InstructorProfile) TableName() string {
	return "instructor_profiles"
}

// LearnerProfile holds the enrollment record created alongside a
// provisioned learner account.
type LearnerProfile struct {
	BaseModel
	UserID        uint   `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	StudentNumber string `gorm:"size:50;not null" json:"studentNumber"`
	YearLevel     string `gorm:"size:50" json:"yearLevel"`
	Section       string `gorm:"size:100" json:"section"`
	GuardianName  string `gorm:"size:100" json:"guardianName"`
}

func (LearnerProfile) TableName() string {
	return "learner_profiles"
}
