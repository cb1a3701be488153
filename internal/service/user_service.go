package service

import (
	"school_records_backend/internal/model"
	"school_records_backend/internal/repository"
	"school_records_backend/internal/util"
	"school_records_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	ProfileRepo *repository.ProfileRepository
}

func NewUserService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
	}
}

type ProvisionInstructorRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	EmployeeNumber string `json:"employeeNumber" binding:"required"`
	Department     string `json:"department"`
	Position       string `json:"position"`
}

type ProvisionLearnerRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	StudentNumber string `json:"studentNumber" binding:"required"`
	YearLevel     string `json:"yearLevel"`
	Section       string `json:"section"`
	GuardianName  string `json:"guardianName"`
}

// ProvisionInstructor creates an instructor account plus its employment
// profile. When the profile write fails the freshly created account is
// rolled back with a compensating delete so no profile-less identity is
// left behind.
func (s *UserService) ProvisionInstructor(principal *util.Claims, req ProvisionInstructorRequest) (*model.User, error) {
	if principal == nil || principal.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	user, err := s.createAccount(req.Name, req.Email, req.Password, model.Instructor)
	if err != nil {
		return nil, err
	}

	profile := &model.InstructorProfile{
		UserID:         user.ID,
		EmployeeNumber: req.EmployeeNumber,
		Department:     req.Department,
		Position:       req.Position,
	}
	if err := s.ProfileRepo.CreateInstructorProfile(profile); err != nil {
		s.compensate(user.ID)
		return nil, err
	}

	return user, nil
}

// ProvisionLearner mirrors ProvisionInstructor for learner accounts and
// their enrollment profile.
func (s *UserService) ProvisionLearner(principal *util.Claims, req ProvisionLearnerRequest) (*model.User, error) {
	if principal == nil || principal.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	user, err := s.createAccount(req.Name, req.Email, req.Password, model.Learner)
	if err != nil {
		return nil, err
	}

	profile := &model.LearnerProfile{
		UserID:        user.ID,
		StudentNumber: req.StudentNumber,
		YearLevel:     req.YearLevel,
		Section:       req.Section,
		GuardianName:  req.GuardianName,
	}
	if err := s.ProfileRepo.CreateLearnerProfile(profile); err != nil {
		s.compensate(user.ID)
		return nil, err
	}

	return user, nil
}

func (s *UserService) createAccount(name, email, password string, role model.UserRole) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) compensate(userID uint) {
	if err := s.UserRepo.HardDelete(userID); err != nil {
		// A failed compensation leaves an orphaned account; surface it
		// loudly for manual cleanup.
		logger.Log.Error("compensating account delete failed",
			zap.Uint("userId", userID),
			zap.Error(err))
	}
}

func (s *UserService) ListUsers(principal *util.Claims, role model.UserRole, page, limit int) ([]model.User, int64, error) {
	if principal == nil || principal.Role != model.Admin {
		return nil, 0, util.ErrPermissionDenied
	}
	return s.UserRepo.List(role, page, limit)
}
