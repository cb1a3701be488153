package controller

import (
	"errors"
	"school_records_backend/internal/model"
	"school_records_backend/internal/service"
	"school_records_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// ProvisionInstructor godoc
// @Summary Provision an instructor account
// @Description Creates the account and its employment profile; the account is rolled back if the profile write fails.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProvisionInstructorRequest true "Instructor details"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/users/instructors [post]
func (c *UserController) ProvisionInstructor(ctx *gin.Context) {
	var req service.ProvisionInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.ProvisionInstructor(util.GetUserFromContext(ctx), req)
	if err != nil {
		respondUserError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": user.ID})
}

// ProvisionLearner godoc
// @Summary Provision a learner account
// @Description Creates the account and its enrollment profile; the account is rolled back if the profile write fails.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProvisionLearnerRequest true "Learner details"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/users/learners [post]
func (c *UserController) ProvisionLearner(ctx *gin.Context) {
	var req service.ProvisionLearnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.ProvisionLearner(util.GetUserFromContext(ctx), req)
	if err != nil {
		respondUserError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": user.ID})
}

// ListUsers godoc
// @Summary List accounts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := c.UserService.ListUsers(util.GetUserFromContext(ctx), model.UserRole(ctx.Query("role")), page, limit)
	if err != nil {
		respondUserError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

func respondUserError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
