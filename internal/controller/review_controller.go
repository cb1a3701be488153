package controller

import (
	"errors"
	"school_records_backend/internal/model"
	"school_records_backend/internal/service"
	"school_records_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Publication *service.PublicationService
}

func NewReviewController(publication *service.PublicationService) *ReviewController {
	return &ReviewController{Publication: publication}
}

// ListExaminations godoc
// @Summary Examination review queue
// @Tags review
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/admin/examinations [get]
func (c *ReviewController) ListExaminations(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	status := model.ContentStatus(ctx.Query("status"))

	items, total, err := c.Publication.ListExaminations(util.GetUserFromContext(ctx), status, page, limit)
	if err != nil {
		respondReviewError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// GetExamination godoc
// @Summary Examination detail for review
// @Tags review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Examination id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/examinations/{id} [get]
func (c *ReviewController) GetExamination(ctx *gin.Context) {
	e, qs, err := c.Publication.GetExamination(util.GetUserFromContext(ctx), ctx.Param("id"))
	if err != nil {
		respondReviewError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"examination": e, "questions": qs})
}

// Approve godoc
// @Summary Approve a pending examination
// @Description Approval is the publish event: the decision stamp and publish timestamp are set in the same conditional write.
// @Tags review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Examination id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Already decided"
// @Router /api/admin/examinations/{id}/approve [post]
func (c *ReviewController) Approve(ctx *gin.Context) {
	err := c.Publication.Approve(util.GetUserFromContext(ctx), ctx.Param("id"))
	if err != nil {
		respondReviewError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"ok": true})
}

// swagger:model RejectRequest
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject godoc
// @Summary Reject a pending examination
// @Description Requires a non-empty reason, recorded with the decision stamp.
// @Tags review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Examination id"
// @Param body body RejectRequest true "Rejection reason"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Already decided"
// @Router /api/admin/examinations/{id}/reject [post]
func (c *ReviewController) Reject(ctx *gin.Context) {
	var req RejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.Publication.Reject(util.GetUserFromContext(ctx), ctx.Param("id"), req.Reason)
	if err != nil {
		respondReviewError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"ok": true})
}

// respondReviewError keeps transition conflicts distinct from
// validation problems so a client can explain "already decided".
func respondReviewError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrItemNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidTransition):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrRejectionReasonRequired):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
