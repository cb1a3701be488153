package controller

import (
	"errors"
	"school_records_backend/internal/service"
	"school_records_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog *service.CatalogService
}

func NewCatalogController(catalog *service.CatalogService) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// ListAssessments godoc
// @Summary Published assessments currently available
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/learner/assessments [get]
func (c *CatalogController) ListAssessments(ctx *gin.Context) {
	items, err := c.Catalog.ListAvailableAssessments(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// ListExaminations godoc
// @Summary Approved examinations currently available
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/learner/examinations [get]
func (c *CatalogController) ListExaminations(ctx *gin.Context) {
	items, err := c.Catalog.ListAvailableExaminations(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// GetAssessment godoc
// @Summary Assessment detail with answer keys stripped
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/learner/assessments/{id} [get]
func (c *CatalogController) GetAssessment(ctx *gin.Context) {
	a, qs, err := c.Catalog.GetAssessment(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrItemNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assessment": a, "questions": qs})
}

// GetExamination godoc
// @Summary Examination detail with answer keys stripped
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Examination id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/learner/examinations/{id} [get]
func (c *CatalogController) GetExamination(ctx *gin.Context) {
	e, qs, err := c.Catalog.GetExamination(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrItemNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"examination": e, "questions": qs})
}
