package controller

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"school_records_backend/internal/model"
	"school_records_backend/internal/service"
	"school_records_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type AuthoringController struct {
	Authoring  *service.AuthoringService
	Generation *service.GenerationService
	Storage    *service.StorageService
}

func NewAuthoringController(authoring *service.AuthoringService, generation *service.GenerationService, storage *service.StorageService) *AuthoringController {
	return &AuthoringController{
		Authoring:  authoring,
		Generation: generation,
		Storage:    storage,
	}
}

// CreateAssessment godoc
// @Summary Create and publish an assessment
// @Description Submits the full wizard state at once; the assessment is visible immediately.
// @Tags authoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssessmentDraft true "Assessment draft"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/instructor/assessments [post]
func (c *AuthoringController) CreateAssessment(ctx *gin.Context) {
	var draft service.AssessmentDraft
	if err := ctx.ShouldBindJSON(&draft); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Authoring.CreateAssessment(util.GetUserFromContext(ctx), draft)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": a.ID, "status": a.Status, "publishedAt": a.PublishedAt})
}

// CreateExamination godoc
// @Summary Create an examination pending review
// @Description Submits the full wizard state at once; the examination awaits an administrative decision.
// @Tags authoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ExaminationDraft true "Examination draft"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/instructor/examinations [post]
func (c *AuthoringController) CreateExamination(ctx *gin.Context) {
	var draft service.ExaminationDraft
	if err := ctx.ShouldBindJSON(&draft); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	e, err := c.Authoring.CreateExamination(util.GetUserFromContext(ctx), draft)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": e.ID, "status": e.Status})
}

// GenerateQuestions godoc
// @Summary Generate a question list from source material
// @Description One blocking call to the generation service; the result is a validated question list the wizard can edit further.
// @Tags authoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.GenerationRequest true "Generation parameters"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/instructor/generation/questions [post]
func (c *AuthoringController) GenerateQuestions(ctx *gin.Context) {
	var req service.GenerationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.Generation.GenerateQuestions(ctx.Request.Context(), req)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"questions": questions})
}

// UploadMaterial godoc
// @Summary Upload source material
// @Description Stores the original document and returns its text, truncated to the generation input cap.
// @Tags authoring
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Plain-text material file"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/instructor/generation/material [post]
func (c *AuthoringController) UploadMaterial(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, e := range util.AllowedMaterialExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, fmt.Sprintf("unsupported material type %q", ext))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	storedName := fmt.Sprintf("materials/%s%s", model.GenerateUUID(), ext)
	url, err := c.Storage.Upload(ctx.Request.Context(), storedName, strings.NewReader(string(data)), int64(len(data)), "text/plain")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	material := string(data)
	if runes := []rune(material); len(runes) > service.MaxMaterialChars {
		material = string(runes[:service.MaxMaterialChars])
	}

	util.Success(ctx, gin.H{"url": url, "material": material})
}

// respondAuthoringError maps pipeline errors onto the response
// taxonomy: field errors are recoverable 400s, role mismatches 403,
// generation failures 502 with the raw payload kept for diagnostics.
func respondAuthoringError(ctx *gin.Context, err error) {
	var fieldErrs model.FieldErrors
	var parseErr *service.GenerationParseError
	var svcErr *service.GenerationServiceError

	switch {
	case errors.As(err, &fieldErrs):
		util.ValidationFailed(ctx, fieldErrs)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrNoSourceMaterial):
		util.BadRequest(ctx, err.Error())
	case errors.As(err, &parseErr):
		ctx.JSON(502, util.Response{
			Code:    502,
			Message: parseErr.Error(),
			Data:    gin.H{"rawResponse": parseErr.Raw},
		})
	case errors.As(err, &svcErr):
		util.BadGateway(ctx, svcErr.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
