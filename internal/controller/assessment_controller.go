package controller

import (
	"errors"
	"strconv"

	"careerpath_backend/internal/model"
	"careerpath_backend/internal/repository"
	"careerpath_backend/internal/service"
	"careerpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
	Institutions      *repository.InstitutionRepository
	Batches           *repository.BatchRepository
}

func NewAssessmentController(
	assessmentService *service.AssessmentService,
	institutions *repository.InstitutionRepository,
	batches *repository.BatchRepository,
) *AssessmentController {
	return &AssessmentController{
		AssessmentService: assessmentService,
		Institutions:      institutions,
		Batches:           batches,
	}
}

// Create godoc
// @Summary Create the assessment definition for a batch
// @Description Stores a finished question bank; one definition per batch
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateAssessmentRequest true "definition payload"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response "invalid definition"
// @Failure 404 {object} util.Response "batch not found"
// @Failure 409 {object} util.Response "definition already exists"
// @Router /api/admin/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.AssessmentService.Create(claims.UserID, req)
	switch {
	case err == nil:
		util.Created(ctx, assessment)
	case errors.Is(err, util.ErrAssessmentExists):
		util.Conflict(ctx, util.ErrAssessmentExists.Error())
	case errors.Is(err, util.ErrBatchNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrValidation):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// Rollback godoc
// @Summary Delete an assessment definition
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /api/admin/assessments/{id} [delete]
func (c *AssessmentController) Rollback(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	if err := c.AssessmentService.Rollback(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// CreateInstitution godoc
// @Summary Create an institution
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.Institution true "institution payload"
// @Success 201 {object} util.Response{data=model.Institution}
// @Router /api/admin/institutions [post]
func (c *AssessmentController) CreateInstitution(ctx *gin.Context) {
	var inst model.Institution
	if err := ctx.ShouldBindJSON(&inst); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Institutions.Create(&inst); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, inst)
}

// CreateBatch godoc
// @Summary Create a batch under an institution
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.Batch true "batch payload"
// @Success 201 {object} util.Response{data=model.Batch}
// @Router /api/admin/batches [post]
func (c *AssessmentController) CreateBatch(ctx *gin.Context) {
	var batch model.Batch
	if err := ctx.ShouldBindJSON(&batch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Batches.Create(&batch); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, batch)
}
