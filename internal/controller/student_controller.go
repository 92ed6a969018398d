package controller

import (
	"errors"

	"careerpath_backend/internal/repository"
	"careerpath_backend/internal/service"
	"careerpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
	AttemptService *service.AttemptService
	Institutions   *repository.InstitutionRepository
}

func NewStudentController(
	studentService *service.StudentService,
	attemptService *service.AttemptService,
	institutions *repository.InstitutionRepository,
) *StudentController {
	return &StudentController{
		StudentService: studentService,
		AttemptService: attemptService,
		Institutions:   institutions,
	}
}

// SaveProfile godoc
// @Summary Save the student profile
// @Description Upserts the profile and marks the account profile-complete
// @Tags student
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ProfileRequest true "profile payload"
// @Success 200 {object} util.Response{data=model.StudentProfile}
// @Failure 400 {object} util.Response
// @Router /api/student/profile [post]
func (c *StudentController) SaveProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.StudentService.SaveProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// ListInstitutions godoc
// @Summary List active institutions
// @Tags student
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Institution}
// @Router /api/student/institutions [get]
func (c *StudentController) ListInstitutions(ctx *gin.Context) {
	insts, err := c.Institutions.ListActive()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, insts)
}

type selectInstitutionRequest struct {
	InstitutionID uint `json:"institutionId" binding:"required"`
}

// SelectInstitution godoc
// @Summary Select an institution
// @Description Resets any previous batch membership
// @Tags student
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body selectInstitutionRequest true "institution id"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "institution not found or inactive"
// @Router /api/student/select-institution [post]
func (c *StudentController) SelectInstitution(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req selectInstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.StudentService.SelectInstitution(claims.UserID, req.InstitutionID); err != nil {
		if errors.Is(err, util.ErrInstitutionClosed) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"selected": true})
}

// AvailableBatches godoc
// @Summary List batches the student can join
// @Tags student
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.BatchView}
// @Router /api/student/batches [get]
func (c *StudentController) AvailableBatches(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	batches, err := c.StudentService.AvailableBatches(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, batches)
}

type joinBatchRequest struct {
	BatchID string `json:"batchId" binding:"required"`
}

// JoinBatch godoc
// @Summary Join a batch
// @Tags student
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body joinBatchRequest true "batch id"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "profile incomplete, level or institution mismatch"
// @Failure 404 {object} util.Response "batch not found"
// @Failure 409 {object} util.Response "batch full"
// @Router /api/student/join-batch [post]
func (c *StudentController) JoinBatch(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req joinBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.StudentService.JoinBatch(claims.UserID, req.BatchID)
	switch {
	case err == nil:
		util.Success(ctx, gin.H{"joined": true})
	case errors.Is(err, util.ErrBatchNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrBatchFull):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrProfileIncomplete),
		errors.Is(err, util.ErrBatchMismatch),
		errors.Is(err, util.ErrBatchLevel):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// BatchStatus godoc
// @Summary Enrollment status for the dashboard
// @Tags student
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.BatchStatus}
// @Router /api/student/batch-status [get]
func (c *StudentController) BatchStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.StudentService.BatchStatus(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// Assessment godoc
// @Summary Fetch the assessment for the student's batch
// @Description Returns either the runnable paper (without correct answers)
// @Description or a locked response with the blocking reason
// @Tags assessment
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.FetchResponse}
// @Router /api/student/assessment [get]
func (c *StudentController) Assessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.AttemptService.FetchForStudent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
