package controller

import (
	"errors"

	"careerpath_backend/internal/service"
	"careerpath_backend/internal/session"
	"careerpath_backend/internal/util"
	"careerpath_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	AttemptService *service.AttemptService
	Sessions       *session.Manager
}

func NewResultController(attemptService *service.AttemptService, sessions *session.Manager) *ResultController {
	return &ResultController{AttemptService: attemptService, Sessions: sessions}
}

// Submit godoc
// @Summary Submit the assessment attempt
// @Description Scores the answers, derives the career profile and stores
// @Description exactly one result per student and batch
// @Tags results
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.SubmitRequest true "answers payload"
// @Success 201 {object} util.Response{data=model.Result}
// @Failure 400 {object} util.Response "invalid payload, no batch or incomplete profile"
// @Failure 403 {object} util.Response "already submitted"
// @Failure 404 {object} util.Response "assessment not available"
// @Router /api/results/submit [post]
func (c *ResultController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		util.BadRequest(ctx, util.ErrValidation.Error())
		return
	}

	result, err := c.AttemptService.Submit(claims.UserID, req)
	switch {
	case err == nil:
		monitoring.SubmissionCounter.WithLabelValues("accepted").Inc()
		if c.Sessions != nil {
			// Keys left behind after a failed cleanup expire via the
			// store TTL.
			_ = c.Sessions.Clear(ctx.Request.Context(), claims.UserID)
		}
		util.Created(ctx, result)
	case errors.Is(err, util.ErrDuplicateAttempt):
		monitoring.SubmissionCounter.WithLabelValues("duplicate").Inc()
		util.Error(ctx, 403, err.Error())
	case errors.Is(err, util.ErrValidation),
		errors.Is(err, util.ErrNotAssigned),
		errors.Is(err, util.ErrProfileIncomplete):
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrAssessmentUnavailable):
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		util.NotFound(ctx, err.Error())
	default:
		monitoring.SubmissionCounter.WithLabelValues("error").Inc()
		util.LogInternalError(ctx, err)
	}
}

// MyResult godoc
// @Summary Fetch the student's stored result
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 404 {object} util.Response "no result yet"
// @Router /api/results/my [get]
func (c *ResultController) MyResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.AttemptService.ResultForStudent(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrResultNotAvailable) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// BatchAnalytics godoc
// @Summary Aggregate scores for a batch
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   batchId path string true "batch id"
// @Success 200 {object} util.Response{data=service.BatchAnalytics}
// @Router /api/admin/batches/{batchId}/analytics [get]
func (c *ResultController) BatchAnalytics(ctx *gin.Context) {
	batchID := ctx.Param("batchId")
	if batchID == "" {
		util.BadRequest(ctx, "batchId is required")
		return
	}

	analytics, err := c.AttemptService.BatchAnalytics(batchID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}
