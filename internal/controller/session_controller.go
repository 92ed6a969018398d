package controller

import (
	"errors"

	"careerpath_backend/internal/session"
	"careerpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Sessions *session.Manager
}

func NewSessionController(sessions *session.Manager) *SessionController {
	return &SessionController{Sessions: sessions}
}

// GetState godoc
// @Summary Fetch the persisted exam session state
// @Description Returns the saved session keys so a reload or a device hop
// @Description can resume the running countdown
// @Tags session
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=map[string]string}
// @Router /api/student/session [get]
func (c *SessionController) GetState(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.Sessions.Snapshot(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// SaveState godoc
// @Summary Persist exam session keys
// @Description Accepts only the known session keys; anything else is rejected
// @Tags session
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body map[string]string true "session keys"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "unknown session key"
// @Router /api/student/session [put]
func (c *SessionController) SaveState(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var state map[string]string
	if err := ctx.ShouldBindJSON(&state); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Sessions.Save(ctx.Request.Context(), claims.UserID, state); err != nil {
		if errors.Is(err, session.ErrUnknownKey) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"saved": true})
}

// ClearState godoc
// @Summary Drop the persisted exam session state
// @Tags session
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/student/session [delete]
func (c *SessionController) ClearState(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Sessions.Clear(ctx.Request.Context(), claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"cleared": true})
}
