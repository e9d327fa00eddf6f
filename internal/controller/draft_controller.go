package controller

import (
	"toeic_prep_backend/internal/service"
	"toeic_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DraftController struct {
	Service *service.DraftService
}

func NewDraftController(svc *service.DraftService) *DraftController {
	return &DraftController{Service: svc}
}

// @Summary Autosave a test draft
// @Description Replaces the draft for (testType, testKey) entirely and resets its seven-day expiry
// @Tags drafts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.DraftSaveRequest true "draft payload"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /drafts [post]
func (c *DraftController) Save(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.DraftSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft, err := c.Service.Save(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"savedAt": draft.SavedAt,
	})
}

// @Summary Load a test draft
// @Description Returns null for a missing or expired draft; lapsing is silent
// @Tags drafts
// @Produce json
// @Security ApiKeyAuth
// @Param testType path string true "test type"
// @Param testKey path string true "test key"
// @Success 200 {object} util.Response
// @Router /drafts/{testType}/{testKey} [get]
func (c *DraftController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	draft, err := c.Service.Get(ctx.Request.Context(), user.UserID, ctx.Param("testType"), ctx.Param("testKey"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"draft": draft})
}

// @Summary Discard a test draft
// @Tags drafts
// @Produce json
// @Security ApiKeyAuth
// @Param testType path string true "test type"
// @Param testKey path string true "test key"
// @Success 200 {object} util.Response
// @Router /drafts/{testType}/{testKey} [delete]
func (c *DraftController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.Discard(ctx.Request.Context(), user.UserID, ctx.Param("testType"), ctx.Param("testKey")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
