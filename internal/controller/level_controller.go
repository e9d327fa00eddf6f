package controller

import (
	"errors"

	"toeic_prep_backend/internal/service"
	"toeic_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LevelController struct {
	Service *service.LevelService
}

func NewLevelController(svc *service.LevelService) *LevelController {
	return &LevelController{Service: svc}
}

// @Summary Per-section levels for a learner
// @Tags levels
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "user id"
// @Success 200 {object} util.Response{data=[]service.SectionLevelView}
// @Router /levels/{userId} [get]
func (c *LevelController) GetLevels(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	levels, err := c.Service.ListLevels(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, levels)
}

type applyLevelRequest struct {
	SectionKey string `json:"sectionKey" binding:"required"`
	Level      int    `json:"level" binding:"required,min=1"`
}

// @Summary Apply a level for a section
// @Description Recommendations are advisory; this is the explicit step where the learner accepts one (or keeps the current level)
// @Tags levels
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body applyLevelRequest true "section and level"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /levels [put]
func (c *LevelController) ApplyLevel(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req applyLevelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.ApplyLevel(user.UserID, req.SectionKey, req.Level); err != nil {
		if errors.Is(err, util.ErrLevelOutOfRange) || errors.Is(err, util.ErrSectionKeyRequired) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"sectionKey": req.SectionKey,
		"level":      req.Level,
	})
}
