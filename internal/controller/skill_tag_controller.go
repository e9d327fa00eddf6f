package controller

import (
	"toeic_prep_backend/internal/service"
	"toeic_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillTagController struct {
	Service *service.SkillTagService
}

func NewSkillTagController(svc *service.SkillTagService) *SkillTagController {
	return &SkillTagController{Service: svc}
}

// @Summary Skill tag dictionary
// @Tags tags
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.SkillTag}
// @Router /tags [get]
func (c *SkillTagController) ListTags(ctx *gin.Context) {
	tags, err := c.Service.ListTags()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tags)
}
