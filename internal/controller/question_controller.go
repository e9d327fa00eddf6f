package controller

import (
	"toeic_prep_backend/internal/service"
	"toeic_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary Questions for a test
// @Description Serves the learner-facing question set. Correct answers are never included.
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param testId path string true "test id"
// @Success 200 {object} util.Response{data=[]model.StudentQuestion}
// @Router /tests/{testId}/questions [get]
func (c *QuestionController) ListTestQuestions(ctx *gin.Context) {
	questions, err := c.Service.ListTestQuestions(ctx.Param("testId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}
