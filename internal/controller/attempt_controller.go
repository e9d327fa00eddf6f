package controller

import (
	"errors"
	"strconv"

	"toeic_prep_backend/internal/model"
	"toeic_prep_backend/internal/service"
	"toeic_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	Service *service.AttemptService
}

func NewAttemptController(svc *service.AttemptService) *AttemptController {
	return &AttemptController{Service: svc}
}

// @Summary Submit a completed test
// @Description Grades the submitted answers, stores the attempt and returns score, breakdowns and a level recommendation
// @Tags attempts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitRequest true "submission"
// @Success 201 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /attempts [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMissingUserID),
			errors.Is(err, util.ErrMissingTestID),
			errors.Is(err, util.ErrEmptySubmission):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAnswerKeyUnavail):
			util.ServiceUnavailable(ctx, util.ErrAnswerKeyUnavail.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}

// @Summary Get one attempt
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "attempt id"
// @Success 200 {object} util.Response{data=service.AttemptSummary}
// @Failure 404 {object} util.Response
// @Router /attempts/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	summary, err := c.Service.GetAttempt(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	if user.Role == model.Student && summary.UserID != user.UserID {
		util.Forbidden(ctx)
		return
	}

	util.Success(ctx, summary)
}

// @Summary Latest attempt for a learner
// @Description Returns the most recent attempt, optionally limited to one section. A learner with no attempts gets a normal 200 response.
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "user id"
// @Param section query string false "section key, e.g. part.5"
// @Success 200 {object} util.Response
// @Router /attempts/latest/{userId} [get]
func (c *AttemptController) GetLatest(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	summary, err := c.Service.GetLatest(userID, ctx.Query("section"))
	if errors.Is(err, util.ErrNoAttemptsYet) {
		util.Success(ctx, gin.H{"message": "no attempts yet"})
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// @Summary Attempt history for a learner
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "user id"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /attempts/history/{userId} [get]
func (c *AttemptController) GetHistory(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	summaries, total, err := c.Service.ListHistory(userID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  summaries,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
