package controller

import (
	"errors"
	"strconv"

	"taskloop_backend/internal/service"
	"taskloop_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// ListGoals godoc
// @Summary 目标列表
// @Description 当前用户的目标，含里程碑
// @Tags 目标
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Goal} "成功"
// @Router /api/goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goals, err := c.GoalService.ListGoals(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, goals)
}

// CreateGoal godoc
// @Summary 创建目标
// @Description 目标连同里程碑一次创建
// @Tags 目标
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateGoalRequest true "目标内容"
// @Success 201 {object} util.Response{data=model.Goal} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.CreateGoal(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, goal)
}

// GetGoal godoc
// @Summary 目标详情
// @Tags 目标
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "目标 ID"
// @Success 200 {object} util.Response{data=model.Goal} "成功"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/goals/{id} [get]
func (c *GoalController) GetGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goalID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid goal id")
		return
	}

	goal, err := c.GoalService.GetGoal(claims.UserID, uint(goalID))
	if err != nil {
		respondGoalError(ctx, err)
		return
	}

	util.Success(ctx, goal)
}

// UpdateGoal godoc
// @Summary 更新目标
// @Tags 目标
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "目标 ID"
// @Param   body body service.UpdateGoalRequest true "变更字段"
// @Success 200 {object} util.Response{data=model.Goal} "成功"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/goals/{id} [put]
func (c *GoalController) UpdateGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goalID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid goal id")
		return
	}

	var req service.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.UpdateGoal(claims.UserID, uint(goalID), req)
	if err != nil {
		respondGoalError(ctx, err)
		return
	}

	util.Success(ctx, goal)
}

// DeleteGoal godoc
// @Summary 删除目标
// @Description 目标及其所有里程碑一并删除
// @Tags 目标
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "目标 ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goalID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid goal id")
		return
	}

	if err := c.GoalService.DeleteGoal(claims.UserID, uint(goalID)); err != nil {
		respondGoalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// ToggleMilestone godoc
// @Summary 切换里程碑完成状态
// @Description 无请求体，连续调用在完成与未完成之间交替；首次完成时写入一条动态
// @Tags 目标
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "里程碑 ID"
// @Success 200 {object} util.Response{data=model.Milestone} "成功"
// @Failure 404 {object} util.Response "里程碑不存在"
// @Router /api/milestones/{id} [put]
func (c *GoalController) ToggleMilestone(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	milestoneID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid milestone id")
		return
	}

	milestone, err := c.GoalService.ToggleMilestone(claims.UserID, uint(milestoneID))
	if err != nil {
		respondGoalError(ctx, err)
		return
	}

	util.Success(ctx, milestone)
}

// DeleteMilestone godoc
// @Summary 删除里程碑
// @Tags 目标
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "里程碑 ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "里程碑不存在"
// @Router /api/milestones/{id} [delete]
func (c *GoalController) DeleteMilestone(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	milestoneID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid milestone id")
		return
	}

	if err := c.GoalService.DeleteMilestone(claims.UserID, uint(milestoneID)); err != nil {
		respondGoalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

func respondGoalError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrGoalNotFound):
		util.Error(ctx, 404, "Goal not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
