package controller

import (
	"errors"
	"strconv"
	"time"

	"taskloop_backend/internal/service"
	"taskloop_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HabitController struct {
	HabitService *service.HabitService
}

func NewHabitController(habitService *service.HabitService) *HabitController {
	return &HabitController{HabitService: habitService}
}

// ListHabits godoc
// @Summary 习惯列表
// @Description 当前用户的习惯，含打卡记录
// @Tags 习惯
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Habit} "成功"
// @Router /api/habits [get]
func (c *HabitController) ListHabits(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habits, err := c.HabitService.ListHabits(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, habits)
}

// CreateHabit godoc
// @Summary 创建习惯
// @Tags 习惯
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateHabitRequest true "习惯内容"
// @Success 201 {object} util.Response{data=model.Habit} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/habits [post]
func (c *HabitController) CreateHabit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	habit, err := c.HabitService.CreateHabit(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, habit)
}

// UpdateHabit godoc
// @Summary 更新习惯
// @Tags 习惯
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "习惯 ID"
// @Param   body body service.UpdateHabitRequest true "变更字段"
// @Success 200 {object} util.Response{data=model.Habit} "成功"
// @Failure 404 {object} util.Response "习惯不存在"
// @Router /api/habits/{id} [put]
func (c *HabitController) UpdateHabit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habitID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid habit id")
		return
	}

	var req service.UpdateHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	habit, err := c.HabitService.UpdateHabit(claims.UserID, uint(habitID), req)
	if err != nil {
		respondHabitError(ctx, err)
		return
	}

	util.Success(ctx, habit)
}

// DeleteHabit godoc
// @Summary 删除习惯
// @Description 习惯及其所有打卡记录一并删除
// @Tags 习惯
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "习惯 ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "习惯不存在"
// @Router /api/habits/{id} [delete]
func (c *HabitController) DeleteHabit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habitID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid habit id")
		return
	}

	if err := c.HabitService.DeleteHabit(claims.UserID, uint(habitID)); err != nil {
		respondHabitError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

type ToggleLogRequest struct {
	Date *time.Time `json:"date"`
}

// ToggleLog godoc
// @Summary 打卡开关
// @Description 当天没打卡就打卡，已打卡就取消，按自然日去重
// @Tags 习惯
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "习惯 ID"
// @Param   body body ToggleLogRequest false "打卡日期，缺省为今天"
// @Success 201 {object} util.Response{data=service.ToggleLogResult} "打卡成功"
// @Success 200 {object} util.Response{data=service.ToggleLogResult} "取消打卡"
// @Failure 404 {object} util.Response "习惯不存在"
// @Router /api/habits/{id}/log [post]
func (c *HabitController) ToggleLog(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habitID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid habit id")
		return
	}

	var req ToggleLogRequest
	ctx.ShouldBindJSON(&req)
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	result, err := c.HabitService.ToggleLog(claims.UserID, uint(habitID), date)
	if err != nil {
		respondHabitError(ctx, err)
		return
	}

	// 打卡创建返回 201，取消返回 200
	if result.Checked {
		util.Created(ctx, result)
	} else {
		util.Success(ctx, result)
	}
}

// GetStreak godoc
// @Summary 连续打卡天数
// @Description 从今天往回数，今天未打卡不算断
// @Tags 习惯
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "习惯 ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "习惯不存在"
// @Router /api/habits/{id}/streak [get]
func (c *HabitController) GetStreak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habitID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid habit id")
		return
	}

	streak, err := c.HabitService.Streak(claims.UserID, uint(habitID), time.Now())
	if err != nil {
		respondHabitError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"streak": streak})
}

func respondHabitError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrHabitNotFound):
		util.Error(ctx, 404, "Habit not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
