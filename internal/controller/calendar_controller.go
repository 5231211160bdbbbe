package controller

import (
	"errors"
	"strconv"

	"taskloop_backend/internal/service"
	"taskloop_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CalendarController struct {
	CalendarService *service.CalendarService
}

func NewCalendarController(calendarService *service.CalendarService) *CalendarController {
	return &CalendarController{CalendarService: calendarService}
}

// ListEvents godoc
// @Summary 日程列表
// @Description 当前用户的日程，按开始时间排序
// @Tags 日程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CalendarEvent} "成功"
// @Router /api/calendar [get]
func (c *CalendarController) ListEvents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	events, err := c.CalendarService.ListEvents(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, events)
}

// CreateEvent godoc
// @Summary 创建日程
// @Tags 日程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateEventRequest true "日程内容"
// @Success 201 {object} util.Response{data=model.CalendarEvent} "创建成功"
// @Failure 400 {object} util.Response "结束时间必须晚于开始时间"
// @Router /api/calendar [post]
func (c *CalendarController) CreateEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.CalendarService.CreateEvent(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, event)
}

// UpdateEvent godoc
// @Summary 更新日程
// @Tags 日程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "日程 ID"
// @Param   body body service.UpdateEventRequest true "变更字段"
// @Success 200 {object} util.Response{data=model.CalendarEvent} "成功"
// @Failure 404 {object} util.Response "日程不存在"
// @Router /api/calendar/{id} [put]
func (c *CalendarController) UpdateEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}

	var req service.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.CalendarService.UpdateEvent(claims.UserID, uint(eventID), req)
	if err != nil {
		respondEventError(ctx, err)
		return
	}

	util.Success(ctx, event)
}

// DeleteEvent godoc
// @Summary 删除日程
// @Tags 日程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "日程 ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "日程不存在"
// @Router /api/calendar/{id} [delete]
func (c *CalendarController) DeleteEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}

	if err := c.CalendarService.DeleteEvent(claims.UserID, uint(eventID)); err != nil {
		respondEventError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

func respondEventError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrEventNotFound):
		util.Error(ctx, 404, "Event not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.BadRequest(ctx, err.Error())
	}
}
