package controller

import (
	"errors"
	"strconv"

	"taskloop_backend/internal/model"
	"taskloop_backend/internal/service"
	"taskloop_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

// ListTasks godoc
// @Summary 任务列表
// @Description 当前用户的任务，可按状态过滤
// @Tags 任务
// @Produce  json
// @Security BearerAuth
// @Param   status query string false "状态过滤" Enums(TODO, IN_PROGRESS, COMPLETED)
// @Success 200 {object} util.Response{data=[]model.Task} "成功"
// @Router /api/tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status := model.TaskStatus(ctx.Query("status"))
	switch status {
	case "", model.TaskTodo, model.TaskInProgress, model.TaskCompleted:
	default:
		util.BadRequest(ctx, "invalid status filter")
		return
	}

	tasks, err := c.TaskService.ListTasks(claims.UserID, status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tasks)
}

// CreateTask godoc
// @Summary 创建任务
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateTaskRequest true "任务内容"
// @Success 201 {object} util.Response{data=model.Task} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.CreateTask(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, task)
}

// UpdateTask godoc
// @Summary 更新任务
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "任务 ID"
// @Param   body body service.UpdateTaskRequest true "变更字段"
// @Success 200 {object} util.Response{data=model.Task} "成功"
// @Failure 403 {object} util.Response "非本人任务"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	taskID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid task id")
		return
	}

	var req service.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.UpdateTask(claims.UserID, uint(taskID), req)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	util.Success(ctx, task)
}

// DeleteTask godoc
// @Summary 删除任务
// @Tags 任务
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "任务 ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "非本人任务"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	taskID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid task id")
		return
	}

	if err := c.TaskService.DeleteTask(claims.UserID, uint(taskID)); err != nil {
		respondTaskError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

func respondTaskError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTaskNotFound):
		util.Error(ctx, 404, "Task not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
