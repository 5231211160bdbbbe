package service

import (
	"errors"
	"time"

	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/util"

	"gorm.io/gorm"
)

type TaskService struct {
	TaskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{TaskRepo: taskRepo}
}

type CreateTaskRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Status      model.TaskStatus   `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
	Priority    model.TaskPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time         `json:"dueDate"`
	Tags        []string           `json:"tags"`
}

type UpdateTaskRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Status      *model.TaskStatus   `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
	Priority    *model.TaskPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time          `json:"dueDate"`
	Tags        []string            `json:"tags"`
}

func (s *TaskService) CreateTask(userID uint, req CreateTaskRequest) (*model.Task, error) {
	task := &model.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskTodo,
		Priority:    model.PriorityMedium,
		DueDate:     req.DueDate,
		Tags:        model.TagList(req.Tags),
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if err := s.TaskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) ListTasks(userID uint, status model.TaskStatus) ([]model.Task, error) {
	return s.TaskRepo.FindByUser(userID, status)
}

// UpdateTask 只允许本人修改，字段为 nil 表示不改
func (s *TaskService) UpdateTask(userID, taskID uint, req UpdateTaskRequest) (*model.Task, error) {
	task, err := s.findOwned(userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Tags != nil {
		task.Tags = model.TagList(req.Tags)
	}

	if err := s.TaskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(userID, taskID uint) error {
	if _, err := s.findOwned(userID, taskID); err != nil {
		return err
	}
	return s.TaskRepo.Delete(taskID)
}

func (s *TaskService) findOwned(userID, taskID uint) (*model.Task, error) {
	task, err := s.TaskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTaskNotFound
		}
		return nil, err
	}
	if task.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return task, nil
}
