package service

import (
	"errors"
	"fmt"
	"time"

	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/util"
	"taskloop_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GoalService struct {
	GoalRepo     *repository.GoalRepository
	ActivityRepo *repository.ActivityRepository
}

func NewGoalService(goalRepo *repository.GoalRepository, activityRepo *repository.ActivityRepository) *GoalService {
	return &GoalService{GoalRepo: goalRepo, ActivityRepo: activityRepo}
}

type CreateMilestoneRequest struct {
	Title string `json:"title" binding:"required"`
}

type CreateGoalRequest struct {
	Title       string                   `json:"title" binding:"required"`
	Description string                   `json:"description"`
	Category    string                   `json:"category" binding:"required"`
	Deadline    *time.Time               `json:"deadline"`
	Milestones  []CreateMilestoneRequest `json:"milestones"`
}

type UpdateGoalRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Deadline    *time.Time `json:"deadline"`
}

// CreateGoal 目标连同里程碑一次建好，并写一条 CREATED_GOAL 动态
func (s *GoalService) CreateGoal(userID uint, req CreateGoalRequest) (*model.Goal, error) {
	goal := &model.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Deadline:    req.Deadline,
	}
	for _, m := range req.Milestones {
		goal.Milestones = append(goal.Milestones, model.Milestone{Title: m.Title})
	}

	if err := s.GoalRepo.Create(goal); err != nil {
		return nil, err
	}

	if err := s.ActivityRepo.Create(&model.ActivityLog{
		UserID:  userID,
		Action:  "CREATED_GOAL",
		Details: fmt.Sprintf("Created a new goal: %s", goal.Title),
	}); err != nil {
		logger.Log.Warn("goal activity log failed", zap.Uint("userID", userID), zap.Error(err))
	}

	return goal, nil
}

func (s *GoalService) ListGoals(userID uint) ([]model.Goal, error) {
	return s.GoalRepo.FindByUserID(userID)
}

func (s *GoalService) GetGoal(userID, goalID uint) (*model.Goal, error) {
	return s.findOwned(userID, goalID)
}

func (s *GoalService) UpdateGoal(userID, goalID uint, req UpdateGoalRequest) (*model.Goal, error) {
	goal, err := s.findOwned(userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.Category != nil {
		goal.Category = *req.Category
	}
	if req.Deadline != nil {
		goal.Deadline = req.Deadline
	}

	if err := s.GoalRepo.Update(goal); err != nil {
		return nil, err
	}
	return s.GoalRepo.FindByID(goalID)
}

func (s *GoalService) DeleteGoal(userID, goalID uint) error {
	if _, err := s.findOwned(userID, goalID); err != nil {
		return err
	}
	return s.GoalRepo.Delete(goalID)
}

// ToggleMilestone 翻转里程碑完成状态，连续调用在完成与未完成之间交替。
// 只有未完成到完成的变化才写动态，反向取消不写。
func (s *GoalService) ToggleMilestone(userID, milestoneID uint) (*model.Milestone, error) {
	milestone, err := s.GoalRepo.FindMilestoneByID(milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGoalNotFound
		}
		return nil, err
	}
	if milestone.Goal.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	completed := !milestone.IsCompleted
	if err := s.GoalRepo.UpdateMilestoneCompleted(milestoneID, completed); err != nil {
		return nil, err
	}
	milestone.IsCompleted = completed

	if completed {
		if err := s.ActivityRepo.Create(&model.ActivityLog{
			UserID:  userID,
			Action:  "COMPLETED_MILESTONE",
			Details: fmt.Sprintf("Completed milestone: %s", milestone.Title),
		}); err != nil {
			logger.Log.Warn("milestone activity log failed", zap.Uint("userID", userID), zap.Error(err))
		}
	}

	return milestone, nil
}

func (s *GoalService) DeleteMilestone(userID, milestoneID uint) error {
	milestone, err := s.GoalRepo.FindMilestoneByID(milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrGoalNotFound
		}
		return err
	}
	if milestone.Goal.UserID != userID {
		return util.ErrPermissionDenied
	}
	return s.GoalRepo.DeleteMilestone(milestoneID)
}

func (s *GoalService) findOwned(userID, goalID uint) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGoalNotFound
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return goal, nil
}
