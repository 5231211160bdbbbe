package repository

import (
	"taskloop_backend/internal/model"

	"gorm.io/gorm"
)

// GoalRepository 处理目标与里程碑的数据访问

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(goal *model.Goal) error {
	return r.DB.Create(goal).Error
}

func (r *GoalRepository) FindByID(id uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.Preload("Milestones").First(&goal, id).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *GoalRepository) FindByUserID(userID uint) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Preload("Milestones").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) Update(goal *model.Goal) error {
	return r.DB.Model(&model.Goal{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"title":       goal.Title,
			"description": goal.Description,
			"category":    goal.Category,
			"deadline":    goal.Deadline,
		}).Error
}

func (r *GoalRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", id).Delete(&model.Milestone{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Goal{}, id).Error
	})
}

func (r *GoalRepository) FindMilestoneByID(id uint) (*model.Milestone, error) {
	var milestone model.Milestone
	err := r.DB.Preload("Goal").First(&milestone, id).Error
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (r *GoalRepository) UpdateMilestoneCompleted(id uint, completed bool) error {
	return r.DB.Model(&model.Milestone{}).
		Where("id = ?", id).
		Update("is_completed", completed).Error
}

func (r *GoalRepository) DeleteMilestone(id uint) error {
	return r.DB.Delete(&model.Milestone{}, id).Error
}
