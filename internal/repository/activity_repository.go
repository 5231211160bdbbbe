package repository

import (
	"taskloop_backend/internal/model"

	"gorm.io/gorm"
)

// ActivityRepository 只追加的用户行为流水

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(entry *model.ActivityLog) error {
	return r.DB.Create(entry).Error
}

func (r *ActivityRepository) FindByUserIDs(userIDs []uint, limit int) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	err := r.DB.Preload("User").
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *ActivityRepository) CountByUserAndAction(userID uint, action string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ActivityLog{}).
		Where("user_id = ? AND action = ?", userID, action).
		Count(&count).Error
	return count, err
}
