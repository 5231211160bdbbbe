package repository

import (
	"time"

	"taskloop_backend/internal/model"

	"gorm.io/gorm"
)

type HabitRepository struct {
	DB *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{DB: db}
}

func (r *HabitRepository) Create(habit *model.Habit) error {
	return r.DB.Create(habit).Error
}

func (r *HabitRepository) FindByID(id uint) (*model.Habit, error) {
	var habit model.Habit
	err := r.DB.First(&habit, id).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *HabitRepository) FindByUser(userID uint) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.DB.
		Preload("Logs", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&habits).Error
	return habits, err
}

func (r *HabitRepository) Update(habit *model.Habit) error {
	return r.DB.Save(habit).Error
}

func (r *HabitRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&model.HabitLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Habit{}, id).Error
	})
}

func (r *HabitRepository) FindLogByHabitAndDate(habitID uint, date time.Time) (*model.HabitLog, error) {
	var log model.HabitLog
	err := r.DB.Where("habit_id = ? AND date = ?", habitID, date).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *HabitRepository) CreateLog(log *model.HabitLog) error {
	return r.DB.Create(log).Error
}

func (r *HabitRepository) DeleteLog(id uint) error {
	return r.DB.Unscoped().Delete(&model.HabitLog{}, id).Error
}

// FindLogDates 打卡日期，按日期倒序
func (r *HabitRepository) FindLogDates(habitID uint) ([]time.Time, error) {
	var dates []time.Time
	err := r.DB.Model(&model.HabitLog{}).
		Where("habit_id = ?", habitID).
		Order("date DESC").
		Pluck("date", &dates).Error
	return dates, err
}
