package service

import (
	"errors"
	"time"

	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/util"

	"gorm.io/gorm"
)

type HabitService struct {
	HabitRepo *repository.HabitRepository
}

func NewHabitService(habitRepo *repository.HabitRepository) *HabitService {
	return &HabitService{HabitRepo: habitRepo}
}

type CreateHabitRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Frequency   model.HabitFrequency `json:"frequency" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
	Goal        int                  `json:"goal"`
}

type UpdateHabitRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Frequency   *model.HabitFrequency `json:"frequency" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
	Goal        *int                  `json:"goal"`
}

func (s *HabitService) CreateHabit(userID uint, req CreateHabitRequest) (*model.Habit, error) {
	habit := &model.Habit{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Frequency:   model.FrequencyDaily,
		Goal:        1,
	}
	if req.Frequency != "" {
		habit.Frequency = req.Frequency
	}
	if req.Goal > 0 {
		habit.Goal = req.Goal
	}
	if err := s.HabitRepo.Create(habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) ListHabits(userID uint) ([]model.Habit, error) {
	return s.HabitRepo.FindByUser(userID)
}

func (s *HabitService) UpdateHabit(userID, habitID uint, req UpdateHabitRequest) (*model.Habit, error) {
	habit, err := s.findOwned(userID, habitID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		habit.Name = *req.Name
	}
	if req.Description != nil {
		habit.Description = *req.Description
	}
	if req.Frequency != nil {
		habit.Frequency = *req.Frequency
	}
	if req.Goal != nil && *req.Goal > 0 {
		habit.Goal = *req.Goal
	}

	if err := s.HabitRepo.Update(habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) DeleteHabit(userID, habitID uint) error {
	if _, err := s.findOwned(userID, habitID); err != nil {
		return err
	}
	return s.HabitRepo.Delete(habitID)
}

type ToggleLogResult struct {
	Checked bool            `json:"checked"`
	Log     *model.HabitLog `json:"log,omitempty"`
	Message string          `json:"message,omitempty"`
}

// TruncateToDay 把时间截断到当天零点，打卡按自然日去重
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ToggleLog 打卡开关。当天没有记录就创建，已有记录就取消，
// 奇数次调用后为已打卡，偶数次回到未打卡。
func (s *HabitService) ToggleLog(userID, habitID uint, date time.Time) (*ToggleLogResult, error) {
	if _, err := s.findOwned(userID, habitID); err != nil {
		return nil, err
	}

	day := TruncateToDay(date)

	existing, err := s.HabitRepo.FindLogByHabitAndDate(habitID, day)
	if err == nil {
		if err := s.HabitRepo.DeleteLog(existing.ID); err != nil {
			return nil, err
		}
		return &ToggleLogResult{Checked: false, Message: "Habit unchecked"}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	log := &model.HabitLog{HabitID: habitID, UserID: userID, Date: day}
	if err := s.HabitRepo.CreateLog(log); err != nil {
		return nil, err
	}
	return &ToggleLogResult{Checked: true, Log: log}, nil
}

// Streak 连续打卡天数，从今天往回数。今天还没打卡不算断，
// 从昨天继续数。
func (s *HabitService) Streak(userID, habitID uint, now time.Time) (int, error) {
	if _, err := s.findOwned(userID, habitID); err != nil {
		return 0, err
	}

	dates, err := s.HabitRepo.FindLogDates(habitID)
	if err != nil {
		return 0, err
	}
	if len(dates) == 0 {
		return 0, nil
	}

	logged := make(map[string]bool, len(dates))
	for _, d := range dates {
		logged[TruncateToDay(d).Format("2006-01-02")] = true
	}

	day := TruncateToDay(now)
	if !logged[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for logged[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

func (s *HabitService) findOwned(userID, habitID uint) (*model.Habit, error) {
	habit, err := s.HabitRepo.FindByID(habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrHabitNotFound
		}
		return nil, err
	}
	if habit.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return habit, nil
}
