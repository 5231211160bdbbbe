package model

import "time"

type HabitFrequency string

const (
	FrequencyDaily   HabitFrequency = "DAILY"
	FrequencyWeekly  HabitFrequency = "WEEKLY"
	FrequencyMonthly HabitFrequency = "MONTHLY"
)

type Habit struct {
	BaseModel
	UserID      uint           `gorm:"index;type:bigint unsigned" json:"userId"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Frequency   HabitFrequency `gorm:"size:10;default:'DAILY'" json:"frequency"`
	Goal        int            `gorm:"default:1" json:"goal"`
	Logs        []HabitLog     `gorm:"foreignKey:HabitID" json:"logs,omitempty"`
}

func (Habit) TableName() string {
	return "habits"
}

// HabitLog 打卡记录，(habit, date) 唯一，date 截断到当天零点
type HabitLog struct {
	BaseModel
	HabitID uint      `gorm:"uniqueIndex:idx_habit_date;type:bigint unsigned;not null" json:"habitId"`
	UserID  uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Date    time.Time `gorm:"uniqueIndex:idx_habit_date;not null" json:"date"`
}

func (HabitLog) TableName() string {
	return "habit_logs"
}
