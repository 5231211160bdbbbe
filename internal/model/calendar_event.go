package model

import "time"

type CalendarEvent struct {
	BaseModel
	UserID      uint      `gorm:"index;type:bigint unsigned" json:"userId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartTime   time.Time `gorm:"not null" json:"startTime"`
	EndTime     time.Time `gorm:"not null" json:"endTime"`
	Color       string    `gorm:"size:20;default:'purple'" json:"color"`
	AllDay      bool      `gorm:"default:false" json:"allDay"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}
