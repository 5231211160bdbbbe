package model

import "time"

type Goal struct {
	BaseModel
	UserID      uint        `gorm:"index;type:bigint unsigned" json:"userId"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Category    string      `gorm:"size:50;not null" json:"category"`
	Deadline    *time.Time  `json:"deadline,omitempty"`
	Milestones  []Milestone `gorm:"foreignKey:GoalID" json:"milestones,omitempty"`
}

func (Goal) TableName() string {
	return "goals"
}

type Milestone struct {
	BaseModel
	GoalID      uint   `gorm:"index;type:bigint unsigned" json:"goalId"`
	Goal        Goal   `gorm:"foreignKey:GoalID" json:"-"`
	Title       string `gorm:"size:255;not null" json:"title"`
	IsCompleted bool   `gorm:"default:false" json:"isCompleted"`
}

func (Milestone) TableName() string {
	return "milestones"
}
