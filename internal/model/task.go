package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// TagList 有序标签列表，数据库中存为 JSON 文本
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	return json.Marshal(t)
}

func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = TagList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return errors.New("unsupported tag list column type")
	}
}

type Task struct {
	BaseModel
	UserID      uint         `gorm:"index;type:bigint unsigned" json:"userId"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"size:20;default:'TODO'" json:"status"`
	Priority    TaskPriority `gorm:"size:10;default:'MEDIUM'" json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Tags        TagList      `gorm:"type:text" json:"tags"`
}

func (Task) TableName() string {
	return "tasks"
}
