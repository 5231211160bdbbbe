package model

import "time"

// Follow 关注关系，有向边，禁止自关注
type Follow struct {
	FollowerID  uint      `gorm:"primaryKey;type:bigint unsigned" json:"followerId"`
	FollowingID uint      `gorm:"primaryKey;type:bigint unsigned" json:"followingId"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Follow) TableName() string {
	return "follows"
}

type NotificationType string

const (
	NotificationFollow NotificationType = "FOLLOW"
)

type Notification struct {
	BaseModel
	UserID  uint             `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Type    NotificationType `gorm:"size:20;not null" json:"type"`
	Message string           `gorm:"size:255;not null" json:"message"`
	Link    string           `gorm:"size:255" json:"link,omitempty"`
	IsRead  bool             `gorm:"default:false" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ActivityLog 用户行为流水，只追加，供关注动态使用
type ActivityLog struct {
	BaseModel
	UserID  uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	User    User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action  string `gorm:"size:50;not null" json:"action"` // ENROLLED_COURSE, COMPLETED_MILESTONE, CREATED_GOAL
	Details string `gorm:"size:255" json:"details"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
