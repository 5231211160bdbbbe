package model

import "time"

// Enrollment 用户选课记录，(user, course) 唯一
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID           uint               `gorm:"uniqueIndex:idx_user_course;type:bigint unsigned;not null" json:"userId"`
	CourseID         uint               `gorm:"uniqueIndex:idx_user_course;type:bigint unsigned;not null" json:"courseId"`
	CompletedLessons []EnrollmentLesson `gorm:"foreignKey:EnrollmentID" json:"completedLessons,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// EnrollmentLesson 课时完成记录，(enrollment, lesson) 唯一
type EnrollmentLesson struct {
	BaseModel
	EnrollmentID uint      `gorm:"uniqueIndex:idx_enrollment_lesson;type:bigint unsigned;not null" json:"enrollmentId"`
	LessonID     uint      `gorm:"uniqueIndex:idx_enrollment_lesson;type:bigint unsigned;not null" json:"lessonId"`
	CompletedAt  time.Time `gorm:"not null" json:"completedAt"`
}

func (EnrollmentLesson) TableName() string {
	return "enrollment_lessons"
}
