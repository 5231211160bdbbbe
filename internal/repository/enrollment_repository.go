package repository

import (
	"time"

	"taskloop_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) FindCourseIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ?", userID).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (r *EnrollmentRepository) CompletedLessonIDs(enrollmentID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.EnrollmentLesson{}).
		Where("enrollment_id = ?", enrollmentID).
		Pluck("lesson_id", &ids).Error
	return ids, err
}

// UpsertLessonCompletion 不存在则创建，存在则刷新 completed_at（幂等重复完成）
func (r *EnrollmentRepository) UpsertLessonCompletion(enrollmentID, lessonID uint) error {
	now := time.Now()
	var existing model.EnrollmentLesson
	err := r.DB.Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).First(&existing).Error
	if err == nil {
		return r.DB.Model(&existing).Update("completed_at", now).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.DB.Create(&model.EnrollmentLesson{
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
		CompletedAt:  now,
	}).Error
}

func (r *EnrollmentRepository) CountByUserAndCourse(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count, err
}
