package service

import (
	"fmt"
	"testing"

	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
	"taskloop_backend/pkg/database"
	"taskloop_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试用独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger.Log = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", model.GenerateUUID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, Password: "hashed"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

// createTestCourse 两个章节共四个课时，顺序固定
func createTestCourse(t *testing.T, db *gorm.DB, authorID uint) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:    "Test Course",
		AuthorID: authorID,
		Sections: []model.Section{
			{
				Title: "Section A",
				Order: 1,
				Lessons: []model.Lesson{
					{Title: "Lesson 1", Order: 1},
					{Title: "Lesson 2", Order: 2},
				},
			},
			{
				Title: "Section B",
				Order: 2,
				Lessons: []model.Lesson{
					{Title: "Lesson 3", Order: 1},
					{Title: "Lesson 4", Order: 2},
				},
			},
		},
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create test course: %v", err)
	}
	return course
}

func newCourseService(db *gorm.DB) *CourseService {
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewActivityRepository(db),
		repository.NewCommentRepository(db),
	)
}

func newSocialService(db *gorm.DB) *SocialService {
	return NewSocialService(
		repository.NewFollowRepository(db, nil),
		repository.NewUserRepository(db),
		repository.NewNotificationRepository(db),
		repository.NewActivityRepository(db),
	)
}
