package database

import (
	"fmt"
	"testing"

	"taskloop_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", model.GenerateUUID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedCoursesOnce(t *testing.T) {
	db := newTestDB(t)

	if err := SeedCourses(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count != 3 {
		t.Fatalf("expected 3 demo courses, got %d", count)
	}

	// 再跑一遍不重复写
	if err := SeedCourses(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	db.Model(&model.Course{}).Count(&count)
	if count != 3 {
		t.Fatalf("seed must be idempotent, got %d courses", count)
	}

	// 演示课程归属演示作者
	var author model.User
	if err := db.Where("email = ?", "demo@example.com").First(&author).Error; err != nil {
		t.Fatalf("demo author missing: %v", err)
	}

	var sections int64
	db.Model(&model.Section{}).Count(&sections)
	if sections == 0 {
		t.Fatal("seeded courses should have sections")
	}
}

// 时间戳默认值用方言通用的 CURRENT_TIMESTAMP，sqlite 和 mysql 都能建表
func TestUserTimestampDefaults(t *testing.T) {
	db := newTestDB(t)

	u := model.User{Name: "A", Email: "ts@example.com"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	var stored model.User
	if err := db.First(&stored, u.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.LastLogin.IsZero() || stored.LastSeen.IsZero() {
		t.Fatalf("expected database-side defaults, got lastLogin=%v lastSeen=%v",
			stored.LastLogin, stored.LastSeen)
	}
}

func TestDuplicateEmailTranslated(t *testing.T) {
	db := newTestDB(t)

	u := model.User{Name: "A", Email: "same@example.com"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := model.User{Name: "B", Email: "same@example.com"}
	err := db.Create(&dup).Error
	if err != gorm.ErrDuplicatedKey {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}
