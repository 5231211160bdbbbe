package database

import (
	"fmt"
	"log"

	"taskloop_backend/internal/config"
	"taskloop_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认不自动迁移，用 -migrate 强制
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		if err := SeedCourses(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Section{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.EnrollmentLesson{},
		&model.Goal{},
		&model.Milestone{},
		&model.Task{},
		&model.Habit{},
		&model.HabitLog{},
		&model.CalendarEvent{},
		&model.Follow{},
		&model.Notification{},
		&model.ActivityLog{},
		&model.Comment{},
	)
}

type seedLesson struct {
	Title   string
	Content string
}

type seedSection struct {
	Title   string
	Lessons []seedLesson
}

type seedCourse struct {
	Title       string
	Description string
	Difficulty  string
	ImageURL    string
	Sections    []seedSection
}

// SeedCourses 课程表为空时写入演示课程
func SeedCourses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	author := model.User{
		Name:  "Demo User",
		Email: "demo@example.com",
	}
	if err := db.Where("email = ?", author.Email).FirstOrCreate(&author).Error; err != nil {
		return err
	}

	seeds := []seedCourse{
		{
			Title:       "Fullstack Web Development",
			Description: "Master the art of web development with this comprehensive course covering React, Node.js, and PostgreSQL.",
			Difficulty:  "Intermediate",
			ImageURL:    "https://images.unsplash.com/photo-1498050108023-c5249f4df085?auto=format&fit=crop&w=800&q=80",
			Sections: []seedSection{
				{
					Title: "Introduction to Web Dev",
					Lessons: []seedLesson{
						{"How the Web Works", "The web is a system of interlinked hypertext documents accessed via the Internet."},
						{"Setting up your Environment", "Install VS Code, Node.js, and Git to get started."},
					},
				},
				{
					Title: "Frontend Fundamentals",
					Lessons: []seedLesson{
						{"HTML5 Basics", "HTML is the standard markup language for documents designed to be displayed in a web browser."},
						{"CSS3 Styling", "Cascading Style Sheets (CSS) is a style sheet language used for describing the presentation of a document."},
						{"JavaScript Essentials", "JavaScript is a programming language that is one of the core technologies of the World Wide Web."},
					},
				},
			},
		},
		{
			Title:       "UI/UX Design Principles",
			Description: "Learn how to design beautiful and functional user interfaces. Covers color theory, typography, and layout.",
			Difficulty:  "Beginner",
			ImageURL:    "https://images.unsplash.com/photo-1561070791-2526d30994b5?auto=format&fit=crop&w=800&q=80",
			Sections: []seedSection{
				{
					Title: "Design Basics",
					Lessons: []seedLesson{
						{"Color Theory", "Color theory is a body of practical guidance to color mixing and the visual effects of a specific color combination."},
						{"Typography", "Typography is the art and technique of arranging type to make written language legible, readable, and appealing."},
					},
				},
			},
		},
		{
			Title:       "Advanced Python Programming",
			Description: "Take your Python skills to the next level. Learn about decorators, generators, and metaclasses.",
			Difficulty:  "Advanced",
			ImageURL:    "https://images.unsplash.com/photo-1526374965328-7f61d4dc18c5?auto=format&fit=crop&w=800&q=80",
			Sections: []seedSection{
				{
					Title: "Advanced Concepts",
					Lessons: []seedLesson{
						{"Decorators", "Decorators are a very powerful and useful tool in Python since it allows programmers to modify the behaviour of function or class."},
						{"Generators", "Generators are a simple way of creating iterators."},
					},
				},
			},
		},
	}

	for _, s := range seeds {
		course := model.Course{
			Title:       s.Title,
			Description: s.Description,
			Difficulty:  s.Difficulty,
			ImageURL:    s.ImageURL,
			AuthorID:    author.ID,
		}
		for si, sec := range s.Sections {
			section := model.Section{Title: sec.Title, Order: si + 1}
			for li, les := range sec.Lessons {
				section.Lessons = append(section.Lessons, model.Lesson{
					Title:   les.Title,
					Content: les.Content,
					Order:   li + 1,
				})
			}
			course.Sections = append(course.Sections, section)
		}
		if err := db.Create(&course).Error; err != nil {
			return err
		}
	}

	return nil
}
