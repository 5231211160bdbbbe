package repository

import (
	"sort"

	"taskloop_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

// FindByID 加载课程及按顺序排列的章节/课时
func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Author").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Sections.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Author").Order("created_at DESC").Find(&courses).Error
	return courses, err
}

// FindLessonInCourse 校验课时属于该课程的某个章节
func (r *CourseRepository) FindLessonInCourse(lessonID, courseID uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("lessons.id = ? AND sections.course_id = ?", lessonID, courseID).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// FlattenedLessons 课程的全局课时序列，按 (章节顺序, 课时顺序) 排序
func (r *CourseRepository) FlattenedLessons(courseID uint) ([]model.Lesson, error) {
	var sections []model.Section
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("course_id = ?", courseID).
		Order("sort_order ASC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})

	var lessons []model.Lesson
	for _, s := range sections {
		lessons = append(lessons, s.Lessons...)
	}
	return lessons, nil
}

func (r *CourseRepository) UpdateLessonVideo(lessonID uint, videoURL string, duration float64) error {
	return r.DB.Model(&model.Lesson{}).
		Where("id = ?", lessonID).
		Updates(map[string]interface{}{
			"video_url": videoURL,
			"duration":  duration,
		}).Error
}

func (r *CourseRepository) CountEnrollments(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountSections(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Section{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
