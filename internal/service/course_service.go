package service

import (
	"errors"
	"fmt"
	"strings"

	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/util"
	"taskloop_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ActivityRepo   *repository.ActivityRepository
	CommentRepo    *repository.CommentRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	activityRepo *repository.ActivityRepository,
	commentRepo *repository.CommentRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ActivityRepo:   activityRepo,
		CommentRepo:    commentRepo,
	}
}

type CourseSummary struct {
	model.Course
	SectionCount    int64 `json:"sectionCount"`
	EnrollmentCount int64 `json:"enrollmentCount"`
}

type CourseList struct {
	Courses           []CourseSummary `json:"courses"`
	EnrolledCourseIDs []uint          `json:"enrolledCourseIds"`
}

// ListCourses userID 为 0 表示游客
func (s *CourseService) ListCourses(userID uint) (*CourseList, error) {
	courses, err := s.CourseRepo.FindAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		sections, err := s.CourseRepo.CountSections(course.ID)
		if err != nil {
			return nil, err
		}
		enrollments, err := s.CourseRepo.CountEnrollments(course.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, CourseSummary{
			Course:          course,
			SectionCount:    sections,
			EnrollmentCount: enrollments,
		})
	}

	enrolledIDs := []uint{}
	if userID != 0 {
		enrolledIDs, err = s.EnrollmentRepo.FindCourseIDsByUser(userID)
		if err != nil {
			return nil, err
		}
	}

	return &CourseList{Courses: summaries, EnrolledCourseIDs: enrolledIDs}, nil
}

type CourseDetail struct {
	Course             *model.Course  `json:"course"`
	IsEnrolled         bool           `json:"isEnrolled"`
	CompletedLessonIDs []uint         `json:"completedLessonIds"`
	Lessons            []LessonStatus `json:"lessons"`
	EnrollmentCount    int64          `json:"enrollmentCount"`
}

// GetCourse 课程详情，登录用户附带选课与解锁状态
func (s *CourseService) GetCourse(courseID, userID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	enrollmentCount, err := s.CourseRepo.CountEnrollments(courseID)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{
		Course:             course,
		CompletedLessonIDs: []uint{},
		EnrollmentCount:    enrollmentCount,
	}

	if userID != 0 {
		enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
		if err == nil {
			detail.IsEnrolled = true
			detail.CompletedLessonIDs, err = s.EnrollmentRepo.CompletedLessonIDs(enrollment.ID)
			if err != nil {
				return nil, err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	lessons, err := s.CourseRepo.FlattenedLessons(courseID)
	if err != nil {
		return nil, err
	}
	detail.Lessons = ComputeLessonStatus(lessons, detail.CompletedLessonIDs)

	return detail, nil
}

// Enroll 选课。重复选课返回冲突；选课成功后的动态写入失败不回滚，
// 只记日志（两次写入刻意不做事务）。
func (s *CourseService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		// 并发下靠唯一索引兜底，输掉的一方同样报冲突
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}

	if err := s.ActivityRepo.Create(&model.ActivityLog{
		UserID:  userID,
		Action:  "ENROLLED_COURSE",
		Details: fmt.Sprintf("Enrolled in course: %s", course.Title),
	}); err != nil {
		logger.Log.Warn("enroll activity log failed", zap.Uint("userID", userID), zap.Error(err))
	}

	return enrollment, nil
}

// CompleteLesson 标记课时完成（幂等，重复调用刷新完成时间）
func (s *CourseService) CompleteLesson(userID, courseID, lessonID uint) error {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotEnrolled
		}
		return err
	}

	if _, err := s.CourseRepo.FindLessonInCourse(lessonID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}

	return s.EnrollmentRepo.UpsertLessonCompletion(enrollment.ID, lessonID)
}

type CreateLessonRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl"`
	Order    int    `json:"order"`
}

type CreateSectionRequest struct {
	Title   string                `json:"title" binding:"required"`
	Order   int                   `json:"order"`
	Lessons []CreateLessonRequest `json:"lessons"`
}

type CreateCourseRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	Difficulty  string                 `json:"difficulty"`
	ImageURL    string                 `json:"imageUrl"`
	Sections    []CreateSectionRequest `json:"sections"`
}

func (s *CourseService) CreateCourse(authorID uint, req CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		ImageURL:    req.ImageURL,
		AuthorID:    authorID,
	}
	for _, sec := range req.Sections {
		section := model.Section{Title: sec.Title, Order: sec.Order}
		for _, les := range sec.Lessons {
			section.Lessons = append(section.Lessons, model.Lesson{
				Title:    les.Title,
				Content:  les.Content,
				VideoURL: les.VideoURL,
				Order:    les.Order,
			})
		}
		course.Sections = append(course.Sections, section)
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

// AuthorizeLessonVideo 校验课程作者身份与课时归属，文件接收前调用
func (s *CourseService) AuthorizeLessonVideo(userID, courseID, lessonID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if course.AuthorID != userID {
		return util.ErrPermissionDenied
	}

	if _, err := s.CourseRepo.FindLessonInCourse(lessonID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	return nil
}

// SetLessonVideo 仅课程作者可以挂视频
func (s *CourseService) SetLessonVideo(userID, courseID, lessonID uint, videoURL string, duration float64) error {
	if err := s.AuthorizeLessonVideo(userID, courseID, lessonID); err != nil {
		return err
	}
	return s.CourseRepo.UpdateLessonVideo(lessonID, videoURL, duration)
}

func (s *CourseService) AddComment(userID, courseID uint, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("comment content is required")
	}

	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		CourseID: courseID,
		UserID:   userID,
		Content:  content,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CourseService) GetComments(courseID uint) ([]model.Comment, error) {
	return s.CommentRepo.FindByCourse(courseID)
}
