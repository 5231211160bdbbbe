package controller

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"taskloop_backend/internal/service"
	"taskloop_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseController struct {
	CourseService  *service.CourseService
	StorageService *service.StorageService
}

func NewCourseController(courseService *service.CourseService, storageService *service.StorageService) *CourseController {
	return &CourseController{CourseService: courseService, StorageService: storageService}
}

// ListCourses godoc
// @Summary 课程列表
// @Description 所有课程，登录用户附带已选课程 ID 列表
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response{data=service.CourseList} "成功"
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	list, err := c.CourseService.ListCourses(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, list)
}

// GetCourse godoc
// @Summary 课程详情
// @Description 课程内容加选课状态，课时按顺序解锁
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=service.CourseDetail} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	detail, err := c.CourseService.GetCourse(uint(courseID), userID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.Error(ctx, 404, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 创建课程及嵌套的章节和课时，当前用户为作者
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateCourseRequest true "课程内容"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// Enroll godoc
// @Summary 选课
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Success 201 {object} util.Response{data=model.Enrollment} "选课成功"
// @Failure 400 {object} util.Response "已选过该课程"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	enrollment, err := c.CourseService.Enroll(claims.UserID, uint(courseID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, 400, "Already enrolled in this course")
		case errors.Is(err, util.ErrCourseNotFound):
			util.Error(ctx, 404, "Course not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, enrollment)
}

// CompleteLesson godoc
// @Summary 标记课时完成
// @Description 重复调用幂等，完成后解锁下一课时
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   lessonId path int true "课时 ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "未选课"
// @Failure 404 {object} util.Response "课时不属于该课程"
// @Router /api/courses/{id}/lessons/{lessonId}/complete [post]
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	lessonID, err := strconv.ParseUint(ctx.Param("lessonId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	if err := c.CourseService.CompleteLesson(claims.UserID, uint(courseID), uint(lessonID)); err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnrolled):
			util.Error(ctx, 403, "Not enrolled in this course")
		case errors.Is(err, util.ErrLessonNotFound):
			util.Error(ctx, 404, "Lesson not found in this course")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"completed": true})
}

// GetComments godoc
// @Summary 课程评论列表
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=[]model.Comment} "成功"
// @Router /api/courses/{id}/comments [get]
func (c *CourseController) GetComments(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	comments, err := c.CourseService.GetComments(uint(courseID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, comments)
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddComment godoc
// @Summary 发表课程评论
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   body body AddCommentRequest true "评论内容"
// @Success 201 {object} util.Response{data=model.Comment} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/comments [post]
func (c *CourseController) AddComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CourseService.AddComment(claims.UserID, uint(courseID), req.Content)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.Error(ctx, 404, "Course not found")
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, comment)
}

// UploadLessonVideo godoc
// @Summary 上传课时视频
// @Description 仅课程作者可上传，服务端用 ffprobe 读取时长
// @Tags 课程
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   lessonId path int true "课时 ID"
// @Param   video formData file true "视频文件"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 403 {object} util.Response "非课程作者"
// @Failure 404 {object} util.Response "课时不属于该课程"
// @Router /api/courses/{id}/lessons/{lessonId}/video [post]
func (c *CourseController) UploadLessonVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	lessonID, err := strconv.ParseUint(ctx.Param("lessonId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	// 先校验作者与课时，校验不通过不接收文件
	if err := c.CourseService.AuthorizeLessonVideo(claims.UserID, uint(courseID), uint(lessonID)); err != nil {
		respondLessonVideoError(ctx, err)
		return
	}

	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	// 先落到临时文件，ffprobe 需要本地路径
	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	info, err := util.GetVideoInfo(tmpPath)
	if err != nil {
		util.BadRequest(ctx, "invalid video file")
		return
	}

	filename := fmt.Sprintf("videos/%d/%s%s", courseID, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := c.StorageService.UploadFile(ctx.Request.Context(), filename, tmpPath, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.CourseService.SetLessonVideo(claims.UserID, uint(courseID), uint(lessonID), url, info.Duration); err != nil {
		respondLessonVideoError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"videoUrl": url, "duration": info.Duration})
}

func respondLessonVideoError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrCourseNotFound):
		util.Error(ctx, 404, "Course not found")
	case errors.Is(err, util.ErrLessonNotFound):
		util.Error(ctx, 404, "Lesson not found in this course")
	default:
		util.LogInternalError(ctx, err)
	}
}
