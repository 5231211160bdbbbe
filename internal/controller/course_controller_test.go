package controller

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"taskloop_backend/internal/config"
	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/service"

	"github.com/gin-gonic/gin"
)

func TestUploadLessonVideoRejectsNonAuthorBeforeStore(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "Author", "author@example.com")
	intruder := createTestUser(t, db, "Intruder", "intruder@example.com")

	course := &model.Course{
		Title:    "Video Course",
		AuthorID: author.ID,
		Sections: []model.Section{
			{Title: "Intro", Order: 1, Lessons: []model.Lesson{{Title: "L1", Order: 1}}},
		},
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	lessonID := course.Sections[0].Lessons[0].ID

	courseSvc := service.NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewActivityRepository(db),
		repository.NewCommentRepository(db),
	)
	storageDir := t.TempDir()
	storageSvc := service.NewStorageService(&config.Config{
		Storage: config.StorageConfig{Type: "local", LocalPath: storageDir},
	})

	cc := NewCourseController(courseSvc, storageSvc)
	router := newTestRouter(intruder, func(r *gin.Engine) {
		r.POST("/api/courses/:id/lessons/:lessonId/video", cc.UploadLessonVideo)
	})

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("video", "clip.mp4")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fw.Write([]byte("fake video bytes"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST",
		fmt.Sprintf("/api/courses/%d/lessons/%d/video", course.ID, lessonID), body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	if w.Code != 403 {
		t.Fatalf("expected 403 for non-author, got %d", w.Code)
	}

	// 校验失败时文件不能落入存储
	entries, err := os.ReadDir(storageDir)
	if err != nil {
		t.Fatalf("read storage dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("storage must stay empty after rejected upload, found %d entries", len(entries))
	}
}
