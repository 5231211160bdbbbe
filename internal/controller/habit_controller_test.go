package controller

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/service"

	"github.com/gin-gonic/gin"
)

func TestToggleLogStatusCodes(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "U", "u@example.com")

	svc := service.NewHabitService(repository.NewHabitRepository(db))
	habit, err := svc.CreateHabit(user.ID, service.CreateHabitRequest{Name: "Read"})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	hc := NewHabitController(svc)
	router := newTestRouter(user, func(r *gin.Engine) {
		r.POST("/api/habits/:id/log", hc.ToggleLog)
	})

	toggle := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", fmt.Sprintf("/api/habits/%d/log", habit.ID), nil)
		router.ServeHTTP(w, req)
		return w
	}

	// 打卡创建返回 201
	first := toggle()
	if first.Code != 201 {
		t.Fatalf("expected 201 on check, got %d", first.Code)
	}

	// 取消返回 200 并带提示
	second := toggle()
	if second.Code != 200 {
		t.Fatalf("expected 200 on uncheck, got %d", second.Code)
	}
	if !strings.Contains(second.Body.String(), "Habit unchecked") {
		t.Fatalf("expected uncheck message, got %s", second.Body.String())
	}

	// 再次打卡又是 201
	third := toggle()
	if third.Code != 201 {
		t.Fatalf("expected 201 on re-check, got %d", third.Code)
	}
}
