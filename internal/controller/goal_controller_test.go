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

func TestToggleMilestoneEndpointAlternates(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "U", "u@example.com")

	svc := service.NewGoalService(
		repository.NewGoalRepository(db),
		repository.NewActivityRepository(db),
	)
	goal, err := svc.CreateGoal(user.ID, service.CreateGoalRequest{
		Title:      "Ship",
		Category:   "Work",
		Milestones: []service.CreateMilestoneRequest{{Title: "MVP"}},
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	gc := NewGoalController(svc)
	router := newTestRouter(user, func(r *gin.Engine) {
		r.PUT("/api/milestones/:id", gc.ToggleMilestone)
	})

	// 无请求体，连续两次相同调用必须交替
	toggle := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", fmt.Sprintf("/api/milestones/%d", goal.Milestones[0].ID), nil)
		router.ServeHTTP(w, req)
		return w
	}

	first := toggle()
	if first.Code != 200 {
		t.Fatalf("expected 200, got %d", first.Code)
	}
	if !strings.Contains(first.Body.String(), `"isCompleted":true`) {
		t.Fatalf("first toggle should complete, got %s", first.Body.String())
	}

	second := toggle()
	if second.Code != 200 {
		t.Fatalf("expected 200, got %d", second.Code)
	}
	if !strings.Contains(second.Body.String(), `"isCompleted":false`) {
		t.Fatalf("second toggle should uncomplete, got %s", second.Body.String())
	}
}
