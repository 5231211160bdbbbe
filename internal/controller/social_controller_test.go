package controller

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/service"

	"github.com/gin-gonic/gin"
)

func TestFollowStatusCodes(t *testing.T) {
	db := newTestDB(t)
	follower := createTestUser(t, db, "Alice", "alice@example.com")
	followee := createTestUser(t, db, "Bob", "bob@example.com")

	svc := service.NewSocialService(
		repository.NewFollowRepository(db, nil),
		repository.NewUserRepository(db),
		repository.NewNotificationRepository(db),
		repository.NewActivityRepository(db),
	)
	sc := NewSocialController(svc)
	router := newTestRouter(follower, func(r *gin.Engine) {
		r.POST("/api/users/:id/follow", sc.Follow)
	})

	follow := func(targetID uint) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", fmt.Sprintf("/api/users/%d/follow", targetID), nil)
		router.ServeHTTP(w, req)
		return w
	}

	if w := follow(followee.ID); w.Code != 200 {
		t.Fatalf("expected 200 on follow, got %d", w.Code)
	}
	if w := follow(follower.ID); w.Code != 400 {
		t.Fatalf("expected 400 on self follow, got %d", w.Code)
	}
	if w := follow(followee.ID); w.Code != 400 {
		t.Fatalf("expected 400 on duplicate follow, got %d", w.Code)
	}
}
