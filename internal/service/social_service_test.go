package service

import (
	"errors"
	"fmt"
	"testing"

	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/util"
)

func TestFollowSelfRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newSocialService(db)
	user := createTestUser(t, db, "U", "u@example.com")

	if err := svc.Follow(user.ID, user.ID); !errors.Is(err, util.ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
}

func TestFollowDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newSocialService(db)
	a := createTestUser(t, db, "A", "a@example.com")
	b := createTestUser(t, db, "B", "b@example.com")

	if err := svc.Follow(a.ID, b.ID); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	if err := svc.Follow(a.ID, b.ID); !errors.Is(err, util.ErrAlreadyFollowing) {
		t.Fatalf("expected ErrAlreadyFollowing, got %v", err)
	}

	// 反向关注是独立的边
	if err := svc.Follow(b.ID, a.ID); err != nil {
		t.Fatalf("reverse follow: %v", err)
	}
}

func TestFollowCreatesNotification(t *testing.T) {
	db := newTestDB(t)
	svc := newSocialService(db)
	a := createTestUser(t, db, "Alice", "alice@example.com")
	b := createTestUser(t, db, "Bob", "bob@example.com")

	if err := svc.Follow(a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	var n model.Notification
	if err := db.Where("user_id = ?", b.ID).First(&n).Error; err != nil {
		t.Fatalf("notification not created: %v", err)
	}
	if n.Type != model.NotificationFollow {
		t.Fatalf("expected FOLLOW type, got %s", n.Type)
	}
	if n.Message != "Alice started following you" {
		t.Fatalf("unexpected message %q", n.Message)
	}
	if n.Link != fmt.Sprintf("/users/%d", a.ID) {
		t.Fatalf("unexpected link %q", n.Link)
	}
	if n.IsRead {
		t.Fatal("new notification must be unread")
	}
}

func TestUnfollowIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newSocialService(db)
	a := createTestUser(t, db, "A", "a@example.com")
	b := createTestUser(t, db, "B", "b@example.com")

	// 没关注也能取关
	if err := svc.Unfollow(a.ID, b.ID); err != nil {
		t.Fatalf("unfollow absent edge: %v", err)
	}

	if err := svc.Follow(a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := svc.Unfollow(a.ID, b.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if err := svc.Unfollow(a.ID, b.ID); err != nil {
		t.Fatalf("second unfollow: %v", err)
	}

	following, err := svc.IsFollowing(a.ID, b.ID)
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if following {
		t.Fatal("edge should be gone")
	}
}

func TestFeedIncludesOwnAndFollowed(t *testing.T) {
	db := newTestDB(t)
	svc := newSocialService(db)
	activityRepo := repository.NewActivityRepository(db)

	a := createTestUser(t, db, "A", "a@example.com")
	b := createTestUser(t, db, "B", "b@example.com")
	c := createTestUser(t, db, "C", "c@example.com")

	for _, entry := range []model.ActivityLog{
		{UserID: a.ID, Action: "CREATED_GOAL", Details: "own"},
		{UserID: b.ID, Action: "ENROLLED_COURSE", Details: "followed"},
		{UserID: c.ID, Action: "CREATED_GOAL", Details: "stranger"},
	} {
		e := entry
		if err := activityRepo.Create(&e); err != nil {
			t.Fatalf("seed activity: %v", err)
		}
	}

	if err := svc.Follow(a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	feed, err := svc.Feed(a.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(feed))
	}
	for _, entry := range feed {
		if entry.UserID == c.ID {
			t.Fatal("feed must not include strangers")
		}
	}
}

func TestNotificationListAndMarkRead(t *testing.T) {
	db := newTestDB(t)
	social := newSocialService(db)
	svc := NewNotificationService(repository.NewNotificationRepository(db))

	a := createTestUser(t, db, "A", "a@example.com")
	b := createTestUser(t, db, "B", "b@example.com")
	c := createTestUser(t, db, "C", "c@example.com")

	if err := social.Follow(a.ID, c.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := social.Follow(b.ID, c.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	list, err := svc.List(c.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Notifications) != 2 || list.UnreadCount != 2 {
		t.Fatalf("expected 2 unread notifications, got %d/%d", len(list.Notifications), list.UnreadCount)
	}

	if err := svc.MarkAllRead(c.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	list, err = svc.List(c.ID)
	if err != nil {
		t.Fatalf("list after read: %v", err)
	}
	if list.UnreadCount != 0 {
		t.Fatalf("expected 0 unread, got %d", list.UnreadCount)
	}
	if len(list.Notifications) != 2 {
		t.Fatalf("read notifications should remain listed, got %d", len(list.Notifications))
	}
}
