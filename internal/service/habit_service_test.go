package service

import (
	"errors"
	"testing"
	"time"

	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/util"
)

func TestToggleLogParity(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(repository.NewHabitRepository(db))
	user := createTestUser(t, db, "U", "u@example.com")

	habit, err := svc.CreateHabit(user.ID, CreateHabitRequest{Name: "Read"})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	now := time.Now()

	res, err := svc.ToggleLog(user.ID, habit.ID, now)
	if err != nil {
		t.Fatalf("toggle 1: %v", err)
	}
	if !res.Checked {
		t.Fatal("first toggle should check")
	}

	res, err = svc.ToggleLog(user.ID, habit.ID, now)
	if err != nil {
		t.Fatalf("toggle 2: %v", err)
	}
	if res.Checked {
		t.Fatal("second toggle should uncheck")
	}
	if res.Message != "Habit unchecked" {
		t.Fatalf("unexpected message %q", res.Message)
	}

	res, err = svc.ToggleLog(user.ID, habit.ID, now)
	if err != nil {
		t.Fatalf("toggle 3: %v", err)
	}
	if !res.Checked {
		t.Fatal("third toggle should check again")
	}

	var count int64
	db.Model(&model.HabitLog{}).Where("habit_id = ?", habit.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one log row after odd toggles, got %d", count)
	}
}

func TestToggleLogSameDayDifferentTimes(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(repository.NewHabitRepository(db))
	user := createTestUser(t, db, "U", "u@example.com")

	habit, err := svc.CreateHabit(user.ID, CreateHabitRequest{Name: "Run"})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	morning := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)
	evening := time.Date(2026, 8, 28, 22, 30, 0, 0, time.Local)

	if _, err := svc.ToggleLog(user.ID, habit.ID, morning); err != nil {
		t.Fatalf("morning toggle: %v", err)
	}

	// 同一天的不同时刻命中同一条记录
	res, err := svc.ToggleLog(user.ID, habit.ID, evening)
	if err != nil {
		t.Fatalf("evening toggle: %v", err)
	}
	if res.Checked {
		t.Fatal("evening toggle on the same day should uncheck")
	}
}

func TestStreakCountsBackFromToday(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(repository.NewHabitRepository(db))
	user := createTestUser(t, db, "U", "u@example.com")

	habit, err := svc.CreateHabit(user.ID, CreateHabitRequest{Name: "Meditate"})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.Local)

	// 今天、昨天、前天打卡，大前天断了
	for _, offset := range []int{0, -1, -2, -4} {
		if _, err := svc.ToggleLog(user.ID, habit.ID, now.AddDate(0, 0, offset)); err != nil {
			t.Fatalf("toggle offset %d: %v", offset, err)
		}
	}

	streak, err := svc.Streak(user.ID, habit.ID, now)
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 3 {
		t.Fatalf("expected streak 3, got %d", streak)
	}
}

func TestStreakTodayUnloggedNotBroken(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(repository.NewHabitRepository(db))
	user := createTestUser(t, db, "U", "u@example.com")

	habit, err := svc.CreateHabit(user.ID, CreateHabitRequest{Name: "Water"})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)

	// 昨天和前天打卡，今天还没打
	for _, offset := range []int{-1, -2} {
		if _, err := svc.ToggleLog(user.ID, habit.ID, now.AddDate(0, 0, offset)); err != nil {
			t.Fatalf("toggle offset %d: %v", offset, err)
		}
	}

	streak, err := svc.Streak(user.ID, habit.ID, now)
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 2 {
		t.Fatalf("expected streak 2, got %d", streak)
	}
}

func TestHabitOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(repository.NewHabitRepository(db))
	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	habit, err := svc.CreateHabit(owner.ID, CreateHabitRequest{Name: "Sleep"})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	if _, err := svc.ToggleLog(other.ID, habit.ID, time.Now()); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	if err := svc.DeleteHabit(other.ID, habit.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied on delete, got %v", err)
	}
}

func TestDeleteHabitRemovesLogs(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(repository.NewHabitRepository(db))
	user := createTestUser(t, db, "U", "u@example.com")

	habit, err := svc.CreateHabit(user.ID, CreateHabitRequest{Name: "Gym"})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	if _, err := svc.ToggleLog(user.ID, habit.ID, time.Now()); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := svc.DeleteHabit(user.ID, habit.ID); err != nil {
		t.Fatalf("delete habit: %v", err)
	}

	var count int64
	db.Model(&model.HabitLog{}).Where("habit_id = ?", habit.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected logs removed with habit, got %d rows", count)
	}
}
