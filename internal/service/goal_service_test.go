package service

import (
	"errors"
	"testing"

	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/util"

	"gorm.io/gorm"
)

func newGoalService(db *gorm.DB) *GoalService {
	return NewGoalService(
		repository.NewGoalRepository(db),
		repository.NewActivityRepository(db),
	)
}

func TestCreateGoalWithMilestones(t *testing.T) {
	db := newTestDB(t)
	svc := newGoalService(db)
	user := createTestUser(t, db, "U", "u@example.com")

	goal, err := svc.CreateGoal(user.ID, CreateGoalRequest{
		Title:    "Learn Go",
		Category: "Learning",
		Milestones: []CreateMilestoneRequest{
			{Title: "Finish tour"},
			{Title: "Build a project"},
		},
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if len(goal.Milestones) != 2 {
		t.Fatalf("expected 2 milestones, got %d", len(goal.Milestones))
	}

	var activities int64
	db.Model(&model.ActivityLog{}).
		Where("user_id = ? AND action = ?", user.ID, "CREATED_GOAL").
		Count(&activities)
	if activities != 1 {
		t.Fatalf("expected one CREATED_GOAL activity, got %d", activities)
	}
}

func TestToggleMilestoneActivityOnlyOnFirstCompletion(t *testing.T) {
	db := newTestDB(t)
	svc := newGoalService(db)
	user := createTestUser(t, db, "U", "u@example.com")

	goal, err := svc.CreateGoal(user.ID, CreateGoalRequest{
		Title:      "Ship",
		Category:   "Work",
		Milestones: []CreateMilestoneRequest{{Title: "MVP"}},
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	milestoneID := goal.Milestones[0].ID

	countActivities := func() int64 {
		var n int64
		db.Model(&model.ActivityLog{}).
			Where("user_id = ? AND action = ?", user.ID, "COMPLETED_MILESTONE").
			Count(&n)
		return n
	}

	// 未完成 -> 完成：写动态
	m, err := svc.ToggleMilestone(user.ID, milestoneID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !m.IsCompleted {
		t.Fatal("milestone should be completed")
	}
	if countActivities() != 1 {
		t.Fatalf("expected 1 activity after first completion, got %d", countActivities())
	}

	// 完成 -> 未完成：不写
	if _, err := svc.ToggleMilestone(user.ID, milestoneID); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if countActivities() != 1 {
		t.Fatalf("uncompleting must not add activity, got %d", countActivities())
	}

	// 再次完成：又写一条
	if _, err := svc.ToggleMilestone(user.ID, milestoneID); err != nil {
		t.Fatalf("toggle third: %v", err)
	}
	if countActivities() != 2 {
		t.Fatalf("re-completion should add activity, got %d", countActivities())
	}
}

func TestToggleMilestoneAlternates(t *testing.T) {
	db := newTestDB(t)
	svc := newGoalService(db)
	user := createTestUser(t, db, "U", "u@example.com")

	goal, err := svc.CreateGoal(user.ID, CreateGoalRequest{
		Title:      "Flip",
		Category:   "Work",
		Milestones: []CreateMilestoneRequest{{Title: "Step"}},
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	milestoneID := goal.Milestones[0].ID

	// 相同调用必须交替，状态只取决于当前值
	want := true
	for i := 0; i < 4; i++ {
		m, err := svc.ToggleMilestone(user.ID, milestoneID)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if m.IsCompleted != want {
			t.Fatalf("toggle %d: expected isCompleted=%v, got %v", i, want, m.IsCompleted)
		}

		var stored model.Milestone
		if err := db.First(&stored, milestoneID).Error; err != nil {
			t.Fatalf("reload milestone: %v", err)
		}
		if stored.IsCompleted != want {
			t.Fatalf("toggle %d: stored isCompleted=%v, want %v", i, stored.IsCompleted, want)
		}
		want = !want
	}
}

func TestToggleMilestoneOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newGoalService(db)
	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	goal, err := svc.CreateGoal(owner.ID, CreateGoalRequest{
		Title:      "Private",
		Category:   "Personal",
		Milestones: []CreateMilestoneRequest{{Title: "Step"}},
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	_, err = svc.ToggleMilestone(other.ID, goal.Milestones[0].ID)
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestDeleteGoalCascadesMilestones(t *testing.T) {
	db := newTestDB(t)
	svc := newGoalService(db)
	user := createTestUser(t, db, "U", "u@example.com")

	goal, err := svc.CreateGoal(user.ID, CreateGoalRequest{
		Title:      "Temp",
		Category:   "Misc",
		Milestones: []CreateMilestoneRequest{{Title: "A"}, {Title: "B"}},
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	if err := svc.DeleteGoal(user.ID, goal.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}

	var count int64
	db.Model(&model.Milestone{}).Where("goal_id = ?", goal.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected milestones removed with goal, got %d", count)
	}

	if _, err := svc.GetGoal(user.ID, goal.ID); !errors.Is(err, util.ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}
