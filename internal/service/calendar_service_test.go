package service

import (
	"errors"
	"testing"
	"time"

	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/util"
)

func TestCreateEventValidatesRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(repository.NewCalendarRepository(db))
	user := createTestUser(t, db, "U", "u@example.com")

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	if _, err := svc.CreateEvent(user.ID, CreateEventRequest{
		Title:     "Bad",
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	}); err == nil {
		t.Fatal("expected error for end before start")
	}

	event, err := svc.CreateEvent(user.ID, CreateEventRequest{
		Title:     "Standup",
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.Color != "purple" {
		t.Fatalf("expected default color purple, got %q", event.Color)
	}
}

func TestListEventsOrderedByStart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(repository.NewCalendarRepository(db))
	user := createTestUser(t, db, "U", "u@example.com")

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{5 * time.Hour, time.Hour, 3 * time.Hour} {
		if _, err := svc.CreateEvent(user.ID, CreateEventRequest{
			Title:     "e",
			StartTime: base.Add(offset),
			EndTime:   base.Add(offset + time.Hour),
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	events, err := svc.ListEvents(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].StartTime.Before(events[i-1].StartTime) {
			t.Fatal("events not ordered by start time")
		}
	}
}

func TestEventOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(repository.NewCalendarRepository(db))
	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	start := time.Now()
	event, err := svc.CreateEvent(owner.ID, CreateEventRequest{
		Title:     "Private",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteEvent(other.ID, event.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	title := "Renamed"
	if _, err := svc.UpdateEvent(other.ID, event.ID, UpdateEventRequest{Title: &title}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied on update, got %v", err)
	}
}
