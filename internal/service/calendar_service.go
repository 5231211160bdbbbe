package service

import (
	"errors"
	"time"

	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/util"

	"gorm.io/gorm"
)

type CalendarService struct {
	CalendarRepo *repository.CalendarRepository
}

func NewCalendarService(calendarRepo *repository.CalendarRepository) *CalendarService {
	return &CalendarService{CalendarRepo: calendarRepo}
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
	Color       string    `json:"color"`
	AllDay      bool      `json:"allDay"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Color       *string    `json:"color"`
	AllDay      *bool      `json:"allDay"`
}

func (s *CalendarService) CreateEvent(userID uint, req CreateEventRequest) (*model.CalendarEvent, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, errors.New("end time must be after start time")
	}

	event := &model.CalendarEvent{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Color:       req.Color,
		AllDay:      req.AllDay,
	}
	if event.Color == "" {
		event.Color = "purple"
	}
	if err := s.CalendarRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *CalendarService) ListEvents(userID uint) ([]model.CalendarEvent, error) {
	return s.CalendarRepo.FindByUser(userID)
}

func (s *CalendarService) UpdateEvent(userID, eventID uint, req UpdateEventRequest) (*model.CalendarEvent, error) {
	event, err := s.findOwned(userID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.Color != nil {
		event.Color = *req.Color
	}
	if req.AllDay != nil {
		event.AllDay = *req.AllDay
	}

	if !event.EndTime.After(event.StartTime) {
		return nil, errors.New("end time must be after start time")
	}

	if err := s.CalendarRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *CalendarService) DeleteEvent(userID, eventID uint) error {
	if _, err := s.findOwned(userID, eventID); err != nil {
		return err
	}
	return s.CalendarRepo.Delete(eventID)
}

func (s *CalendarService) findOwned(userID, eventID uint) (*model.CalendarEvent, error) {
	event, err := s.CalendarRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEventNotFound
		}
		return nil, err
	}
	if event.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return event, nil
}
