package service

import (
	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
)

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo}
}

type NotificationList struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int64                `json:"unreadCount"`
}

// List 最新 50 条加未读数
func (s *NotificationService) List(userID uint) (*NotificationList, error) {
	notifications, err := s.NotificationRepo.FindByUser(userID, 50)
	if err != nil {
		return nil, err
	}
	unread, err := s.NotificationRepo.CountUnread(userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return &NotificationList{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.NotificationRepo.MarkAllRead(userID)
}
