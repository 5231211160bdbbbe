package service

import (
	"errors"
	"fmt"

	"taskloop_backend/internal/model"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/util"
	"taskloop_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SocialService struct {
	FollowRepo       *repository.FollowRepository
	UserRepo         *repository.UserRepository
	NotificationRepo *repository.NotificationRepository
	ActivityRepo     *repository.ActivityRepository
}

func NewSocialService(
	followRepo *repository.FollowRepository,
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	activityRepo *repository.ActivityRepository,
) *SocialService {
	return &SocialService{
		FollowRepo:       followRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		ActivityRepo:     activityRepo,
	}
}

// Follow 关注用户，成功后给被关注方发一条通知
func (s *SocialService) Follow(followerID, followingID uint) error {
	if followerID == followingID {
		return util.ErrSelfFollow
	}

	follower, err := s.UserRepo.FindByID(followerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	if _, err := s.UserRepo.FindByID(followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	exists, err := s.FollowRepo.Exists(followerID, followingID)
	if err != nil {
		return err
	}
	if exists {
		return util.ErrAlreadyFollowing
	}

	if err := s.FollowRepo.Create(&model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrAlreadyFollowing
		}
		return err
	}

	if err := s.NotificationRepo.Create(&model.Notification{
		UserID:  followingID,
		Type:    model.NotificationFollow,
		Message: fmt.Sprintf("%s started following you", follower.Name),
		Link:    fmt.Sprintf("/users/%d", followerID),
	}); err != nil {
		logger.Log.Warn("follow notification failed", zap.Uint("followingID", followingID), zap.Error(err))
	}

	return nil
}

// Unfollow 取消关注。关注边不存在也算成功，取关是幂等操作。
func (s *SocialService) Unfollow(followerID, followingID uint) error {
	_, err := s.FollowRepo.Delete(followerID, followingID)
	return err
}

func (s *SocialService) IsFollowing(followerID, followingID uint) (bool, error) {
	return s.FollowRepo.Exists(followerID, followingID)
}

// Feed 动态流：自己加上所有关注的人，最新 50 条
func (s *SocialService) Feed(userID uint) ([]model.ActivityLog, error) {
	followingIDs, err := s.FollowRepo.FollowingIDsCached(userID)
	if err != nil {
		return nil, err
	}

	ids := append([]uint{userID}, followingIDs...)
	entries, err := s.ActivityRepo.FindByUserIDs(ids, 50)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.ActivityLog{}
	}
	return entries, nil
}
