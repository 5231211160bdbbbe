package repository

import (
	"context"
	"fmt"
	"time"

	"taskloop_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type FollowRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewFollowRepository(db *gorm.DB, rdb *redis.Client) *FollowRepository {
	return &FollowRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func (r *FollowRepository) Create(f *model.Follow) error {
	err := r.DB.Create(f).Error
	if err == nil {
		r.invalidateCache(f.FollowerID)
	}
	return err
}

// Delete 删除关注边，返回实际删除的行数（0 表示边不存在）
func (r *FollowRepository) Delete(followerID, followingID uint) (int64, error) {
	res := r.DB.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{})
	if res.Error == nil && res.RowsAffected > 0 {
		r.invalidateCache(followerID)
	}
	return res.RowsAffected, res.Error
}

func (r *FollowRepository) Exists(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *FollowRepository) FollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

// FollowingIDsCached 带 redis 缓存的关注列表，动态流每次请求都要读
func (r *FollowRepository) FollowingIDsCached(userID uint) ([]uint, error) {
	if r.Redis == nil {
		return r.FollowingIDs(userID)
	}

	key := fmt.Sprintf("social:following:%d", userID)
	cached, err := r.Redis.SMembers(r.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		var ids []uint
		for _, s := range cached {
			var id uint
			fmt.Sscanf(s, "%d", &id)
			if id > 0 {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	// 缓存失效，回源数据库
	ids, err := r.FollowingIDs(userID)
	if err == nil && len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(r.ctx, key, id)
		}
		pipe.Expire(r.ctx, key, 24*time.Hour)
		pipe.Exec(r.ctx)
	} else if err == nil {
		// 防止缓存穿透
		r.Redis.SAdd(r.ctx, key, 0)
		r.Redis.Expire(r.ctx, key, 5*time.Minute)
	}
	return ids, err
}

func (r *FollowRepository) invalidateCache(followerID uint) {
	if r.Redis == nil {
		return
	}
	r.Redis.Del(r.ctx, fmt.Sprintf("social:following:%d", followerID))
}
