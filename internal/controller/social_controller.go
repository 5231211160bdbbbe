package controller

import (
	"errors"
	"strconv"

	"taskloop_backend/internal/service"
	"taskloop_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SocialController struct {
	SocialService *service.SocialService
}

func NewSocialController(socialService *service.SocialService) *SocialController {
	return &SocialController{SocialService: socialService}
}

// Follow godoc
// @Summary 关注用户
// @Description 关注成功后给对方发送通知
// @Tags 社交
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "被关注用户 ID"
// @Success 200 {object} util.Response "关注成功"
// @Failure 400 {object} util.Response "不能关注自己或已关注"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id}/follow [post]
func (c *SocialController) Follow(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	followingID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	if err := c.SocialService.Follow(claims.UserID, uint(followingID)); err != nil {
		switch {
		case errors.Is(err, util.ErrSelfFollow):
			util.Error(ctx, 400, "Cannot follow yourself")
		case errors.Is(err, util.ErrAlreadyFollowing):
			util.Error(ctx, 400, "Already following this user")
		case errors.Is(err, util.ErrUserNotFound):
			util.Error(ctx, 404, "User not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"following": true})
}

// Unfollow godoc
// @Summary 取消关注
// @Description 幂等，取消不存在的关注也返回成功
// @Tags 社交
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "被关注用户 ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/users/{id}/follow [delete]
func (c *SocialController) Unfollow(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	followingID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	if err := c.SocialService.Unfollow(claims.UserID, uint(followingID)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"following": false})
}
