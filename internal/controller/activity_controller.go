package controller

import (
	"taskloop_backend/internal/service"
	"taskloop_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	SocialService *service.SocialService
}

func NewActivityController(socialService *service.SocialService) *ActivityController {
	return &ActivityController{SocialService: socialService}
}

// Feed godoc
// @Summary 动态流
// @Description 自己和关注的人的最新 50 条动态
// @Tags 社交
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ActivityLog} "成功"
// @Router /api/activity [get]
func (c *ActivityController) Feed(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.SocialService.Feed(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
