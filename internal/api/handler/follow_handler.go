package handler

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/api/middleware"
	"Atmosphere/internal/pkg/response"
	"Atmosphere/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followService service.UserFollowService
}

func NewFollowHandler(followService service.UserFollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow 关注用户
func (h *FollowHandler) Follow(c *gin.Context) {
	followingID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	followerID := middleware.CurrentUserID(c)

	if err = h.followService.Follow(c.Request.Context(), followerID, followingID); err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, nil)
}

// Unfollow 取消关注
func (h *FollowHandler) Unfollow(c *gin.Context) {
	followingID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	followerID := middleware.CurrentUserID(c)

	if err = h.followService.Unfollow(c.Request.Context(), followerID, followingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetFollowingList 关注列表
func (h *FollowHandler) GetFollowingList(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var page dto.PageQuery
	if err = c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.followService.GetFollowingList(c.Request.Context(), userID, &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// GetFollowerList 粉丝列表
func (h *FollowHandler) GetFollowerList(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var page dto.PageQuery
	if err = c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.followService.GetFollowerList(c.Request.Context(), userID, &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// CheckFollow 当前用户是否关注了目标用户
func (h *FollowHandler) CheckFollow(c *gin.Context) {
	followingID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	followerID := middleware.CurrentUserID(c)

	isFollowing, err := h.followService.IsFollowing(c.Request.Context(), followerID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"isFollowing": isFollowing})
}

// GetFollowCounts 关注与粉丝计数
func (h *FollowHandler) GetFollowCounts(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	resp, err := h.followService.GetFollowCounts(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}
