package handler

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/api/middleware"
	"Atmosphere/internal/pkg/response"
	"Atmosphere/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentService service.ContentService
}

func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// CreatePost 发动态
func (h *ContentHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	userID := middleware.CurrentUserID(c)

	item, err := h.contentService.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, item)
}

// GetPost 动态详情
func (h *ContentHandler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	item, err := h.contentService.GetPost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// GetPostList 用户动态列表
func (h *ContentHandler) GetPostList(c *gin.Context) {
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

	items, err := h.contentService.GetPostList(c.Request.Context(), userID, &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// CreateReel 发短视频
func (h *ContentHandler) CreateReel(c *gin.Context) {
	var req dto.CreateReelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	userID := middleware.CurrentUserID(c)

	item, err := h.contentService.CreateReel(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, item)
}

// GetReel 短视频详情
func (h *ContentHandler) GetReel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("reel_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	item, err := h.contentService.GetReel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// GetReelList 用户短视频列表
func (h *ContentHandler) GetReelList(c *gin.Context) {
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

	items, err := h.contentService.GetReelList(c.Request.Context(), userID, &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}
