package handler

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/api/middleware"
	"Atmosphere/internal/pkg/response"
	"Atmosphere/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create 发表评论
func (h *CommentHandler) Create(c *gin.Context) {
	startupID, err := strconv.ParseUint(c.Param("startup_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.CreateCommentReq
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	userID := middleware.CurrentUserID(c)

	item, err := h.commentService.CreateComment(c.Request.Context(), userID, startupID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, item)
}

// Delete 删除自己的评论
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := middleware.CurrentUserID(c)

	if err = h.commentService.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetList 评论列表
func (h *CommentHandler) GetList(c *gin.Context) {
	startupID, err := strconv.ParseUint(c.Param("startup_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var page dto.PageQuery
	if err = c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.commentService.GetCommentList(c.Request.Context(), startupID, &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}
