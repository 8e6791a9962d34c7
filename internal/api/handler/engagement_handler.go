package handler

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/api/middleware"
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/response"
	"Atmosphere/internal/service"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementService service.EngagementService
}

func NewEngagementHandler(engagementService service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// Engage 点赞/皇冠/转发
func (h *EngagementHandler) Engage(c *gin.Context) {
	var uri dto.EngageURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, err)
		return
	}
	userID := middleware.CurrentUserID(c)

	resp, err := h.engagementService.Engage(c.Request.Context(), userID,
		model.TargetKind(uri.TargetKind), uri.TargetID, model.EngageKind(uri.Kind))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Disengage 撤销互动
func (h *EngagementHandler) Disengage(c *gin.Context) {
	var uri dto.EngageURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, err)
		return
	}
	userID := middleware.CurrentUserID(c)

	resp, err := h.engagementService.Disengage(c.Request.Context(), userID,
		model.TargetKind(uri.TargetKind), uri.TargetID, model.EngageKind(uri.Kind))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// GetFlags 批量互动标记，列表页一次取齐
func (h *EngagementHandler) GetFlags(c *gin.Context) {
	var req dto.EngagementFlagsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	userID := middleware.CurrentUserID(c)

	resp, err := h.engagementService.GetEngagementFlags(c.Request.Context(), userID,
		model.TargetKind(req.TargetKind), req.TargetIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}
