package handler

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/api/middleware"
	"Atmosphere/internal/pkg/response"
	"Atmosphere/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StartupHandler struct {
	startupService  service.StartupService
	trendingService service.TrendingService
}

func NewStartupHandler(startupService service.StartupService, trendingService service.TrendingService) *StartupHandler {
	return &StartupHandler{startupService: startupService, trendingService: trendingService}
}

// Create 创建公司主页
func (h *StartupHandler) Create(c *gin.Context) {
	var req dto.CreateStartupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	ownerID := middleware.CurrentUserID(c)

	item, err := h.startupService.CreateStartup(c.Request.Context(), ownerID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, item)
}

// Get 公司主页详情
func (h *StartupHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("startup_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	item, err := h.startupService.GetStartup(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Delete 删除自己的公司主页
func (h *StartupHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("startup_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	operatorID := middleware.CurrentUserID(c)

	if err = h.startupService.DeleteStartup(c.Request.Context(), id, operatorID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Search 全文检索
func (h *StartupHandler) Search(c *gin.Context) {
	var req dto.SearchStartupReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.startupService.SearchStartups(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// Hottest 热度榜
func (h *StartupHandler) Hottest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, err := h.trendingService.GetHottest(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}
