package handler

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/api/middleware"
	"Atmosphere/internal/pkg/response"
	"Atmosphere/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	otpService  service.OtpService
}

func NewUserHandler(userService service.UserService, otpService service.OtpService) *UserHandler {
	return &UserHandler{userService: userService, otpService: otpService}
}

// SendCode 发送注册验证码
func (h *UserHandler) SendCode(c *gin.Context) {
	var req dto.SendCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.otpService.SendCode(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Register 注册
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, summary)
}

// Login 登录
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	resp, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Logout 登出，token 进黑名单
func (h *UserHandler) Logout(c *gin.Context) {
	v, _ := c.Get(middleware.CtxTokenKey)
	token, _ := v.(string)
	if err := h.userService.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetUserSummary 用户概要
func (h *UserHandler) GetUserSummary(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	summary, err := h.userService.GetUserSummary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// UpdateAvatar 更新当前用户头像
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	var req dto.UpdateAvatarReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	userID := middleware.CurrentUserID(c)
	if err := h.userService.UpdateAvatar(c.Request.Context(), userID, req.AvatarURL); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GrantRole 管理员给用户加角色
func (h *UserHandler) GrantRole(c *gin.Context) {
	var req dto.GrantRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.userService.GrantRole(c.Request.Context(), req.UserID, req.RoleCode); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// RevokeRole 管理员回收用户角色
func (h *UserHandler) RevokeRole(c *gin.Context) {
	var req dto.GrantRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.userService.RevokeRole(c.Request.Context(), req.UserID, req.RoleCode); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
