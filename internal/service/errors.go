package service

import "errors"

var (
	UnauthorizedError = errors.New("未登录或登录已过期")

	ErrParamInvalid  = errors.New("参数错误")
	ErrCodeIncorrect = errors.New("验证码错误或已过期")
	ErrSendFrequent  = errors.New("验证码发送过于频繁，请稍后再试")

	ErrEmailTaken        = errors.New("该邮箱已被注册")
	ErrUsernameTaken     = errors.New("该用户名已被占用")
	ErrPasswordIncorrect = errors.New("账号或密码错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserBanned        = errors.New("账号已被封禁")

	ErrSelfFollow      = errors.New("不能关注自己")
	ErrFollowDuplicate = errors.New("已经关注过该用户")
	ErrFollowNotFound  = errors.New("尚未关注该用户")
	ErrFollowLimit     = errors.New("关注数已达上限")

	ErrTargetNotFound  = errors.New("互动目标不存在")
	ErrCrownForbidden  = errors.New("仅投资人可以送出皇冠")
	ErrStartupNotFound = errors.New("创业公司不存在")
	ErrCommentNotFound = errors.New("评论不存在")

	ErrNotificationNotFound = errors.New("通知不存在")

	ErrPermissionDenied = errors.New("没有操作权限")
)

// ErrorMap 业务错误到返回码的映射，未命中的错误按系统异常处理
var ErrorMap = map[error]int{
	UnauthorizedError: 401,

	ErrParamInvalid:  400,
	ErrCodeIncorrect: 400,
	ErrSendFrequent:  400,

	ErrEmailTaken:        409,
	ErrUsernameTaken:     409,
	ErrPasswordIncorrect: 400,
	ErrUserNotFound:      404,
	ErrUserBanned:        403,

	ErrSelfFollow:      400,
	ErrFollowDuplicate: 409,
	ErrFollowNotFound:  404,
	ErrFollowLimit:     400,

	ErrTargetNotFound:  404,
	ErrCrownForbidden:  403,
	ErrStartupNotFound: 404,
	ErrCommentNotFound: 404,

	ErrNotificationNotFound: 404,

	ErrPermissionDenied: 403,
}
