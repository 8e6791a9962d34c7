package service

import (
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/redis"
	"Atmosphere/internal/pkg/util"
	"context"
	log "log/slog"
	"time"
)

const (
	otpCodeLength = 6
	otpCodeTTL    = 10 * time.Minute
	otpSendGap    = time.Minute
)

type OtpService interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
}

type OtpServiceImpl struct {
	sendMail func(email, code string) error
}

func NewOtpService() OtpService {
	return &OtpServiceImpl{sendMail: util.SendVerifyMail}
}

// NewOtpServiceWithSender 注入自定义发送函数
func NewOtpServiceWithSender(sendMail func(email, code string) error) OtpService {
	return &OtpServiceImpl{sendMail: sendMail}
}

// SendCode 生成验证码写入 redis 后经邮件网关下发，同邮箱一分钟内只发一次
func (s *OtpServiceImpl) SendCode(ctx context.Context, email string) error {
	locked, err := redis.TryLock(ctx, consts.OtpSendLock+email, "1", otpSendGap, 0)
	if err != nil {
		return err
	}
	if !locked {
		return ErrSendFrequent
	}

	code := util.GenerateCode(otpCodeLength)
	if err = redis.SetWithExpiration(ctx, consts.OtpCodeKey+email, code, otpCodeTTL); err != nil {
		return err
	}

	if err = s.sendMail(email, code); err != nil {
		log.Error("send verify mail failed", "email", email, "err", err)
		return err
	}
	return nil
}

// VerifyCode 校验并消费验证码，一次性使用
func (s *OtpServiceImpl) VerifyCode(ctx context.Context, email, code string) error {
	stored, err := redis.GetValue(ctx, consts.OtpCodeKey+email)
	if err != nil {
		return err
	}
	if stored == "" || stored != code {
		return ErrCodeIncorrect
	}
	return redis.DeleteKey(ctx, consts.OtpCodeKey+email)
}
