package util

import (
	"Atmosphere/internal/api/config"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// SendVerifyMail 通过邮件网关下发验证码
func SendVerifyMail(email string, code string) error {
	cfg := config.Cfg.Mail

	client := resty.New().SetTimeout(5 * time.Second)
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+cfg.ApiKey).
		SetBody(map[string]string{
			"from":    cfg.Sender,
			"to":      email,
			"subject": "Atmosphere 验证码",
			"text":    fmt.Sprintf("您的验证码是 %s，10 分钟内有效。", code),
		}).
		Post(cfg.URL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errors.New("mail gateway responded " + resp.Status())
	}
	return nil
}
