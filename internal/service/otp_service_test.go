package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOtpSendAndVerify(t *testing.T) {
	newTestRedis(t)
	ctx := context.Background()

	var sentCode string
	svc := NewOtpServiceWithSender(func(email, code string) error {
		sentCode = code
		return nil
	})

	require.NoError(t, svc.SendCode(ctx, "alice@test.dev"))
	require.Len(t, sentCode, 6)

	// 错误验证码
	assert.ErrorIs(t, svc.VerifyCode(ctx, "alice@test.dev", "000000"), ErrCodeIncorrect)

	// 正确验证码一次性消费
	require.NoError(t, svc.VerifyCode(ctx, "alice@test.dev", sentCode))
	assert.ErrorIs(t, svc.VerifyCode(ctx, "alice@test.dev", sentCode), ErrCodeIncorrect)
}

func TestOtpSendFrequencyLimit(t *testing.T) {
	newTestRedis(t)
	ctx := context.Background()

	svc := NewOtpServiceWithSender(func(string, string) error { return nil })

	require.NoError(t, svc.SendCode(ctx, "alice@test.dev"))
	assert.ErrorIs(t, svc.SendCode(ctx, "alice@test.dev"), ErrSendFrequent)

	// 不同邮箱不受影响
	require.NoError(t, svc.SendCode(ctx, "bob@test.dev"))
}
