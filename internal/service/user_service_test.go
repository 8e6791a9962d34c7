package service

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB) UserService {
	t.Helper()
	newTestRedis(t)

	return NewUserService(
		repository.NewUserRepo(db),
		repository.NewRoleRepo(db),
		repository.NewUserRolesRepo(db),
		NewOtpServiceWithSender(func(string, string) error { return nil }),
	)
}

func seedRoles(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, code := range []string{consts.RoleInvestor, consts.RoleStartup, consts.RolePersonal, consts.RoleAdmin} {
		require.NoError(t, db.Create(&model.Role{Code: code, Name: code}).Error)
	}
}

func sendAndCapture(t *testing.T, db *gorm.DB) (UserService, func(email string) string) {
	t.Helper()
	newTestRedis(t)

	codes := map[string]string{}
	otpService := NewOtpServiceWithSender(func(email, code string) error {
		codes[email] = code
		return nil
	})
	svc := NewUserService(
		repository.NewUserRepo(db),
		repository.NewRoleRepo(db),
		repository.NewUserRolesRepo(db),
		otpService,
	)
	return svc, func(email string) string {
		require.NoError(t, otpService.SendCode(context.Background(), email))
		return codes[email]
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, sendCode := sendAndCapture(t, db)
	ctx := context.Background()

	code := sendCode("alice@test.dev")
	summary, err := svc.Register(ctx, &dto.RegisterReq{
		Email:    "alice@test.dev",
		Username: "alice",
		Password: "s3cret-pass",
		Role:     "investor",
		Code:     code,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", summary.Username)
	assert.Equal(t, []string{consts.RoleInvestor}, summary.Roles)

	// 邮箱和用户名都能登录
	resp, err := svc.Login(ctx, &dto.LoginReq{Account: "alice@test.dev", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, summary.ID, resp.User.ID)

	resp, err = svc.Login(ctx, &dto.LoginReq{Account: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Contains(t, resp.User.Roles, consts.RoleInvestor)

	_, err = svc.Login(ctx, &dto.LoginReq{Account: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestRegisterRejectsBadCode(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, _ := sendAndCapture(t, db)

	_, err := svc.Register(context.Background(), &dto.RegisterReq{
		Email:    "alice@test.dev",
		Username: "alice",
		Password: "s3cret-pass",
		Role:     "personal",
		Code:     "000000",
	})
	assert.ErrorIs(t, err, ErrCodeIncorrect)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, sendCode := sendAndCapture(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	code := sendCode("another@test.dev")
	_, err := svc.Register(ctx, &dto.RegisterReq{
		Email:    "another@test.dev",
		Username: "alice",
		Password: "s3cret-pass",
		Role:     "personal",
		Code:     code,
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, sendCode := sendAndCapture(t, db)
	ctx := context.Background()

	// alice@test.dev 已被占用
	seedUser(t, db, "alice")

	code := sendCode("alice@test.dev")
	_, err := svc.Register(ctx, &dto.RegisterReq{
		Email:    "alice@test.dev",
		Username: "alice2",
		Password: "s3cret-pass",
		Role:     "personal",
		Code:     code,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGrantAndRevokeRole(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc := newUserService(t, db)
	ctx := context.Background()

	user := seedUser(t, db, "alice", consts.RolePersonal)

	require.NoError(t, svc.GrantRole(ctx, user.ID, "investor"))
	summary, err := svc.GetUserSummary(ctx, user.ID)
	require.NoError(t, err)
	assert.Contains(t, summary.Roles, consts.RoleInvestor)

	require.NoError(t, svc.RevokeRole(ctx, user.ID, "investor"))
	summary, err = svc.GetUserSummary(ctx, user.ID)
	require.NoError(t, err)
	assert.NotContains(t, summary.Roles, consts.RoleInvestor)
}

func TestGetUserSummariesSkipsMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")

	res, err := svc.GetUserSummaries(ctx, []uint64{alice.ID, 999})
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "alice", res[alice.ID].Username)
}
