package service

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/model"
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/redis"
	"Atmosphere/internal/pkg/security"
	"Atmosphere/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

const userSummaryTTL = 30 * time.Minute

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterReq) (*dto.UserSummary, error)
	Login(ctx context.Context, req *dto.LoginReq) (*dto.LoginResp, error)
	Logout(ctx context.Context, token string) error
	GetUserSummary(ctx context.Context, userID uint64) (*dto.UserSummary, error)
	GetUserSummaries(ctx context.Context, userIDs []uint64) (map[uint64]*dto.UserSummary, error)
	UpdateAvatar(ctx context.Context, userID uint64, avatarURL string) error
	GrantRole(ctx context.Context, userID uint64, roleCode string) error
	RevokeRole(ctx context.Context, userID uint64, roleCode string) error
}

type UserServiceImpl struct {
	userRepo      repository.UserRepo
	roleRepo      repository.RoleRepo
	userRolesRepo repository.UserRolesRepo
	otpService    OtpService
}

func NewUserService(
	userRepo repository.UserRepo,
	roleRepo repository.RoleRepo,
	userRolesRepo repository.UserRolesRepo,
	otpService OtpService,
) UserService {
	return &UserServiceImpl{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		userRolesRepo: userRolesRepo,
		otpService:    otpService,
	}
}

// Register 验证码校验通过后落库并绑定初始角色
func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterReq) (*dto.UserSummary, error) {
	if err := s.otpService.VerifyCode(ctx, req.Email, req.Code); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	email, username := req.Email, req.Username
	user := &model.User{
		Email:     &email,
		Username:  &username,
		Password:  &hashed,
		AvatarURL: consts.DefaultAvatarURL,
		// 注册即完成邮箱验证
		IsVerified: true,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if isDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	roleCode := strings.ToUpper(req.Role)
	role, err := s.roleRepo.GetRoleByCode(ctx, roleCode)
	if err != nil {
		return nil, err
	}
	if err = s.userRolesRepo.AddUserRole(ctx, user.ID, role.ID); err != nil {
		return nil, err
	}

	return &dto.UserSummary{
		ID:        user.ID,
		Username:  username,
		AvatarURL: user.AvatarURL,
		Roles:     []string{roleCode},
	}, nil
}

// Login 支持邮箱或用户名登录，账号不存在与密码错误返回同一错误
func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginReq) (*dto.LoginResp, error) {
	u, err := s.lookupAccount(ctx, req.Account)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPasswordIncorrect
		}
		return nil, err
	}
	if u.IsBan {
		return nil, ErrUserBanned
	}
	if u.Password == nil || security.CheckPasswordHash(req.Password, *u.Password) != nil {
		return nil, ErrPasswordIncorrect
	}

	roles, err := s.userRolesRepo.GetRoleCodesByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	token, err := security.GenerateToken(u.ID, roles)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResp{
		Token: token,
		User:  buildSummary(u, roles),
	}, nil
}

// Logout 把 token 签名拉黑到过期为止
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return UnauthorizedError
	}
	return redis.SetWithExpiration(ctx, consts.AuthBlacklistKey+signature, "1", security.JWTExpirationTime)
}

// GetUserSummary 概要信息走 redis 缓存，未命中回源后回填
func (s *UserServiceImpl) GetUserSummary(ctx context.Context, userID uint64) (*dto.UserSummary, error) {
	key := consts.UserSummaryKey + strconv.FormatUint(userID, 10)
	cached, err := redis.GetValue(ctx, key)
	if err == nil && cached != "" {
		var summary dto.UserSummary
		if err = json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
	}

	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	roles, err := s.userRolesRepo.GetRoleCodesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := buildSummary(u, roles)
	if raw, err := json.Marshal(summary); err == nil {
		if err = redis.SetWithExpiration(ctx, key, string(raw), userSummaryTTL); err != nil {
			log.Warn("backfill user summary cache failed", "userID", userID, "err", err)
		}
	}
	return summary, nil
}

// GetUserSummaries 批量拉取概要，关注/粉丝列表渲染使用
func (s *UserServiceImpl) GetUserSummaries(ctx context.Context, userIDs []uint64) (map[uint64]*dto.UserSummary, error) {
	res := make(map[uint64]*dto.UserSummary, len(userIDs))
	missed := make([]uint64, 0, len(userIDs))

	for _, id := range userIDs {
		key := consts.UserSummaryKey + strconv.FormatUint(id, 10)
		cached, err := redis.GetValue(ctx, key)
		if err != nil || cached == "" {
			missed = append(missed, id)
			continue
		}
		var summary dto.UserSummary
		if err = json.Unmarshal([]byte(cached), &summary); err != nil {
			missed = append(missed, id)
			continue
		}
		res[id] = &summary
	}

	if len(missed) == 0 {
		return res, nil
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, missed)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		roles, err := s.userRolesRepo.GetRoleCodesByUserID(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		summary := buildSummary(u, roles)
		res[u.ID] = summary

		key := consts.UserSummaryKey + strconv.FormatUint(u.ID, 10)
		if raw, err := json.Marshal(summary); err == nil {
			_ = redis.SetWithExpiration(ctx, key, string(raw), userSummaryTTL)
		}
	}
	return res, nil
}

// UpdateAvatar 换头像后清掉概要缓存
func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, userID uint64, avatarURL string) error {
	if err := s.userRepo.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		return err
	}
	s.evictSummary(ctx, userID)
	return nil
}

func (s *UserServiceImpl) GrantRole(ctx context.Context, userID uint64, roleCode string) error {
	exists, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	role, err := s.roleRepo.GetRoleByCode(ctx, strings.ToUpper(roleCode))
	if err != nil {
		return err
	}
	if err = s.userRolesRepo.AddUserRole(ctx, userID, role.ID); err != nil {
		return err
	}
	s.evictSummary(ctx, userID)
	return nil
}

func (s *UserServiceImpl) RevokeRole(ctx context.Context, userID uint64, roleCode string) error {
	role, err := s.roleRepo.GetRoleByCode(ctx, strings.ToUpper(roleCode))
	if err != nil {
		return err
	}
	if err = s.userRolesRepo.DeleteUserRole(ctx, userID, role.ID); err != nil {
		return err
	}
	s.evictSummary(ctx, userID)
	return nil
}

func (s *UserServiceImpl) evictSummary(ctx context.Context, userID uint64) {
	key := consts.UserSummaryKey + strconv.FormatUint(userID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.Warn("evict user summary cache failed", "userID", userID, "err", err)
	}
}

func (s *UserServiceImpl) lookupAccount(ctx context.Context, account string) (*model.User, error) {
	if strings.Contains(account, "@") {
		return s.userRepo.GetUserByEmail(ctx, account)
	}
	return s.userRepo.GetUserByUsername(ctx, account)
}

func buildSummary(u *model.User, roles []string) *dto.UserSummary {
	username := ""
	if u.Username != nil {
		username = *u.Username
	}
	return &dto.UserSummary{
		ID:         u.ID,
		Username:   username,
		AvatarURL:  u.AvatarURL,
		IsVerified: u.IsVerified,
		Roles:      roles,
	}
}
