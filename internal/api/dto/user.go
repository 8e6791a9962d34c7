package dto

type SendCodeReq struct {
	Email string `json:"email" binding:"required,email"`
}

type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=32"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Code     string `json:"code" binding:"required,len=6"`
	Role     string `json:"role" binding:"required,oneof=investor startup personal"`
}

type LoginReq struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	Token string       `json:"token"`
	User  *UserSummary `json:"user"`
}

// UserSummary 用户概要，列表场景复用
type UserSummary struct {
	ID         uint64   `json:"id"`
	Username   string   `json:"username"`
	AvatarURL  string   `json:"avatarUrl"`
	IsVerified bool     `json:"isVerified"`
	Roles      []string `json:"roles"`
}

type UpdateAvatarReq struct {
	AvatarURL string `json:"avatarUrl" binding:"required,max=255"`
}

type GrantRoleReq struct {
	UserID   uint64 `json:"userId" binding:"required"`
	RoleCode string `json:"roleCode" binding:"required,oneof=admin investor startup personal"`
}
