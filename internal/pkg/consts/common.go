package consts

const (
	DefaultAvatarURL = "default_avatar.png"
	DefaultLogoURL   = "default_logo.png"
)

const (
	RoleAdmin    = "ADMIN"
	RoleInvestor = "INVESTOR"
	RoleStartup  = "STARTUP"
	RolePersonal = "PERSONAL"
)
