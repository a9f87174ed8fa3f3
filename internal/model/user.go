package model

// RoleAdmin 管理员角色
const RoleAdmin = "admin"

// SessionUser 当前登录用户，由 JWT 声明还原
type SessionUser struct {
	Email string
	Role  string
}

// IsAdmin 是否管理员
func (u SessionUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
