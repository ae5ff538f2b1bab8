package user

// Actor 当前请求的操作者,来自JWT Claims
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin 是否为管理员
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess 本人或管理员可以访问ownerID名下的资源
func (a Actor) CanAccess(ownerID string) bool {
	return a.IsAdmin() || (a.ID != "" && a.ID == ownerID)
}
