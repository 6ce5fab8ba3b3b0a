package auth

// Context is the resolved identity of the caller, built once per request
// by the auth middleware and passed explicitly into every service call.
// A nil *Context means an anonymous request; services requiring a session
// reject it with Unauthorized.
type Context struct {
	UserID          string
	IsAdmin         bool
	PreferredLocale string
}

// CanModify reports whether the caller may mutate a resource owned by
// authorID: the owner or an admin.
func (c *Context) CanModify(authorID string) bool {
	if c == nil {
		return false
	}
	return c.UserID == authorID || c.IsAdmin
}
