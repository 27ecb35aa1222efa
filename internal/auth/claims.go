package auth

import "flightbay/techlog/internal/constants"

// UserClaims is what the rest of the system knows about the caller. The
// ledger trusts the user id and organization id as given; authentication
// mechanics stay at the middleware boundary.
type UserClaims interface {
	UserID() string
	OrganizationID() string
	Role() string
	Source() string
	HasPermission(action string) bool
}

// APIKeyClaims is built for requests authenticated with an X-API-Key header.
type APIKeyClaims struct {
	UserUUID  string
	OrgUUID   string
	RoleValue constants.OrgRole
}

func (c *APIKeyClaims) UserID() string         { return c.UserUUID }
func (c *APIKeyClaims) OrganizationID() string { return c.OrgUUID }
func (c *APIKeyClaims) Role() string           { return string(c.RoleValue) }
func (c *APIKeyClaims) Source() string         { return "API_KEY" }
func (c *APIKeyClaims) HasPermission(action string) bool {
	switch action {
	case "edit":
		return c.RoleValue.CanEdit()
	case "admin":
		return c.RoleValue == constants.RoleAdmin
	default:
		return true
	}
}

// LinkClaims is built for requests carrying a presigned link token. Link
// holders can only read.
type LinkClaims struct {
	UserUUID string
	OrgUUID  string
}

func (c *LinkClaims) UserID() string              { return c.UserUUID }
func (c *LinkClaims) OrganizationID() string      { return c.OrgUUID }
func (c *LinkClaims) Role() string                { return string(constants.RoleViewer) }
func (c *LinkClaims) Source() string              { return "SIGNED_LINK" }
func (c *LinkClaims) HasPermission(a string) bool { return a != "edit" && a != "admin" }
