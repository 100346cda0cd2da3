package domain

import "time"

// Role is the closed set of account roles carried inside access tokens.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Roles lists every known role.
var Roles = []Role{RoleBuyer, RoleSeller}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// DashboardPath is the storefront landing page for the role.
func (r Role) DashboardPath() string {
	return "/" + string(r) + "/dashboard"
}

// Token represents the decoded view of an issued access token.
type Token struct {
	SubjectID int64
	Role      Role
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
