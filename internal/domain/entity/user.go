package entity

import "time"

// Sentinel admin account values. The admin row is looked up by AdminEmail.
const (
	AdminExternalID = "admin"
	AdminEmail      = "admin@buytouch.com"
	AdminName       = "Admin User"
	AdminAvatar     = "img/admin_avatar.png"
	AdminPhone      = "000-000-0000"

	DefaultAvatar = "img/default_avatar.png"
)

// User represents either a provider-federated account or the sentinel admin.
type User struct {
	ID          int64
	ExternalID  string
	Email       string
	DisplayName string
	Username    string
	Avatar      string
	Phone       string
	IsAdmin     bool
	CreatedAt   time.Time
}
