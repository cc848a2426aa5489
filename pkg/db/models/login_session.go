package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginSession is one row in the active-session table. The auth middleware
// only admits bearer tokens whose jti maps to an active row here, so logout
// and forced sign-out are immediate.
type LoginSession struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName  string    `gorm:"column:user_name;not null;index" json:"userName"`
	TokenID   string    `gorm:"column:token_id;not null;uniqueIndex" json:"-"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"isActive"`
	LastLogin time.Time `gorm:"column:last_login;not null" json:"lastLogin"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName keeps the legacy table name.
func (LoginSession) TableName() string {
	return "logins"
}
