package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/malanad-agro/agrostore-backend/pkg/enums"
)

// User is a staff account that can sign in to the dashboard.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName     string     `gorm:"column:user_name;not null;uniqueIndex" json:"userName"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.Role `gorm:"column:role;not null;default:staff" json:"role"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName pins the plural form.
func (User) TableName() string {
	return "users"
}
