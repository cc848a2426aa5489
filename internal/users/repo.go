package users

import (
	"context"

	"gorm.io/gorm"

	"github.com/malanad-agro/agrostore-backend/pkg/db/models"
)

// Repository defines persistence operations for staff accounts and the
// active-session table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByUserName(ctx context.Context, userName string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	CreateSession(ctx context.Context, session *models.LoginSession) error
	DeactivateSession(ctx context.Context, tokenID string) error
	DeactivateSessionsForUser(ctx context.Context, userName string) error
	HasActiveSession(ctx context.Context, tokenID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a users repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByUserName(ctx context.Context, userName string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("user_name = ?", userName).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *repository) CreateSession(ctx context.Context, session *models.LoginSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *repository) DeactivateSession(ctx context.Context, tokenID string) error {
	return r.db.WithContext(ctx).
		Model(&models.LoginSession{}).
		Where("token_id = ?", tokenID).
		Update("is_active", false).Error
}

func (r *repository) DeactivateSessionsForUser(ctx context.Context, userName string) error {
	return r.db.WithContext(ctx).
		Model(&models.LoginSession{}).
		Where("user_name = ? AND is_active = ?", userName, true).
		Update("is_active", false).Error
}

func (r *repository) HasActiveSession(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LoginSession{}).
		Where("token_id = ? AND is_active = ?", tokenID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
