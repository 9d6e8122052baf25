package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"gorm.io/gorm"
)

type UserRepo interface {
	CreateWithProfileAndRole(ctx context.Context, u *model.User, p *model.Profile, r *model.Role) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetRole(ctx context.Context, userID uuid.UUID) (*model.Role, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, organization, position string) (*model.Profile, error)
	ListMasters(ctx context.Context) ([]model.User, error)
	ApproveRole(ctx context.Context, userID uuid.UUID) (int64, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

// CreateWithProfileAndRole inserts the account, its profile, and its
// (unapproved) role row atomically.
func (r *userRepo) CreateWithProfileAndRole(ctx context.Context, u *model.User, p *model.Profile, role *model.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		p.UserID = u.ID
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		role.UserID = u.ID
		return tx.Create(role).Error
	})
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	return &u, r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
}

func (r *userRepo) GetRole(ctx context.Context, userID uuid.UUID) (*model.Role, error) {
	var role model.Role
	return &role, r.db.WithContext(ctx).Where("user_id = ?", userID).First(&role).Error
}

func (r *userRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	return &p, r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
}

// UpdateProfile rewrites the editable profile columns; email stays as it
// was at signup.
func (r *userRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, organization, position string) (*model.Profile, error) {
	res := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"full_name":    fullName,
			"organization": organization,
			"position":     position,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetProfile(ctx, userID)
}

func (r *userRepo) ListMasters(ctx context.Context) ([]model.User, error) {
	var items []model.User
	return items, r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Role").
		Joins("JOIN user_roles ON user_roles.user_id = users.id AND user_roles.role = ?", model.RoleMaster).
		Order("users.created_at DESC").
		Find(&items).Error
}

func (r *userRepo) ApproveRole(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Role{}).
		Where("user_id = ? AND role = ?", userID, model.RoleMaster).
		Updates(map[string]interface{}{"approved": true, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}
