package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"gorm.io/gorm"
)

type QrCodeRepo interface {
	Create(ctx context.Context, q *model.QrCode) error
	Delete(ctx context.Context, projectID, id uuid.UUID) error
	Update(ctx context.Context, q *model.QrCode) error
	Get(ctx context.Context, projectID, id uuid.UUID) (*model.QrCode, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.QrCode, error)
}

type qrCodeRepo struct{ db *gorm.DB }

func NewQrCodeRepo(db *gorm.DB) QrCodeRepo {
	return &qrCodeRepo{db: db}
}

func (r *qrCodeRepo) Create(ctx context.Context, q *model.QrCode) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *qrCodeRepo) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND id = ?", projectID, id).
		Delete(&model.QrCode{}).Error
}

func (r *qrCodeRepo) Update(ctx context.Context, q *model.QrCode) error {
	return r.db.WithContext(ctx).Model(&model.QrCode{}).
		Where("project_id = ? AND id = ?", q.ProjectID, q.ID).
		Updates(map[string]interface{}{
			"size":     q.Size,
			"fg_color": q.FgColor,
			"bg_color": q.BgColor,
		}).Error
}

func (r *qrCodeRepo) Get(ctx context.Context, projectID, id uuid.UUID) (*model.QrCode, error) {
	var q model.QrCode
	return &q, r.db.WithContext(ctx).
		Where("project_id = ? AND id = ?", projectID, id).
		First(&q).Error
}

func (r *qrCodeRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.QrCode, error) {
	var items []model.QrCode
	return items, r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&items).Error
}
