package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PageSettingRepo interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.PageSetting, error)
	Upsert(ctx context.Context, projectID uuid.UUID, key, value string) error
}

type pageSettingRepo struct{ db *gorm.DB }

func NewPageSettingRepo(db *gorm.DB) PageSettingRepo {
	return &pageSettingRepo{db: db}
}

func (r *pageSettingRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.PageSetting, error) {
	var items []model.PageSetting
	return items, r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Find(&items).Error
}

func (r *pageSettingRepo) Upsert(ctx context.Context, projectID uuid.UUID, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(&model.PageSetting{
		ProjectID:    projectID,
		SettingKey:   key,
		SettingValue: value,
	}).Error
}
