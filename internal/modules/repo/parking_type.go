package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"gorm.io/gorm"
)

type ParkingTypeRepo interface {
	Create(ctx context.Context, t *model.ParkingType) error
	Delete(ctx context.Context, projectID, typeID uuid.UUID) error
	Get(ctx context.Context, typeID uuid.UUID) (*model.ParkingType, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ParkingType, error)
	MaxSortOrder(ctx context.Context, projectID uuid.UUID) (int, error)
	Resequence(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error
}

type parkingTypeRepo struct{ db *gorm.DB }

func NewParkingTypeRepo(db *gorm.DB) ParkingTypeRepo {
	return &parkingTypeRepo{db: db}
}

func (r *parkingTypeRepo) Create(ctx context.Context, t *model.ParkingType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *parkingTypeRepo) Delete(ctx context.Context, projectID, typeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND id = ?", projectID, typeID).
		Delete(&model.ParkingType{}).Error
}

func (r *parkingTypeRepo) Get(ctx context.Context, typeID uuid.UUID) (*model.ParkingType, error) {
	var t model.ParkingType
	return &t, r.db.WithContext(ctx).Where("id = ?", typeID).First(&t).Error
}

func (r *parkingTypeRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ParkingType, error) {
	var items []model.ParkingType
	return items, r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("sort_order ASC, created_at ASC").
		Find(&items).Error
}

func (r *parkingTypeRepo) MaxSortOrder(ctx context.Context, projectID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&model.ParkingType{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&max).Error
	return max, err
}

// Resequence applies the full ordered id list in one transaction, so a
// partial failure can never leave a mix of old and new positions.
func (r *parkingTypeRepo) Resequence(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for pos, id := range orderedIDs {
			res := tx.Model(&model.ParkingType{}).
				Where("project_id = ? AND id = ?", projectID, id).
				Update("sort_order", pos+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("parking type %s not in project", id)
			}
		}
		return nil
	})
}
