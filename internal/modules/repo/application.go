package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"gorm.io/gorm"
)

// StatusUpdate is the column set written by a review decision. ApprovedAt
// is pointer-to-pointer so a nil target can be written explicitly.
type StatusUpdate struct {
	Status        string
	ParkingTypeID *uuid.UUID
	ApprovedAt    *time.Time
}

type ApplicationRepo interface {
	Create(ctx context.Context, a *model.Application) error
	DeleteByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) (int64, error)
	Get(ctx context.Context, projectID, id uuid.UUID) (*model.Application, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Application, error)
	ListByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]model.Application, error)
	LatestByLastFour(ctx context.Context, projectID uuid.UUID, lastFour string) (*model.Application, error)
	UpdateStatus(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID, upd StatusUpdate) (int64, error)
	SetStatus(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID, status string) (int64, error)
}

type applicationRepo struct{ db *gorm.DB }

func NewApplicationRepo(db *gorm.DB) ApplicationRepo {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, a *model.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *applicationRepo) DeleteByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND id IN ?", projectID, ids).
		Delete(&model.Application{})
	return res.RowsAffected, res.Error
}

func (r *applicationRepo) Get(ctx context.Context, projectID, id uuid.UUID) (*model.Application, error) {
	var a model.Application
	return &a, r.db.WithContext(ctx).
		Preload("ParkingType").
		Where("project_id = ? AND id = ?", projectID, id).
		First(&a).Error
}

func (r *applicationRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Application, error) {
	var items []model.Application
	return items, r.db.WithContext(ctx).
		Preload("ParkingType").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&items).Error
}

func (r *applicationRepo) ListByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]model.Application, error) {
	var items []model.Application
	return items, r.db.WithContext(ctx).
		Preload("ParkingType").
		Where("project_id = ? AND id IN ?", projectID, ids).
		Order("created_at DESC").
		Find(&items).Error
}

func (r *applicationRepo) LatestByLastFour(ctx context.Context, projectID uuid.UUID, lastFour string) (*model.Application, error) {
	var a model.Application
	return &a, r.db.WithContext(ctx).
		Preload("ParkingType").
		Where("project_id = ? AND last_four = ?", projectID, lastFour).
		Order("created_at DESC").
		First(&a).Error
}

// UpdateStatus writes one decision uniformly across the id set in a single
// statement; approved_at is always written, so re-review clears it.
func (r *applicationRepo) UpdateStatus(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID, upd StatusUpdate) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("project_id = ? AND id IN ?", projectID, ids).
		Updates(map[string]interface{}{
			"status":          upd.Status,
			"parking_type_id": upd.ParkingTypeID,
			"approved_at":     upd.ApprovedAt,
		})
	return res.RowsAffected, res.Error
}

// SetStatus writes only the status column; an existing assignment and its
// approval timestamp are left as they are.
func (r *applicationRepo) SetStatus(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID, status string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("project_id = ? AND id IN ?", projectID, ids).
		Update("status", status)
	return res.RowsAffected, res.Error
}
