package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	CreateWithSettings(ctx context.Context, p *model.Project, settings []model.PageSetting) error
	Delete(ctx context.Context, id uuid.UUID) error
	Update(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	GetBySlug(ctx context.Context, slug string) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// CreateWithSettings creates the project and its seed page settings in one
// transaction so a half-created project never appears in listings.
func (r *projectRepo) CreateWithSettings(ctx context.Context, p *model.Project, settings []model.PageSetting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		for i := range settings {
			settings[i].ProjectID = p.ID
		}
		if len(settings) > 0 {
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id).Error
}

func (r *projectRepo) Update(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Where(&model.Project{ID: p.ID}).Updates(p).Error
}

func (r *projectRepo) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	return &p, r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
}

func (r *projectRepo) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	var p model.Project
	return &p, r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	var items []model.Project
	return items, r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
}
