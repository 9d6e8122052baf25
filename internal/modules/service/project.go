package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/modules/repo"
	"github.com/parkreg-io/parkreg/internal/notify"
	"golang.org/x/crypto/bcrypt"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type ProjectCreateInput struct {
	Name        string
	Slug        string
	Password    string
	Description string
}

type ProjectUpdateInput struct {
	Name        *string
	Description *string
	// Password empty string clears the on-site password; nil leaves it alone.
	Password *string
}

type ProjectService interface {
	Create(ctx context.Context, in ProjectCreateInput) (*model.Project, error)
	Update(ctx context.Context, projectID uuid.UUID, in ProjectUpdateInput) (*model.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
	Get(ctx context.Context, projectID uuid.UUID) (*model.Project, error)
	GetBySlug(ctx context.Context, slug string) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
}

type projectService struct {
	r   repo.ProjectRepo
	hub *notify.Hub
}

func NewProjectService(r repo.ProjectRepo, hub *notify.Hub) ProjectService {
	return &projectService{r: r, hub: hub}
}

func (s *projectService) Create(ctx context.Context, in ProjectCreateInput) (*model.Project, error) {
	if in.Name == "" {
		return nil, errors.New("project name is empty")
	}
	if !slugPattern.MatchString(in.Slug) {
		return nil, errors.New("slug must contain only lowercase letters, digits and hyphens")
	}

	p := &model.Project{Name: in.Name, Slug: in.Slug}
	if in.Description != "" {
		p.Description = &in.Description
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashStr := string(hash)
		p.Password = &hashStr
	}

	settings := make([]model.PageSetting, 0, len(model.DefaultSettings))
	for k, v := range model.DefaultSettings {
		settings = append(settings, model.PageSetting{SettingKey: k, SettingValue: v})
	}
	if err := s.r.CreateWithSettings(ctx, p, settings); err != nil {
		return nil, err
	}

	s.hub.Broadcast(ctx, p.ID, notify.Event{Table: notify.TableProjects, Action: notify.ActionInsert, RowID: p.ID.String()})
	return p, nil
}

func (s *projectService) Update(ctx context.Context, projectID uuid.UUID, in ProjectUpdateInput) (*model.Project, error) {
	p, err := s.r.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, errors.New("project name is empty")
		}
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.Password != nil {
		if *in.Password == "" {
			p.Password = nil
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			hashStr := string(hash)
			p.Password = &hashStr
		}
	}

	if err := s.r.Update(ctx, p); err != nil {
		return nil, err
	}
	s.hub.Broadcast(ctx, p.ID, notify.Event{Table: notify.TableProjects, Action: notify.ActionUpdate, RowID: p.ID.String()})
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	if err := s.r.Delete(ctx, projectID); err != nil {
		return err
	}
	s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TableProjects, Action: notify.ActionDelete, RowID: projectID.String()})
	return nil
}

func (s *projectService) Get(ctx context.Context, projectID uuid.UUID) (*model.Project, error) {
	return s.r.Get(ctx, projectID)
}

func (s *projectService) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	if slug == "" {
		return nil, errors.New("slug is empty")
	}
	return s.r.GetBySlug(ctx, slug)
}

func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	return s.r.List(ctx)
}
