package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockProjectRepo is a mock implementation of ProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) CreateWithSettings(ctx context.Context, p *model.Project, settings []model.PageSetting) error {
	args := m.Called(ctx, p, settings)
	return args.Error(0)
}

func (m *MockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepo) Update(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) List(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func TestProjectService_Create(t *testing.T) {
	t.Run("seeds default page settings", func(t *testing.T) {
		r := new(MockProjectRepo)
		svc := NewProjectService(r, notify.NewHub(nil))

		r.On("CreateWithSettings", mock.Anything,
			mock.MatchedBy(func(p *model.Project) bool {
				return p.Name == "본사" && p.Slug == "hq-tower" && p.Password == nil
			}),
			mock.MatchedBy(func(settings []model.PageSetting) bool {
				if len(settings) != len(model.DefaultSettings) {
					return false
				}
				seen := make(map[string]string)
				for _, s := range settings {
					seen[s.SettingKey] = s.SettingValue
				}
				return seen[model.SettingTitleText] == "주차등록 시스템"
			}),
		).Return(nil)

		_, err := svc.Create(context.Background(), ProjectCreateInput{Name: "본사", Slug: "hq-tower"})
		assert.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("password is stored hashed", func(t *testing.T) {
		r := new(MockProjectRepo)
		svc := NewProjectService(r, notify.NewHub(nil))

		r.On("CreateWithSettings", mock.Anything,
			mock.MatchedBy(func(p *model.Project) bool {
				return p.HasPassword() &&
					bcrypt.CompareHashAndPassword([]byte(*p.Password), []byte("gate-1234")) == nil
			}),
			mock.Anything,
		).Return(nil)

		_, err := svc.Create(context.Background(), ProjectCreateInput{
			Name: "본사", Slug: "hq-tower", Password: "gate-1234",
		})
		assert.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("slug format enforced", func(t *testing.T) {
		svc := NewProjectService(new(MockProjectRepo), notify.NewHub(nil))

		for _, slug := range []string{"", "HQ", "hq tower", "hq_tower", "한글"} {
			_, err := svc.Create(context.Background(), ProjectCreateInput{Name: "본사", Slug: slug})
			assert.Error(t, err, "slug %q should be rejected", slug)
		}
	})
}

func TestProjectService_Update(t *testing.T) {
	projectID := uuid.New()

	t.Run("empty password clears site login", func(t *testing.T) {
		r := new(MockProjectRepo)
		svc := NewProjectService(r, notify.NewHub(nil))

		hash := "$2a$10$existinghash"
		r.On("Get", mock.Anything, projectID).Return(&model.Project{
			ID: projectID, Name: "본사", Slug: "hq-tower", Password: &hash,
		}, nil)
		r.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
			return p.Password == nil
		})).Return(nil)

		empty := ""
		_, err := svc.Update(context.Background(), projectID, ProjectUpdateInput{Password: &empty})
		assert.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("nil password leaves hash untouched", func(t *testing.T) {
		r := new(MockProjectRepo)
		svc := NewProjectService(r, notify.NewHub(nil))

		hash := "$2a$10$existinghash"
		name := "신사옥"
		r.On("Get", mock.Anything, projectID).Return(&model.Project{
			ID: projectID, Name: "본사", Slug: "hq-tower", Password: &hash,
		}, nil)
		r.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
			return p.Name == "신사옥" && p.Password != nil && *p.Password == hash
		})).Return(nil)

		_, err := svc.Update(context.Background(), projectID, ProjectUpdateInput{Name: &name})
		assert.NoError(t, err)
		r.AssertExpectations(t)
	})
}
