package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/config"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockQrCodeRepo is a mock implementation of QrCodeRepo
type MockQrCodeRepo struct {
	mock.Mock
}

func (m *MockQrCodeRepo) Create(ctx context.Context, q *model.QrCode) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQrCodeRepo) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	args := m.Called(ctx, projectID, id)
	return args.Error(0)
}

func (m *MockQrCodeRepo) Update(ctx context.Context, q *model.QrCode) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQrCodeRepo) Get(ctx context.Context, projectID, id uuid.UUID) (*model.QrCode, error) {
	args := m.Called(ctx, projectID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QrCode), args.Error(1)
}

func (m *MockQrCodeRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.QrCode, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QrCode), args.Error(1)
}

func qrTestConfig() *config.Config {
	return &config.Config{Public: config.PublicCfg{Host: "parking.example.com"}}
}

func TestQrCodeService_Create(t *testing.T) {
	projectID := uuid.New()

	t.Run("url is derived from the project slug", func(t *testing.T) {
		r := new(MockQrCodeRepo)
		projects := new(MockProjectRepo)
		svc := NewQrCodeService(r, projects, nil, qrTestConfig(), notify.NewHub(nil))

		projects.On("Get", mock.Anything, projectID).Return(&model.Project{
			ID: projectID, Slug: "hq-tower",
		}, nil)
		r.On("Create", mock.Anything, mock.MatchedBy(func(q *model.QrCode) bool {
			return q.URL == "https://parking.example.com/hq-tower" &&
				q.Size == 256 && q.FgColor == "#000000" && q.BgColor == "#ffffff"
		})).Return(nil)

		q, err := svc.Create(context.Background(), projectID, QrCodeCreateInput{})
		assert.NoError(t, err)
		assert.Equal(t, "https://parking.example.com/hq-tower", q.URL)
		r.AssertExpectations(t)
	})

	t.Run("bad color rejected", func(t *testing.T) {
		svc := NewQrCodeService(new(MockQrCodeRepo), new(MockProjectRepo), nil, qrTestConfig(), notify.NewHub(nil))

		_, err := svc.Create(context.Background(), projectID, QrCodeCreateInput{FgColor: "red"})
		assert.Error(t, err)
	})

	t.Run("size bounds enforced", func(t *testing.T) {
		svc := NewQrCodeService(new(MockQrCodeRepo), new(MockProjectRepo), nil, qrTestConfig(), notify.NewHub(nil))

		_, err := svc.Create(context.Background(), projectID, QrCodeCreateInput{Size: 10})
		assert.Error(t, err)
		_, err = svc.Create(context.Background(), projectID, QrCodeCreateInput{Size: 99999})
		assert.Error(t, err)
	})
}

func TestQrCodeService_Update(t *testing.T) {
	projectID := uuid.New()
	id := uuid.New()

	r := new(MockQrCodeRepo)
	svc := NewQrCodeService(r, new(MockProjectRepo), nil, qrTestConfig(), notify.NewHub(nil))

	r.On("Get", mock.Anything, projectID, id).Return(&model.QrCode{
		ID: id, ProjectID: projectID, URL: "https://parking.example.com/hq-tower",
		Size: 256, FgColor: "#000000", BgColor: "#ffffff",
	}, nil)
	r.On("Update", mock.Anything, mock.MatchedBy(func(q *model.QrCode) bool {
		// the embedded address never changes after creation
		return q.Size == 512 && q.URL == "https://parking.example.com/hq-tower"
	})).Return(nil)

	q, err := svc.Update(context.Background(), projectID, id, QrCodeCreateInput{Size: 512})
	assert.NoError(t, err)
	assert.Equal(t, 512, q.Size)
	r.AssertExpectations(t)
}

func TestQrCodeService_Render(t *testing.T) {
	projectID := uuid.New()
	id := uuid.New()

	r := new(MockQrCodeRepo)
	svc := NewQrCodeService(r, new(MockProjectRepo), nil, qrTestConfig(), notify.NewHub(nil))

	r.On("Get", mock.Anything, projectID, id).Return(&model.QrCode{
		ID: id, ProjectID: projectID, URL: "https://parking.example.com/hq-tower",
		Size: 256, FgColor: "#000000", BgColor: "#ffffff",
	}, nil)

	png, err := svc.Render(context.Background(), projectID, id)
	assert.NoError(t, err)
	// PNG signature
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestQrCodeService_ShareLink_NoStorage(t *testing.T) {
	svc := NewQrCodeService(new(MockQrCodeRepo), new(MockProjectRepo), nil, qrTestConfig(), notify.NewHub(nil))

	_, err := svc.ShareLink(context.Background(), uuid.New(), uuid.New())
	assert.Error(t, err)
}
