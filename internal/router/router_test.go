package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/config"
	"github.com/parkreg-io/parkreg/internal/modules/handler"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/notify"
	"github.com/parkreg-io/parkreg/internal/pkg/token"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const routerTestSecret = "test-secret"

// stubApplicationService satisfies the review surface shared by master and
// site sessions.
type stubApplicationService struct{}

func (stubApplicationService) Submit(ctx context.Context, projectID uuid.UUID, carNumber string, custom map[string]string) (*model.Application, error) {
	return &model.Application{ProjectID: projectID, CarNumber: carNumber}, nil
}

func (stubApplicationService) LookupStatus(ctx context.Context, projectID uuid.UUID, lastFour string) (*model.Application, error) {
	return &model.Application{ProjectID: projectID, LastFour: lastFour}, nil
}

func (stubApplicationService) List(ctx context.Context, projectID uuid.UUID) ([]model.Application, error) {
	return []model.Application{}, nil
}

func (stubApplicationService) Assign(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID, typeID uuid.UUID) (string, error) {
	return "주차권이 배정되었습니다", nil
}

func (stubApplicationService) Reject(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error {
	return nil
}

func (stubApplicationService) Delete(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error {
	return nil
}

func (stubApplicationService) ExportCSV(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]byte, error) {
	return []byte{}, nil
}

func (stubApplicationService) ExportXLSX(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]byte, error) {
	return []byte{}, nil
}

type stubParkingTypeService struct{}

func (stubParkingTypeService) Create(ctx context.Context, projectID uuid.UUID, name string, hours int) (*model.ParkingType, error) {
	return &model.ParkingType{ID: uuid.New(), ProjectID: projectID, Name: name, Hours: hours}, nil
}

func (stubParkingTypeService) Delete(ctx context.Context, projectID, typeID uuid.UUID) error {
	return nil
}

func (stubParkingTypeService) List(ctx context.Context, projectID uuid.UUID) ([]model.ParkingType, error) {
	return []model.ParkingType{}, nil
}

func (stubParkingTypeService) Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	return nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterDeps{
		Config: &config.Config{
			Auth: config.AuthCfg{JWTSecret: routerTestSecret, TokenExpireHour: 1},
		},
		Log:                zap.NewNop(),
		PublicHandler:      handler.NewPublicHandler(nil, nil, nil),
		AuthHandler:        handler.NewAuthHandler(nil),
		ProjectHandler:     handler.NewProjectHandler(nil),
		ApplicationHandler: handler.NewApplicationHandler(stubApplicationService{}),
		ParkingTypeHandler: handler.NewParkingTypeHandler(stubParkingTypeService{}),
		PageSettingHandler: handler.NewPageSettingHandler(nil),
		QrCodeHandler:      handler.NewQrCodeHandler(nil),
		EventsHandler:      handler.NewEventsHandler(notify.NewHub(nil)),
	})
}

func doJSON(r *gin.Engine, method, path, bearer string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := sonic.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_SiteSessionRoleGates(t *testing.T) {
	projectID := uuid.New()
	base := "/api/v1/projects/" + projectID.String()

	siteToken, _, err := token.GenerateSite(routerTestSecret, projectID, 1)
	assert.NoError(t, err)
	masterToken, _, err := token.GenerateMaster(routerTestSecret, uuid.New(), 1)
	assert.NoError(t, err)

	r := newTestRouter()

	t.Run("site session is locked out of configuration", func(t *testing.T) {
		tests := []struct {
			name    string
			method  string
			path    string
			payload interface{}
		}{
			{"create parking type", "POST", base + "/parking-types", handler.CreateParkingTypeReq{Name: "방문주차", Hours: 2}},
			{"list parking types", "GET", base + "/parking-types", nil},
			{"save page settings", "PUT", base + "/settings", handler.SavePageSettingsReq{Settings: map[string]string{"title_text": "x"}}},
			{"list qr codes", "GET", base + "/qr-codes", nil},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := doJSON(r, tt.method, tt.path, siteToken, tt.payload)
				assert.Equal(t, http.StatusForbidden, w.Code)
			})
		}
	})

	t.Run("site session keeps the review surface", func(t *testing.T) {
		w := doJSON(r, "GET", base+"/applications", siteToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("site session cannot reach another project", func(t *testing.T) {
		other := "/api/v1/projects/" + uuid.New().String()
		w := doJSON(r, "GET", other+"/applications", siteToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("master session manages configuration", func(t *testing.T) {
		w := doJSON(r, "POST", base+"/parking-types", masterToken, handler.CreateParkingTypeReq{Name: "방문주차", Hours: 2})
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
