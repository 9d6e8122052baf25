package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPageSettingService_Load(t *testing.T) {
	projectID := uuid.New()

	t.Run("defaults cover keys without rows", func(t *testing.T) {
		r := new(MockPageSettingRepo)
		svc := NewPageSettingService(r, notify.NewHub(nil))

		r.On("ListByProject", mock.Anything, projectID).Return([]model.PageSetting{}, nil)

		got, err := svc.Load(context.Background(), projectID)
		assert.NoError(t, err)
		assert.Equal(t, "주차등록 시스템", got[model.SettingTitleText])
		assert.Equal(t, "36", got[model.SettingTitleFontSize])
		assert.Equal(t, "false", got[model.SettingCustomFieldsEnabled])
	})

	t.Run("stored rows win over defaults", func(t *testing.T) {
		r := new(MockPageSettingRepo)
		svc := NewPageSettingService(r, notify.NewHub(nil))

		r.On("ListByProject", mock.Anything, projectID).Return([]model.PageSetting{
			{SettingKey: model.SettingTitleText, SettingValue: "본사 방문주차"},
		}, nil)

		got, err := svc.Load(context.Background(), projectID)
		assert.NoError(t, err)
		assert.Equal(t, "본사 방문주차", got[model.SettingTitleText])
		assert.Equal(t, "36", got[model.SettingTitleFontSize])
	})
}

func TestPageSettingService_Save(t *testing.T) {
	projectID := uuid.New()

	t.Run("known keys are upserted", func(t *testing.T) {
		r := new(MockPageSettingRepo)
		svc := NewPageSettingService(r, notify.NewHub(nil))

		r.On("Upsert", mock.Anything, projectID, model.SettingTitleText, "지하주차장").Return(nil)

		assert.NoError(t, svc.Save(context.Background(), projectID, map[string]string{
			model.SettingTitleText: "지하주차장",
		}))
		r.AssertExpectations(t)
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		svc := NewPageSettingService(new(MockPageSettingRepo), notify.NewHub(nil))
		assert.Error(t, svc.Save(context.Background(), projectID, map[string]string{"rogue": "x"}))
	})

	t.Run("font size bounds enforced", func(t *testing.T) {
		svc := NewPageSettingService(new(MockPageSettingRepo), notify.NewHub(nil))
		assert.Error(t, svc.Save(context.Background(), projectID, map[string]string{
			model.SettingTitleFontSize: "1000",
		}))
		assert.Error(t, svc.Save(context.Background(), projectID, map[string]string{
			model.SettingTitleFontSize: "big",
		}))
	})

	t.Run("custom fields config is normalized to the versioned form", func(t *testing.T) {
		r := new(MockPageSettingRepo)
		svc := NewPageSettingService(r, notify.NewHub(nil))

		r.On("Upsert", mock.Anything, projectID, model.SettingCustomFieldsConfig,
			`{"version":1,"fields":[{"id":"dept","label":"부서","type":"text","required":true}]}`,
		).Return(nil)

		assert.NoError(t, svc.Save(context.Background(), projectID, map[string]string{
			model.SettingCustomFieldsConfig: `[{"id":"dept","label":"부서","type":"text","required":true}]`,
		}))
		r.AssertExpectations(t)
	})

	t.Run("garbage config degrades to empty schema", func(t *testing.T) {
		r := new(MockPageSettingRepo)
		svc := NewPageSettingService(r, notify.NewHub(nil))

		r.On("Upsert", mock.Anything, projectID, model.SettingCustomFieldsConfig,
			`{"version":1,"fields":[]}`,
		).Return(nil)

		assert.NoError(t, svc.Save(context.Background(), projectID, map[string]string{
			model.SettingCustomFieldsConfig: `{broken`,
		}))
		r.AssertExpectations(t)
	})
}

func TestPageSettingService_FieldsConfig(t *testing.T) {
	projectID := uuid.New()

	r := new(MockPageSettingRepo)
	svc := NewPageSettingService(r, notify.NewHub(nil))

	r.On("ListByProject", mock.Anything, projectID).Return([]model.PageSetting{
		{SettingKey: model.SettingCustomFieldsEnabled, SettingValue: "true"},
		{SettingKey: model.SettingCustomFieldsConfig, SettingValue: `[{"id":"dept","label":"부서","type":"text"}]`},
	}, nil)

	cfg, enabled, err := svc.FieldsConfig(context.Background(), projectID)
	assert.NoError(t, err)
	assert.True(t, enabled)
	assert.Len(t, cfg.Fields, 1)
	assert.Equal(t, "dept", cfg.Fields[0].ID)
}
