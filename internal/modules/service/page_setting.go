package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/modules/repo"
	"github.com/parkreg-io/parkreg/internal/notify"
	"github.com/parkreg-io/parkreg/internal/pkg/fields"
)

type PageSettingService interface {
	Load(ctx context.Context, projectID uuid.UUID) (map[string]string, error)
	Save(ctx context.Context, projectID uuid.UUID, values map[string]string) error
	FieldsConfig(ctx context.Context, projectID uuid.UUID) (fields.Config, bool, error)
}

type pageSettingService struct {
	r   repo.PageSettingRepo
	hub *notify.Hub
}

func NewPageSettingService(r repo.PageSettingRepo, hub *notify.Hub) PageSettingService {
	return &pageSettingService{r: r, hub: hub}
}

// loadSettings merges stored rows over the defaults, so a key that was never
// saved still resolves.
func loadSettings(ctx context.Context, r repo.PageSettingRepo, projectID uuid.UUID) (map[string]string, error) {
	rows, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(model.DefaultSettings))
	for k, v := range model.DefaultSettings {
		out[k] = v
	}
	for _, row := range rows {
		out[row.SettingKey] = row.SettingValue
	}
	return out, nil
}

func (s *pageSettingService) Load(ctx context.Context, projectID uuid.UUID) (map[string]string, error) {
	return loadSettings(ctx, s.r, projectID)
}

// Save upserts each submitted key independently; earlier keys that succeed
// stay saved when a later one fails.
func (s *pageSettingService) Save(ctx context.Context, projectID uuid.UUID, values map[string]string) error {
	if len(values) == 0 {
		return errors.New("no settings to save")
	}

	for key, value := range values {
		if _, known := model.DefaultSettings[key]; !known {
			return errors.New("unknown setting key: " + key)
		}
		switch key {
		case model.SettingTitleFontSize:
			if n, err := strconv.Atoi(value); err != nil || n < 8 || n > 128 {
				return errors.New("title font size must be a number between 8 and 128")
			}
		case model.SettingCustomFieldsEnabled:
			if value != "true" && value != "false" {
				return errors.New("custom_fields_enabled must be true or false")
			}
		case model.SettingCustomFieldsConfig:
			normalized, err := fields.Serialize(fields.Parse(value))
			if err != nil {
				return err
			}
			value = normalized
		}
		if err := s.r.Upsert(ctx, projectID, key, value); err != nil {
			return err
		}
	}

	s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TablePageSettings, Action: notify.ActionUpdate})
	return nil
}

// FieldsConfig resolves the applicant form schema and whether it is enabled.
func (s *pageSettingService) FieldsConfig(ctx context.Context, projectID uuid.UUID) (fields.Config, bool, error) {
	settings, err := loadSettings(ctx, s.r, projectID)
	if err != nil {
		return fields.Config{}, false, err
	}
	enabled := settings[model.SettingCustomFieldsEnabled] == "true"
	return fields.Parse(settings[model.SettingCustomFieldsConfig]), enabled, nil
}
