package model

import (
	"time"

	"github.com/google/uuid"
)

// Known setting keys.
const (
	SettingTitleText           = "title_text"
	SettingTitleFontSize       = "title_font_size"
	SettingCustomFieldsEnabled = "custom_fields_enabled"
	SettingCustomFieldsConfig  = "custom_fields_config"
)

// DefaultSettings are applied when a key has no stored row, and seeded at
// project creation.
var DefaultSettings = map[string]string{
	SettingTitleText:           "주차등록 시스템",
	SettingTitleFontSize:       "36",
	SettingCustomFieldsEnabled: "false",
	SettingCustomFieldsConfig:  "[]",
}

type PageSetting struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_setting" json:"project_id"`
	SettingKey   string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_project_setting" json:"setting_key"`
	SettingValue string    `gorm:"type:text;not null" json:"setting_value"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (PageSetting) TableName() string { return "page_settings" }
